package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/taskfall/dayview"
	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/state"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

const (
	panelWidth    = 34
	cardWidth     = 44
	helpText      = "space:add  p:pause  m:mute  q:quit"
	dateLayout    = "Mon Jan 2 15:04"
	stripRune     = '━'
	untitledTitle = "Untitled Task"
)

var (
	colorText      = tcell.NewRGBColor(30, 30, 40)
	colorPanel     = tcell.NewRGBColor(250, 250, 252)
	colorPanelEdge = tcell.NewRGBColor(120, 120, 140)
	colorDanger    = tcell.NewRGBColor(245, 104, 91)
	colorStatusBg  = tcell.NewRGBColor(40, 44, 60)
	colorStatusFg  = tcell.NewRGBColor(200, 205, 220)
)

// Renderer draws one frame of the day view per call
// Runs on the loop goroutine
type Renderer struct {
	screen  tcell.Screen
	view    *dayview.View
	session *state.Session
	reg     *status.Registry
	grid    Grid

	bg     colorful.Color
	gutter colorful.Color
	strip  colorful.Color
	paused func() bool
	muted  func() bool
}

// Option configures a Renderer
type Option func(*Renderer)

// WithStatus shows metrics from reg on the status line
func WithStatus(reg *status.Registry) Option {
	return func(r *Renderer) { r.reg = reg }
}

// WithPaused marks the status line while fn reports true
func WithPaused(fn func() bool) Option {
	return func(r *Renderer) { r.paused = fn }
}

// WithMuted marks the status line while fn reports true
func WithMuted(fn func() bool) Option {
	return func(r *Renderer) { r.muted = fn }
}

// New creates a renderer drawing view on screen
func New(screen tcell.Screen, view *dayview.View, session *state.Session, aspect float64, opts ...Option) *Renderer {
	bg, err := colorful.Hex(parameter.BackgroundColor)
	if err != nil {
		bg = colorful.Color{R: 0.69, G: 0.78, B: 1}
	}
	strip, err := colorful.Hex(parameter.TimelineColor)
	if err != nil {
		strip = colorful.Color{R: 1, G: 1, B: 0.8}
	}
	if aspect <= 0 {
		aspect = parameter.CellAspect
	}
	r := &Renderer{
		screen:  screen,
		view:    view,
		session: session,
		grid:    Grid{Aspect: aspect},
		bg:      bg,
		gutter:  bg.BlendLab(colorful.Color{}, 0.12).Clamped(),
		strip:   strip,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Grid returns the cell mapping
func (r *Renderer) Grid() Grid { return r.grid }

// toTcell converts a colorful color to a tcell RGB color
func toTcell(c colorful.Color) tcell.Color {
	cr, cg, cb := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// Draw renders the frame at now
func (r *Renderer) Draw(now time.Time) {
	cols, rows := r.screen.Size()
	r.screen.Clear()

	rect, ok := r.view.Scene().Bounds()
	if !ok {
		r.screen.Show()
		return
	}

	r.drawBackground(cols, rows, rect)

	titles := make(map[*physics.Body]string)
	for _, o := range r.view.Objects() {
		if b := o.Body(); b != nil {
			titles[b] = o.Task().Title
		}
	}
	strip := r.view.Timeline().Body()
	for _, b := range r.view.World().Bodies() {
		switch {
		case b == strip:
			r.drawStrip(b, rect, cols)
		case b.IsStatic():
		default:
			r.drawBody(b, titles[b], rect, cols, rows)
		}
	}

	if r.session.DetailVisible() {
		if t, ok := r.session.Active(); ok {
			r.drawDetail(t, cols)
		}
	}
	if t, ok := r.session.Marked(); ok {
		r.drawConfirm(t, cols, rows)
	}
	r.drawStatus(cols, rows, now)
	r.screen.Show()
}

func (r *Renderer) drawBackground(cols, rows int, rect vmath.Rect) {
	scene := tcell.StyleDefault.Background(toTcell(r.bg))
	gutter := tcell.StyleDefault.Background(toTcell(r.gutter))
	for y := 0; y < rows-parameter.StatusRows; y++ {
		for x := 0; x < cols; x++ {
			style := gutter
			if rect.Contains(r.grid.CellCenter(x, y)) {
				style = scene
			}
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawBody paints the cells whose centers fall inside b; cells on the silhouette use the stroke color
func (r *Renderer) drawBody(b *physics.Body, label string, rect vmath.Rect, cols, rows int) {
	style := b.Style()
	opacity := b.Opacity()
	fill := toTcell(r.bg.BlendRgb(style.Fill, opacity))
	stroke := toTcell(r.bg.BlendRgb(style.Stroke, opacity))

	bounds := b.Bounds()
	bounds.X += rect.X
	bounds.Y += rect.Y
	c0, r0, c1, r1 := r.grid.CellSpan(bounds)

	inside := func(col, row int) bool {
		p := r.grid.CellCenter(col, row)
		return b.Contains(vmath.V(p.X-rect.X, p.Y-rect.Y))
	}

	drawn := false
	for row := max(r0, 0); row <= min(r1, rows-parameter.StatusRows-1); row++ {
		for col := max(c0, 0); col <= min(c1, cols-1); col++ {
			if !inside(col, row) {
				continue
			}
			bg := fill
			if !inside(col-1, row) || !inside(col+1, row) || !inside(col, row-1) || !inside(col, row+1) {
				bg = stroke
			}
			r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg))
			drawn = true
		}
	}
	if !drawn {
		// Smaller than a cell: mark its center
		col, row := r.grid.Cell(b.Position().Add(rect.Min()))
		r.screen.SetContent(col, row, '●', nil, tcell.StyleDefault.Foreground(stroke).Background(toTcell(r.bg)))
		return
	}

	if label == "" {
		return
	}
	col, row := r.grid.Cell(b.Position().Add(rect.Min()))
	width := c1 - c0 - 1
	if width < 1 {
		return
	}
	text := runewidth.Truncate(label, width, "…")
	start := col - runewidth.StringWidth(text)/2
	for i, ch := range []rune(text) {
		x := start + i
		if !inside(x, row) {
			continue
		}
		r.screen.SetContent(x, row, ch, nil, tcell.StyleDefault.Foreground(colorText).Background(fill))
	}
}

func (r *Renderer) drawStrip(b *physics.Body, rect vmath.Rect, cols int) {
	bounds := b.Bounds()
	bounds.X += rect.X
	bounds.Y += rect.Y
	c0, _, c1, _ := r.grid.CellSpan(bounds)
	_, row := r.grid.Cell(b.Position().Add(rect.Min()))

	style := tcell.StyleDefault.Foreground(toTcell(r.strip)).Background(toTcell(r.bg))
	for col := max(c0, 0); col <= min(c1, cols-1); col++ {
		r.screen.SetContent(col, row, stripRune, nil, style)
	}

	label := r.view.Timeline().Label()
	if label == "" {
		return
	}
	labelStyle := tcell.StyleDefault.Foreground(colorText).Background(toTcell(r.strip))
	x := min(c1, cols-1) - len(label) - 1
	r.text(x, row, " "+label+" ", labelStyle)
}

func (r *Renderer) drawDetail(t task.Task, cols int) {
	lines := []string{
		title(t),
		fmt.Sprintf("Duration: %d min", t.EffectiveDuration()),
		fmt.Sprintf("Type: %s", t.EffectiveType()),
		fmt.Sprintf("Importance: %s", t.EffectiveImportance()),
		"Due: " + formatTime(t.DueDate),
		"Created: " + formatTime(t.CreatedAt),
		"",
		"[esc] close",
	}
	x := cols - panelWidth - 1
	if x < 0 {
		x = 0
	}
	r.box(x, 1, panelWidth, lines, colorPanelEdge)
}

func (r *Renderer) drawConfirm(t task.Task, cols, rows int) {
	lines := []string{
		"Remove Task?",
		"",
		fmt.Sprintf("Remove %q?", title(t)),
		"Removed tasks stay in the archive",
	}
	if t.Duration != nil {
		lines = append(lines, fmt.Sprintf("Duration: %d minutes", *t.Duration))
	}
	if t.DueDate != nil {
		lines = append(lines, "Due: "+formatTime(t.DueDate))
	}
	lines = append(lines, "", "[y] Remove Task   [n] Cancel")

	w := min(cardWidth, cols)
	x := (cols - w) / 2
	y := (rows - len(lines) - 2) / 2
	if y < 0 {
		y = 0
	}
	r.box(x, y, w, lines, colorDanger)
}

// box draws a bordered panel with one text line per row
func (r *Renderer) box(x, y, w int, lines []string, edge tcell.Color) {
	body := tcell.StyleDefault.Foreground(colorText).Background(colorPanel)
	border := tcell.StyleDefault.Foreground(edge).Background(colorPanel)
	h := len(lines) + 2
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			ch := ' '
			switch {
			case (row == 0 || row == h-1) && (col == 0 || col == w-1):
				ch = '+'
			case row == 0 || row == h-1:
				ch = '─'
			case col == 0 || col == w-1:
				ch = '│'
			}
			style := body
			if ch != ' ' {
				style = border
			}
			r.screen.SetContent(x+col, y+row, ch, nil, style)
		}
	}
	for i, line := range lines {
		r.text(x+2, y+1+i, runewidth.Truncate(line, w-4, "…"), body)
	}
}

func (r *Renderer) drawStatus(cols, rows int, now time.Time) {
	y := rows - 1
	style := tcell.StyleDefault.Foreground(colorStatusFg).Background(colorStatusBg)
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	left := now.Format("15:04:05")
	if r.reg != nil {
		left += "  " + r.reg.Format(status.BodiesLive, status.StackPending, status.BoundaryMark, status.GestureLongPress)
	}
	if r.paused != nil && r.paused() {
		left += "  [PAUSED]"
	}
	if r.muted != nil && r.muted() {
		left += "  [MUTED]"
	}
	r.text(1, y, runewidth.Truncate(left, cols-2, "…"), style)

	if x := cols - runewidth.StringWidth(helpText) - 1; x > runewidth.StringWidth(left)+2 {
		r.text(x, y, helpText, style)
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

func title(t task.Task) string {
	if t.Title == "" {
		return untitledTitle
	}
	return t.Title
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Format(dateLayout)
}

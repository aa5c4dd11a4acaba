package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/taskfall/scene"
)

// Action is a keyboard or window command
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionAddTask
	ActionPause
	ActionHideDetail
	ActionConfirm
	ActionCancel
	ActionToggleAudio
	ActionResize
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionAddTask:
		return "add-task"
	case ActionPause:
		return "pause"
	case ActionHideDetail:
		return "hide-detail"
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	case ActionToggleAudio:
		return "toggle-audio"
	case ActionResize:
		return "resize"
	}
	return "none"
}

// KeyAction maps a key press to its command
func KeyAction(key tcell.Key, ch rune) Action {
	switch key {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionHideDetail
	case tcell.KeyEnter:
		return ActionConfirm
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return ActionQuit
		case ' ', 'a':
			return ActionAddTask
		case 'p':
			return ActionPause
		case 'y', 'Y':
			return ActionConfirm
		case 'n', 'N':
			return ActionCancel
		case 'm':
			return ActionToggleAudio
		}
	}
	return ActionNone
}

// Input turns tcell events into commands and pointer events
// Owned by the input poller goroutine; pointer positions are screen-space world units
type Input struct {
	grid Grid
	down bool
}

// NewInput creates a translator for cells of the given aspect
func NewInput(grid Grid) *Input {
	return &Input{grid: grid}
}

// Translate converts ev; at most one of the results is meaningful
// Hover motion without a pressed button yields nothing
func (in *Input) Translate(ev tcell.Event) (Action, *scene.PointerEvent) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return KeyAction(ev.Key(), ev.Rune()), nil
	case *tcell.EventResize:
		return ActionResize, nil
	case *tcell.EventFocus:
		if ev.Focused || !in.down {
			return ActionNone, nil
		}
		in.down = false
		return ActionNone, &scene.PointerEvent{Kind: scene.PointerLeave}
	case *tcell.EventMouse:
		x, y := ev.Position()
		pe := &scene.PointerEvent{Pos: in.grid.CellCenter(x, y)}
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !in.down:
			in.down = true
			pe.Kind = scene.PointerDown
		case !pressed && in.down:
			in.down = false
			pe.Kind = scene.PointerUp
		case pressed:
			pe.Kind = scene.PointerMove
		default:
			return ActionNone, nil
		}
		return ActionNone, pe
	}
	return ActionNone, nil
}

// Pressed reports whether the primary button is held
func (in *Input) Pressed() bool {
	return in.down
}

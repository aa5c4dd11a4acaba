package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/taskfall/audio"
	"github.com/lixenwraith/taskfall/config"
	"github.com/lixenwraith/taskfall/core"
	"github.com/lixenwraith/taskfall/dayview"
	"github.com/lixenwraith/taskfall/engine"
	"github.com/lixenwraith/taskfall/event"
	"github.com/lixenwraith/taskfall/render"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/state"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/store"
	"github.com/lixenwraith/taskfall/task"
)

// app wires the day view to a screen; everything but poll runs on the loop goroutine
type app struct {
	cfg    *config.Config
	screen tcell.Screen

	sched    *engine.Scheduler
	queue    *event.Queue
	router   *event.Router
	reg      *status.Registry
	session  *state.Session
	view     *dayview.View
	player   *audio.CuePlayer
	renderer *render.Renderer
	loop     *engine.Loop
	input    *render.Input

	ctx context.Context
}

// viewConfig converts the runtime configuration for the day view
func viewConfig(cfg *config.Config) dayview.Config {
	return dayview.Config{
		Timeline:       cfg.Timeline(),
		Gravity:        cfg.Gravity,
		Margin:         cfg.BoundaryMargin,
		SampleInterval: cfg.BoundaryInterval,
		LongPress:      cfg.LongPress,
		Gutter:         cfg.Gutter,
	}
}

// newApp builds the component graph on an initialized screen and mounts the view
// src may be nil; when it can archive, confirmed removals are archived
func newApp(ctx context.Context, cfg *config.Config, screen tcell.Screen, wall engine.TimeProvider, src store.Source, tasks []task.Task) *app {
	a := &app{
		cfg:    cfg,
		screen: screen,
		sched:  engine.NewScheduler(wall),
		queue:  event.NewQueue(),
		reg:    status.NewRegistry(),
		ctx:    ctx,
	}
	a.router = event.NewRouter(a.queue)
	a.session = state.NewSession(a.queue, wall, a.reg)

	opts := []dayview.Option{dayview.WithEvents(a.queue), dayview.WithStatus(a.reg)}
	if archiver, ok := src.(dayview.Archiver); ok {
		opts = append(opts, dayview.WithArchiver(archiver))
	}
	cols, rows := screen.Size()
	a.view = dayview.New(render.Layout(cols, rows, cfg.Gutter, cfg.Aspect), a.sched, a.session, viewConfig(cfg), opts...)
	a.view.Load(tasks)
	a.view.Mount()

	a.player = audio.NewCuePlayer(cfg.AudioVolume)
	a.player.SetEnabled(cfg.AudioEnabled)
	a.player.Register(a.router)

	clock := engine.NewPausableClock(wall)
	a.renderer = render.New(screen, a.view, a.session, cfg.Aspect,
		render.WithStatus(a.reg),
		render.WithPaused(clock.IsPaused),
		render.WithMuted(func() bool { return !a.player.Enabled() }),
	)

	dropped := a.reg.Gauge(status.EventsDropped)
	a.loop = engine.NewLoop(a.sched, wall, clock, a.view.World(),
		engine.WithFrameInterval(cfg.FrameInterval()),
		engine.WithPhysicsStep(cfg.PhysicsStep),
		engine.WithStatus(a.reg),
		engine.WithRenderer(func(now time.Time) {
			a.router.DispatchAll()
			dropped.Set(float64(a.queue.Dropped()))
			a.renderer.Draw(now)
		}),
	)
	a.input = render.NewInput(a.renderer.Grid())
	return a
}

// poll reads terminal events and posts them to the loop until the screen closes or quit is pressed
func (a *app) poll() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		action, pe := a.input.Translate(ev)
		if pe != nil {
			p := *pe
			if !a.loop.Post(func() { a.pointer(p) }) {
				log.Printf("input: dropped %s", p.Kind)
			}
			continue
		}
		switch action {
		case render.ActionNone:
		case render.ActionQuit:
			a.loop.Stop()
			return
		default:
			if !a.loop.Post(func() { a.apply(action) }) {
				log.Printf("input: dropped %s", action)
			}
		}
	}
}

// pointer converts a screen-space pointer event to scene coordinates and dispatches it
func (a *app) pointer(p scene.PointerEvent) {
	sc := a.view.Scene()
	p.Pos = sc.ToLocal(p.Pos)
	sc.Dispatch(p)
}

// apply runs a keyboard or window command
func (a *app) apply(action render.Action) {
	switch action {
	case render.ActionAddTask:
		a.view.AddNext()
	case render.ActionPause:
		paused := a.loop.Clock().Toggle()
		log.Printf("app: paused=%v", paused)
	case render.ActionHideDetail:
		a.view.HideDetail()
	case render.ActionConfirm:
		if t, err := a.view.Confirm(a.ctx); err != nil {
			if !errors.Is(err, dayview.ErrNothingMarked) {
				log.Printf("app: remove %q: %v", t.Title, err)
			}
		}
	case render.ActionCancel:
		a.view.Cancel()
	case render.ActionToggleAudio:
		if a.player.Toggle() && !a.player.IsInitialized() {
			if err := a.player.Initialize(); err != nil {
				log.Printf("audio: %v (continuing without audio)", err)
			}
		}
	case render.ActionResize:
		a.screen.Sync()
		cols, rows := a.screen.Size()
		a.view.Resize(render.Layout(cols, rows, a.cfg.Gutter, a.cfg.Aspect))
	}
}

// close releases the view and the audio device
func (a *app) close() {
	a.view.Unmount()
	a.player.Cleanup()
}

// runView opens the day view on the controlling terminal
func runView(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("run: stdout is not a terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	if cfg.File != "" {
		log.Printf("config: using %s", cfg.File)
	}

	src, err := store.Open(cfg.Source())
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer store.Close(src)
	tasks, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	log.Printf("store: loaded %d tasks from %s", len(tasks), cfg.Source())

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashHandler(screen)
	defer core.SetCrashHandler(nil)
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newApp(ctx, cfg, screen, engine.NewMonotonicTimeProvider(), src, tasks)
	defer a.close()
	if cfg.AudioEnabled {
		if err := a.player.Initialize(); err != nil {
			log.Printf("audio: %v (continuing without audio)", err)
		}
	}

	core.Go(a.poll)
	if err := a.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

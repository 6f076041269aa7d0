// Package terminal renders frames as colored braille in a terminal through
// bubbletea. Each character cell covers 2x4 pixels.
package terminal

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/circles/internal/display"
)

// FrameInterval paces ticks; terminals cannot present much faster.
const FrameInterval = time.Second / 30

type tickMsg time.Time

type Display struct {
	opts   display.Options
	frame  display.Frame
	canvas *Canvas
	view   string

	handler display.Handler
	err     error
}

// Open sizes the surface from the requested window size until the terminal
// reports its own.
func Open(opts display.Options) (display.Display, error) {
	d := &Display{opts: opts}
	cols, rows := opts.Width/8, opts.Height/16
	if cols < 1 || rows < 1 {
		cols, rows = 80, 24
	}
	d.alloc(cols, rows)
	return d, nil
}

func (d *Display) alloc(cols, rows int) {
	d.canvas = NewCanvas(cols, rows)
	d.frame = display.NewFrame(cols*2, rows*4, display.RGBA8)
}

func (d *Display) Size() (int, int) { return d.frame.Width, d.frame.Height }

func (d *Display) Format() display.PixelFormat { return display.RGBA8 }

func (d *Display) AcquireFrame() (display.Frame, error) { return d.frame, nil }

func (d *Display) Present(f display.Frame) error {
	if err := d.canvas.Load(f, d.opts.Background); err != nil {
		return err
	}
	d.view = d.canvas.Render(d.opts.Background)
	return nil
}

// Resize takes a size in pixels and rounds it down to whole cells.
func (d *Display) Resize(width, height int) error {
	cols, rows := width/2, height/4
	if cols < 1 || rows < 1 {
		return display.ErrFrameSize
	}
	d.alloc(cols, rows)
	return nil
}

func (d *Display) Run(ctx context.Context, h display.Handler) error {
	d.handler = h
	p := tea.NewProgram(d, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return display.Finish(d.err)
}

func (d *Display) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (d *Display) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var evs []display.Event
	var next tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		evs = append(evs, display.Event{Kind: display.Resized, Width: msg.Width * 2, Height: msg.Height * 4})
	case tea.MouseMsg:
		evs = append(evs, mouseEvents(msg)...)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			evs = append(evs, display.Event{Kind: display.CloseRequested})
		case "f11":
			evs = append(evs, display.Event{Kind: display.KeyPressed, Key: display.KeyF11})
		default:
			evs = append(evs, display.Event{Kind: display.KeyPressed, Key: msg.String()})
		}
	case tickMsg:
		evs = append(evs, display.Event{Kind: display.AboutToTick}, display.Event{Kind: display.RedrawRequested})
		next = tick()
	}

	for _, ev := range evs {
		if err := d.handler.HandleEvent(d, ev); err != nil {
			d.err = err
			return d, tea.Quit
		}
	}
	return d, next
}

// mouseEvents maps a cell position to the center of its 2x4 pixel block.
func mouseEvents(msg tea.MouseMsg) []display.Event {
	evs := []display.Event{{
		Kind: display.PointerMoved,
		X:    float32(msg.X*2 + 1),
		Y:    float32(msg.Y*4 + 2),
	}}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		evs = append(evs, display.Event{Kind: display.ButtonPressed})
	case msg.Action == tea.MouseActionRelease:
		// Many terminals do not report which button was released.
		evs = append(evs, display.Event{Kind: display.ButtonReleased})
	}
	return evs
}

func (d *Display) View() string { return d.view }

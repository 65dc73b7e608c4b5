package engine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/bloeys/libgraphics/backend"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/renderer"
	"github.com/bloeys/libgraphics/renderer/rendgl"
	"github.com/bloeys/libgraphics/shaders"
)

type EventType int32

const (
	EventType_Unknown EventType = iota
	EventType_Closed
)

type Event struct {
	Type EventType
}

// Surface is the OS window and rendering context a Window draws into
type Surface interface {
	// PumpEvents hands every pending OS event to push, translated to an Event.
	// Events the window does not understand are dropped.
	PumpEvents(push func(Event))
	IsCurrent() bool
	MakeCurrent() error
	// Swap presents the completed frame
	Swap()
	Destroy() error
}

type Options struct {
	Untextured shaders.Sources
	Textured   shaders.Sources
	Usage      buffers.BufUsage
}

// DefaultOptions uses the built in shaders and static buffer usage
func DefaultOptions() Options {
	return Options{
		Untextured: shaders.DefaultUntextured(),
		Textured:   shaders.DefaultTextured(),
		Usage:      buffers.BufUsage_Static_Draw,
	}
}

var _ renderer.Canvas = &Window{}

// Window draws into one Surface. Every backend call it makes is preceded by a
// check that the surface's context is current, and it makes it current only
// when it is not. It does not guard against use from multiple goroutines.
type Window struct {
	Surf Surface
	Rend renderer.Render

	fns    *backend.Functions
	events []Event
}

// NewWindow compiles both shader programs and sets up the renderer.
// fns must have been loaded for the surface's context.
func NewWindow(surf Surface, fns *backend.Functions, opts Options) (*Window, error) {

	w := &Window{
		Surf: surf,
		fns:  fns,
	}

	if err := w.ensureCurrent(); err != nil {
		return nil, err
	}

	untextured, err := shaders.CompileProgram(fns, opts.Untextured)
	if err != nil {
		return nil, fmt.Errorf("failed to create untextured shader program: %w", err)
	}

	textured, err := shaders.CompileProgram(fns, opts.Textured)
	if err != nil {
		untextured.Delete()
		return nil, fmt.Errorf("failed to create textured shader program: %w", err)
	}

	rend, err := rendgl.NewRendGL(fns, untextured, textured, opts.Usage)
	if err != nil {
		untextured.Delete()
		textured.Delete()
		return nil, err
	}

	rend.SetContextGuard(w.ensureCurrent)
	w.Rend = rend
	logging.InfoLog.Printf("Window created (untextured program=%d, textured program=%d, usage=%s)\n", untextured.Id, textured.Id, rend.Usage)
	return w, nil
}

func (w *Window) ensureCurrent() error {

	if w.Surf.IsCurrent() {
		return nil
	}

	if err := w.Surf.MakeCurrent(); err != nil {
		return fmt.Errorf("failed to make window context current: %w", err)
	}

	return nil
}

// PollEvent returns at most one queued event per call
func (w *Window) PollEvent() (Event, bool) {

	w.Surf.PumpEvents(func(e Event) {
		w.events = append(w.events, e)
	})

	if len(w.events) == 0 {
		return Event{}, false
	}

	e := w.events[0]
	w.events = w.events[1:]
	return e, true
}

// Clear fills the frame with c. It fails with a *backend.UnsupportedError if
// the backend can not clear.
func (w *Window) Clear(c color.Color) error {

	if err := w.fns.Require("engine.Window.Clear", backend.ClearFuncs...); err != nil {
		return err
	}

	if err := w.ensureCurrent(); err != nil {
		return err
	}

	r, g, b, a := c.RGBA()
	w.fns.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	w.fns.Clear(backend.ColorBufferBit)
	return nil
}

func (w *Window) Draw(d renderer.Drawable) error {
	return d.Draw(w)
}

func (w *Window) DrawVertexBuffer(vb *buffers.VertexBuffer) error {

	if err := w.ensureCurrent(); err != nil {
		return err
	}

	return w.Rend.DrawVertexBuffer(vb)
}

// Display presents the frame and starts a new one
func (w *Window) Display() {
	w.Surf.Swap()
	w.Rend.FrameEnd()
}

// Destroy releases the renderer's backend objects, then the surface
func (w *Window) Destroy() error {

	var errs []error
	if err := w.ensureCurrent(); err != nil {
		errs = append(errs, err)
	} else if w.Rend != nil {
		w.Rend.Delete()
	}

	if err := w.Surf.Destroy(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Package sdlsurface implements engine.Surface with an SDL2 window and an
// OpenGL compatibility context (quads need the compatibility profile).
package sdlsurface

import (
	"errors"
	"runtime"

	"github.com/bloeys/libgraphics/engine"
	"github.com/bloeys/libgraphics/input"
	"github.com/veandco/go-sdl2/sdl"
)

var isInited = false

var _ engine.Surface = &Surface{}

type WindowFlags uint32

const (
	WindowFlags_NONE      WindowFlags = 0
	WindowFlags_RESIZABLE WindowFlags = sdl.WINDOW_RESIZABLE
	WindowFlags_HIDDEN    WindowFlags = sdl.WINDOW_HIDDEN
)

type Surface struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
}

// Init must be called once from the main goroutine before creating surfaces.
// It locks the calling goroutine to its OS thread, since the GL context is
// bound per thread.
func Init() error {

	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	isInited = true
	return nil
}

func Quit() {
	sdl.Quit()
	isInited = false
}

// New creates a centered window with a GL context, which is left current
func New(title string, width, height int32, flags WindowFlags, vsync bool) (*Surface, error) {

	if !isInited {
		return nil, errors.New("sdlsurface.Init() was not called")
	}

	sdlWin, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, uint32(sdl.WINDOW_OPENGL|flags))
	if err != nil {
		return nil, err
	}

	s := &Surface{SDLWin: sdlWin}
	s.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	if vsync {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}

	return s, nil
}

// PumpEvents translates close requests to engine events. Keyboard events
// are routed to the input package instead.
func (s *Surface) PumpEvents(push func(engine.Event)) {

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		switch e := event.(type) {

		case *sdl.QuitEvent:
			push(engine.Event{Type: engine.EventType_Closed})

		case *sdl.KeyboardEvent:
			input.HandleKey(input.Key(e.Keysym.Sym), e.State == sdl.PRESSED, e.Repeat != 0)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_CLOSE && e.WindowID == s.windowId() {
				push(engine.Event{Type: engine.EventType_Closed})
			}
		}
	}
}

func (s *Surface) windowId() uint32 {
	id, _ := s.SDLWin.GetID()
	return id
}

func (s *Surface) IsCurrent() bool {
	ctx, err := sdl.GLGetCurrentContext()
	return err == nil && ctx == s.GlCtx
}

func (s *Surface) MakeCurrent() error {
	return s.SDLWin.GLMakeCurrent(s.GlCtx)
}

func (s *Surface) Swap() {
	s.SDLWin.GLSwap()
}

func (s *Surface) Destroy() error {
	sdl.GLDeleteContext(s.GlCtx)
	return s.SDLWin.Destroy()
}

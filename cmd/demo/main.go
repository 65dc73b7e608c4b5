package main

import (
	"flag"
	"image"
	"image/color"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/backend/gogl"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/config"
	"github.com/bloeys/libgraphics/drawables"
	"github.com/bloeys/libgraphics/engine"
	"github.com/bloeys/libgraphics/engine/sdlsurface"
	"github.com/bloeys/libgraphics/input"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/meshes"
	"github.com/bloeys/libgraphics/renderer"
	"github.com/bloeys/libgraphics/textures"
	"github.com/veandco/go-sdl2/sdl"
)

const moveSpeed float32 = 0.02

var (
	configPath  = flag.String("config", config.DefaultFilename, "Path to the yaml config. Defaults are used if it does not exist")
	texturePath = flag.String("texture", "", "Image to put on the quad. A checkerboard is generated if empty")
	modelPath   = flag.String("model", "", "Optional model file to draw untextured")
)

func main() {

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}
	logging.SetVerbose(cfg.Verbose)

	opts, err := cfg.EngineOptions()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load shaders. Err:", err)
	}

	err = sdlsurface.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init SDL. Err:", err)
	}
	defer sdlsurface.Quit()

	surf, err := sdlsurface.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, sdlsurface.WindowFlags_NONE, *cfg.Window.VSync)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}

	fns, err := gogl.Load()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load OpenGL. Err:", err)
	}

	win, err := engine.NewWindow(surf, fns, opts)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err:", err)
	}

	tex, err := loadTexture(*texturePath)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load texture. Err:", err)
	}

	triangle := drawables.NewVertexBufferDrawable(buffers.NewVertexBuffer([]buffers.Vertex{
		buffers.NewVertex(gglm.Vec3{Data: [3]float32{-0.9, -0.5, 0}}, gglm.Vec3{Data: [3]float32{1, 0, 0}}),
		buffers.NewVertex(gglm.Vec3{Data: [3]float32{-0.1, -0.5, 0}}, gglm.Vec3{Data: [3]float32{0, 1, 0}}),
		buffers.NewVertex(gglm.Vec3{Data: [3]float32{-0.5, 0.3, 0}}, gglm.Vec3{Data: [3]float32{0, 0, 1}}),
	}, buffers.Primitive_Triangle, false))

	quad := drawables.NewRect(0.6, 0.6, gglm.Vec3{Data: [3]float32{1, 1, 1}}, tex)
	quad.SetPosition(gglm.Vec3{Data: [3]float32{0.2, -0.3, 0}})

	scene := []renderer.Drawable{triangle, quad}
	if *modelPath != "" {
		vbs, err := meshes.LoadVertexBuffers(*modelPath, 0, nil)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load model. Err:", err)
		}

		for _, vb := range vbs {
			scene = append(scene, drawables.NewVertexBufferDrawable(vb))
		}
	}

	clearColor := cfg.ClearColor()
	bg := color.NRGBA{R: uint8(clearColor.X() * 255), G: uint8(clearColor.Y() * 255), B: uint8(clearColor.Z() * 255), A: 255}

	frame := 0
	for running := true; running; frame++ {

		input.FrameStart()
		for e, ok := win.PollEvent(); ok; e, ok = win.PollEvent() {
			if e.Type == engine.EventType_Closed {
				running = false
			}
		}

		if input.KeyClicked(input.Key(sdl.K_ESCAPE)) {
			running = false
		}

		update(quad, tex, frame)

		if err := win.Clear(bg); err != nil {
			logging.ErrLog.Fatalln("Failed to clear. Err:", err)
		}

		for _, d := range scene {
			if err := win.Draw(d); err != nil {
				logging.ErrLog.Fatalln("Failed to draw. Err:", err)
			}
		}

		if logging.IsVerbose() && frame%600 == 0 {
			logging.DebugLog.Printf("Frame %d stats: %+v\n", frame, win.Rend.Stats())
		}

		win.Display()
	}

	quad.Destroy()
	triangle.Destroy()
	tex.Destroy()

	if err := win.Destroy(); err != nil {
		logging.ErrLog.Println("Failed to destroy window. Err:", err)
		os.Exit(1)
	}
}

// update moves the quad with the arrow keys and repaints one texel every
// second, which forces a single texture upload.
func update(quad *drawables.VertexBufferDrawable, tex *textures.Texture, frame int) {

	pos := quad.Position()
	if input.KeyDown(input.Key(sdl.K_LEFT)) {
		pos.Data[0] -= moveSpeed
	}
	if input.KeyDown(input.Key(sdl.K_RIGHT)) {
		pos.Data[0] += moveSpeed
	}
	if input.KeyDown(input.Key(sdl.K_UP)) {
		pos.Data[1] += moveSpeed
	}
	if input.KeyDown(input.Key(sdl.K_DOWN)) {
		pos.Data[1] -= moveSpeed
	}

	if pos != quad.Position() {
		quad.SetPosition(pos)
	}

	if frame%60 != 0 {
		return
	}

	if pos, ok := tex.NthPixel(frame / 60); ok {
		tex.SetPixel(pos, color.NRGBA{R: 255, A: 255})
	}
}

func loadTexture(path string) (*textures.Texture, error) {

	if path != "" {
		return textures.LoadFile(path, textures.Filtering_Linear)
	}

	const size = 8
	data := make([]byte, 0, size*size*textures.BytesPerPixel)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				data = append(data, 255, 255, 255)
			} else {
				data = append(data, 40, 40, 40)
			}
		}
	}

	return textures.NewTexture(data, image.Pt(size, size), textures.Filtering_Nearest)
}

// Package config loads the demo and window settings from yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/engine"
	"github.com/bloeys/libgraphics/shaders"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = "libgraphics.yml"

type Window struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	VSync  *bool  `yaml:"vsync"` // pointer to distinguish unset vs false
}

type Render struct {
	// Usage is the buffer usage hint, one of static, dynamic or stream
	Usage      string     `yaml:"usage"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// Shaders holds optional paths overriding the built in shaders.
// Each program is either fully overridden or not at all, by a vertex/fragment
// pair or by one combined '//shader:' file.
type Shaders struct {
	Vertex           string `yaml:"vertex"`
	Fragment         string `yaml:"fragment"`
	Combined         string `yaml:"combined"`
	TexturedVertex   string `yaml:"textured_vertex"`
	TexturedFragment string `yaml:"textured_fragment"`
	TexturedCombined string `yaml:"textured_combined"`
}

type Config struct {
	Window  Window  `yaml:"window"`
	Render  Render  `yaml:"render"`
	Shaders Shaders `yaml:"shaders"`
	Verbose bool    `yaml:"verbose"`
}

func Default() Config {
	vsync := true
	return Config{
		Window: Window{
			Title:  "libgraphics",
			Width:  1280,
			Height: 720,
			VSync:  &vsync,
		},
		Render: Render{
			Usage:      "static",
			ClearColor: [3]float32{0, 0, 0},
		},
	}
}

// Parse decodes yaml on top of the defaults, so missing keys keep their default values
func Parse(data []byte) (Config, error) {

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads path and parses it. A missing file yields the defaults.
func Load(path string) (Config, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

func (c *Config) normalize() {

	c.Render.Usage = strings.TrimSpace(c.Render.Usage)
	if c.Window.VSync == nil {
		vsync := true
		c.Window.VSync = &vsync
	}
}

func (c *Config) Validate() error {

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if _, err := buffers.ParseBufUsage(c.Render.Usage); err != nil {
		return err
	}

	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("clear_color[%d] must be in [0, 1], got %v", i, v)
		}
	}

	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		return errors.New("shaders.vertex and shaders.fragment must be set together")
	}

	if (c.Shaders.TexturedVertex == "") != (c.Shaders.TexturedFragment == "") {
		return errors.New("shaders.textured_vertex and shaders.textured_fragment must be set together")
	}

	if c.Shaders.Combined != "" && c.Shaders.Vertex != "" {
		return errors.New("shaders.combined can not be used with shaders.vertex and shaders.fragment")
	}

	if c.Shaders.TexturedCombined != "" && c.Shaders.TexturedVertex != "" {
		return errors.New("shaders.textured_combined can not be used with shaders.textured_vertex and shaders.textured_fragment")
	}

	return nil
}

func (c *Config) ClearColor() gglm.Vec3 {
	return gglm.Vec3{Data: c.Render.ClearColor}
}

// EngineOptions builds window options, loading any overridden shader sources
func (c *Config) EngineOptions() (engine.Options, error) {

	opts := engine.DefaultOptions()

	usage, err := buffers.ParseBufUsage(c.Render.Usage)
	if err != nil {
		return engine.Options{}, err
	}
	opts.Usage = usage

	switch {
	case c.Shaders.Vertex != "":
		opts.Untextured, err = shaders.LoadSources(c.Shaders.Vertex, c.Shaders.Fragment)
	case c.Shaders.Combined != "":
		opts.Untextured, err = shaders.LoadCombinedSources(c.Shaders.Combined)
	}
	if err != nil {
		return engine.Options{}, err
	}

	switch {
	case c.Shaders.TexturedVertex != "":
		opts.Textured, err = shaders.LoadSources(c.Shaders.TexturedVertex, c.Shaders.TexturedFragment)
	case c.Shaders.TexturedCombined != "":
		opts.Textured, err = shaders.LoadCombinedSources(c.Shaders.TexturedCombined)
	}
	if err != nil {
		return engine.Options{}, err
	}

	return opts, nil
}

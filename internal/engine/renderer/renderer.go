// Package renderer owns global OpenGL state: initialization, viewport,
// frame clear and polygon mode.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-heightmap/internal/engine/gpu"
	"github.com/Faultbox/midgard-heightmap/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width         int
	Height        int
	CullBackFaces bool
	ClearColor    [4]float32
}

// Renderer handles frame-level OpenGL state.
type Renderer struct {
	config    Config
	device    *gpu.GL
	wireframe bool
}

// New initializes OpenGL and sets default state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Terrain triangles are counter-clockwise seen from above.
	if cfg.CullBackFaces {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	r := &Renderer{config: cfg, device: gpu.NewGL()}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Device returns the GPU device for resource creation and draw calls.
func (r *Renderer) Device() gpu.Device {
	return r.device
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport aspect ratio, or 1 for an empty viewport.
func (r *Renderer) Aspect() float32 {
	if r.config.Height <= 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe selects line rasterization for subsequent frames.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
}

// Wireframe reports whether wireframe mode is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
}

// End finishes the current frame and returns shared state to its defaults.
func (r *Renderer) End() {
	gl.UseProgram(0)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadFrame reads back the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadFrame() ([]byte, int, int) {
	w, h := r.Size()
	return r.device.ReadPixels(w, h), w, h
}

// Package viewer hosts the heightmap renderer: window, GL state, camera and
// the frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-heightmap/internal/config"
	"github.com/Faultbox/midgard-heightmap/internal/engine/camera"
	"github.com/Faultbox/midgard-heightmap/internal/engine/debug"
	"github.com/Faultbox/midgard-heightmap/internal/engine/gpu"
	"github.com/Faultbox/midgard-heightmap/internal/engine/heightmap"
	"github.com/Faultbox/midgard-heightmap/internal/engine/input"
	"github.com/Faultbox/midgard-heightmap/internal/engine/lighting"
	"github.com/Faultbox/midgard-heightmap/internal/engine/renderer"
	"github.com/Faultbox/midgard-heightmap/internal/engine/shader"
	"github.com/Faultbox/midgard-heightmap/internal/engine/shader/shaders"
	"github.com/Faultbox/midgard-heightmap/internal/engine/texture"
	"github.com/Faultbox/midgard-heightmap/internal/engine/window"
	"github.com/Faultbox/midgard-heightmap/internal/logger"
)

// Height tint used when no color texture is configured.
var (
	lowColor  = mgl32.Vec3{0.16, 0.32, 0.12}
	highColor = mgl32.Vec3{0.92, 0.90, 0.85}
)

// Viewer is the running heightmap viewer.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	dev      gpu.Device
	program  *shader.Program
	texture  uint32
	terrain  *heightmap.Heightmap
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture

	model      mgl32.Mat4
	sun        lighting.Sun
	useTexture bool
	running    bool
}

// New creates the window and GL context and loads the configured heightmap.
// Any failure releases what was already created.
func New(cfg *config.Config) (_ *Viewer, err error) {
	v := &Viewer{
		cfg:   cfg,
		log:   logger.Named("viewer"),
		input: input.New(),
		model: ModelMatrix(cfg.Terrain.HorizontalScale, cfg.Terrain.HeightScale),
		sun: lighting.Sun{
			Azimuth:   cfg.Lighting.SunAzimuth,
			Elevation: cfg.Lighting.SunElevation,
			Ambient:   cfg.Lighting.Ambient,
		},
		shots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, "heightmap", cfg.Screenshot.Format),
	}
	defer func() {
		if err != nil {
			v.Close()
		}
	}()

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer must come after the window: it needs a current context.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		CullBackFaces: cfg.Terrain.CullBackFaces,
		ClearColor:    [4]float32{0.1, 0.1, 0.15, 1.0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.SetWireframe(cfg.Terrain.Wireframe)
	v.dev = v.renderer.Device()

	v.program, err = shader.Compile(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	v.texture, v.useTexture, err = texture.LoadOrWhite(v.dev, cfg.Terrain.Texture)
	if err != nil {
		return nil, err
	}

	v.terrain, err = heightmap.Build(v.dev, cfg.Terrain.Heightmap)
	if err != nil {
		return nil, err
	}

	v.camera = newCamera(cfg.Camera)
	v.resetCamera()

	return v, nil
}

func newCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.FovY = cfg.FovY
	c.Near = cfg.Near
	c.Far = cfg.Far
	c.DragSensitivity = cfg.DragSensitivity
	c.ZoomSensitivity = cfg.ZoomSensitivity
	c.PanSpeed = cfg.PanSpeed
	return c
}

func (v *Viewer) resetCamera() {
	lo, hi := WorldBounds(v.terrain.Bounds(), v.model)
	v.camera.FitBounds(lo, hi)
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.update(dt)
		v.render()

		// Read back before the swap; the back buffer is undefined afterwards.
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.screenshot()
		}

		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			v.log.Debug("fps", zap.Int("frames", frameCount), zap.Duration("elapsed", elapsed))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventMouseMove:
			if v.input.IsButtonHeld(sdl.BUTTON_LEFT) {
				v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F1:
				v.renderer.SetWireframe(!v.renderer.Wireframe())
				v.log.Debug("wireframe toggled", zap.Bool("enabled", v.renderer.Wireframe()))
			case sdl.SCANCODE_R:
				v.resetCamera()
			}
		}
	}
}

func (v *Viewer) update(dt float32) {
	forward := v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	if forward != 0 || right != 0 {
		v.camera.Pan(forward, right, dt)
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()

	v.program.Use()
	v.program.SetMat4("uModel", v.model)
	v.program.SetMat4("uViewProj", v.camera.ViewProj(v.renderer.Aspect()))
	v.program.SetInt("uTexture", 0)
	v.program.SetBool("uUseTexture", v.useTexture)
	v.program.SetVec3("uLowColor", lowColor)
	v.program.SetVec3("uHighColor", highColor)
	v.program.SetVec3("uLightDir", v.sun.Direction())
	v.program.SetFloat("uAmbient", v.sun.Ambient)

	v.terrain.Draw(v.program.ID, v.texture)

	v.renderer.End()
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadFrame()
	path, err := v.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources in reverse creation order, then the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.terrain != nil {
		v.terrain.Close()
		v.terrain = nil
	}
	if v.texture != 0 {
		v.dev.DeleteTexture(v.texture)
		v.texture = 0
	}
	if v.program != nil {
		v.program.Delete()
		v.program = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}

package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sphere/engine/model"
	"github.com/Carmen-Shannon/oxy-sphere/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sphere/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sphere/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-sphere/engine/scene"
	"github.com/Carmen-Shannon/oxy-sphere/engine/sphere"
	"github.com/Carmen-Shannon/oxy-sphere/engine/window"
)

// DefaultTickRate is the number of rotation steps per second.
const DefaultTickRate = 20

// scrollZoomStep is the eye distance moved per scroll wheel notch.
const scrollZoomStep = 0.25

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	// rendererOptions are applied when the engine creates its own renderer.
	rendererOptions []renderer.RendererBuilderOption

	// model is the sphere currently uploaded to meshProvider.
	model           model.Model
	meshProvider    bind_group_provider.BindGroupProvider
	uniformProvider bind_group_provider.BindGroupProvider

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the sphere viewer. It owns the window, the renderer and the scene, spins the
// sphere at a fixed tick rate, and uploads a new mesh whenever the scene rebuilds it.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the viewer scene.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// Renderer returns the renderer drawing the scene.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the tick rate in ticks per second. Each tick advances the rotation once.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to DefaultTickRate if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers an extra function called each tick after the scene advances.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the tick and render goroutines and runs the window loop on the calling
	// goroutine. Blocks until the window closes, then releases GPU and window resources.
	Run()

	// Quit signals all engine goroutines to stop and asks the window loop to return.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates the viewer with the provided options. Missing parts are created with
// defaults: a window, a scene at scene.DefaultOrder, and a renderer bound to the window.
// Panics if the window or GPU cannot be initialized.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the scene or its GPU resources cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / DefaultTickRate,
		meshProvider:    bind_group_provider.NewBindGroupProvider("Sphere Mesh"),
		uniformProvider: bind_group_provider.NewBindGroupProvider("Scene Uniform"),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.scene == nil {
		s, err := scene.NewScene()
		if err != nil {
			return nil, err
		}
		e.scene = s
	}
	if e.renderer == nil {
		e.renderer = renderer.NewRenderer(e.window, e.rendererOptions...)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if err := e.renderer.InitUniform(e.uniformProvider); err != nil {
		return nil, fmt.Errorf("scene uniform: %w", err)
	}
	if h := e.window.Height(); h > 0 {
		e.scene.SetAspect(float32(e.window.Width()) / float32(h))
	}

	e.window.SetResizeCallback(func(width, height int) {
		e.renderer.Resize(width, height)
		if height > 0 {
			e.scene.SetAspect(float32(width) / float32(height))
		}
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		if _, err := scene.HandleKey(e.scene, keyCode); err != nil {
			log.Printf("[Engine] %v", err)
		}
	})
	e.window.SetScrollCallback(func(delta float32) {
		e.scene.Zoom(delta * scrollZoomStep)
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.release()
}

func (e *engine) Quit() {
	e.signalQuit()
	e.window.RequestClose()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Advances the scene rotation at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.scene.Tick()
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and closes the window on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
			e.window.RequestClose()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := time.Now()

			if e.scene.Active() {
				if err := e.renderFrame(); err != nil {
					log.Printf("[Engine] frame: %v", err)
				}
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// renderFrame uploads a rebuilt mesh if there is one, then draws a single frame.
func (e *engine) renderFrame() error {
	if mesh, ok := e.scene.TakeMesh(); ok {
		if err := e.uploadMesh(mesh); err != nil {
			return err
		}
	}
	if e.model == nil {
		return nil
	}

	u := e.scene.Uniform()
	e.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(e.uniformProvider, u.Marshal()),
	})

	if err := e.renderer.BeginFrame(); err != nil {
		return err
	}
	drawErr := e.renderer.DrawCall(e.meshProvider, []bind_group_provider.BindGroupProvider{e.uniformProvider})
	e.renderer.EndFrame()
	e.renderer.Present()
	if drawErr != nil {
		return drawErr
	}

	if e.profilingEnabled {
		e.profiler.Tick(e.model.IndexCount()/3, e.model.Order())
	}
	return nil
}

// uploadMesh replaces the GPU buffers on the mesh provider with the given mesh.
func (e *engine) uploadMesh(mesh sphere.Mesh) error {
	m, err := model.FromMesh(mesh, model.WithMeshProvider(e.meshProvider))
	if err != nil {
		e.scene.RequeueMesh()
		return err
	}

	e.meshProvider.ReleaseMesh()
	if err := e.renderer.InitMeshBuffers(e.meshProvider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		e.model = nil
		e.scene.RequeueMesh()
		return fmt.Errorf("upload order %d: %w", m.Order(), err)
	}
	e.model = m

	log.Printf("[Engine] order %d: %d vertices, %d triangles", m.Order(), m.VertexCount(), m.IndexCount()/3)
	e.window.SetTitle(fmt.Sprintf("oxy-sphere | order %d | %d vertices | %d triangles", m.Order(), m.VertexCount(), m.IndexCount()/3))
	return nil
}

// release frees GPU resources and closes the window. Called once both goroutines have exited.
func (e *engine) release() {
	e.meshProvider.Release()
	e.uniformProvider.Release()
	e.renderer.Release()
	e.scene.Sphere().Release()
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] close window: %v", err)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	newRate := tickInterval(tps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if a change is already pending, replace it
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

// tickInterval converts ticks per second into a ticker period.
func tickInterval(tps float64) time.Duration {
	if tps <= 0 {
		tps = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / tps)
}

// frameInterval converts a frame cap into a minimum frame duration; 0 means uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

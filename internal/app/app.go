// Package app implements the host loop that wires the core emulator
// to a graphics backend and CLI configuration.
package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/graphics"
	"gones/internal/input"
)

// Application ties together the bus, a graphics backend, and the
// emulator's per-frame driver.
type Application struct {
	bus *bus.Bus

	graphicsBackend graphics.Backend
	window          graphics.Window
	videoProcessor  *graphics.VideoProcessor

	config   *Config
	emulator *Emulator

	running     bool
	paused      bool
	initialized bool
	headless    bool

	startTime  time.Time
	frameCount uint64

	romPath   string
	cartridge *cartridge.Cartridge

	logger *log.Logger
}

// ApplicationError wraps a component/operation pair around a cause.
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

// NewApplication creates an application from a parsed Config.
func NewApplication(cfg *Config) (*Application, error) {
	app := &Application{
		config:    cfg,
		headless:  cfg.Headless,
		startTime: time.Now(),
		logger:    newAppLogger(cfg.Debug),
	}

	if err := app.initializeComponents(); err != nil {
		return nil, &ApplicationError{Component: "initialization", Operation: "component setup", Err: err}
	}

	return app, nil
}

func newAppLogger(enabled bool) *log.Logger {
	l := log.New(log.Writer(), "[gones] ", log.LstdFlags)
	if !enabled {
		l.SetOutput(nopWriter{})
	}
	return l
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func (app *Application) initializeComponents() error {
	app.bus = bus.New()

	if err := app.initializeGraphicsBackend(); err != nil {
		return fmt.Errorf("initialize graphics backend: %w", err)
	}

	app.emulator = NewEmulator(app.bus, app.config)
	app.initialized = true
	return nil
}

func (app *Application) initializeGraphicsBackend() error {
	var backendType graphics.BackendType
	if app.headless {
		backendType = graphics.BackendHeadless
	} else {
		switch app.config.Backend {
		case "headless":
			backendType = graphics.BackendHeadless
		case "terminal":
			backendType = graphics.BackendTerminal
		default:
			backendType = graphics.BackendEbitengine
		}
	}

	var err error
	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("create graphics backend: %w", err)
	}

	width, height := app.config.GetWindowResolution()
	graphicsConfig := graphics.Config{
		WindowTitle:  "gones",
		WindowWidth:  width,
		WindowHeight: height,
		VSync:        app.config.VSync,
		Filter:       app.config.Filter,
		Headless:     app.headless,
		Debug:        app.config.Debug,
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType == graphics.BackendEbitengine {
			app.logger.Printf("ebitengine backend failed (%v), falling back to headless mode", err)
			app.graphicsBackend, err = graphics.CreateBackend(graphics.BackendHeadless)
			if err != nil {
				return fmt.Errorf("create fallback headless backend: %w", err)
			}
			app.headless = true
			graphicsConfig.Headless = true
			if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
				return fmt.Errorf("initialize fallback headless backend: %w", err)
			}
		} else {
			return fmt.Errorf("initialize graphics backend: %w", err)
		}
	}

	if !app.headless && !app.graphicsBackend.IsHeadless() {
		app.window, err = app.graphicsBackend.CreateWindow(graphicsConfig.WindowTitle, width, height)
		if err != nil {
			return fmt.Errorf("create window: %w", err)
		}
	} else {
		window, err := app.graphicsBackend.CreateWindow("gones-headless", width, height)
		if err != nil {
			return fmt.Errorf("create headless window: %w", err)
		}
		if hw, ok := window.(*graphics.HeadlessWindow); ok {
			hw.DumpFrames = app.config.DumpFrames
			hw.OutputDir = app.config.OutputDir
		}
		app.window = window
	}

	app.videoProcessor = graphics.NewVideoProcessor(
		app.config.Brightness, app.config.Contrast, app.config.Saturation,
	)

	return nil
}

// LoadROM loads a cartridge from path and resets the bus to run it.
func (app *Application) LoadROM(romPath string) error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}

	app.cartridge = cart
	app.romPath = romPath
	app.bus.LoadCartridge(cart)
	app.bus.Reset()

	if app.window != nil {
		app.window.SetTitle(fmt.Sprintf("gones - %s", filepath.Base(romPath)))
	}

	app.emulator.Start()
	return nil
}

// Run drives the main application loop until the window closes or
// the headless frame budget is exhausted.
func (app *Application) Run() error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	app.startTime = time.Now()
	app.logger.Printf("starting with %s backend", app.graphicsBackend.GetName())

	if ew, ok := graphics.AsEbitengineWindow(app.window); ok {
		ew.SetEmulatorUpdateFunc(app.tick)
		return ew.Run()
	}

	for app.running {
		if err := app.tick(); err != nil {
			app.logger.Printf("tick error: %v", err)
		}
		if app.window != nil && app.window.ShouldClose() {
			app.Stop()
		}
		if app.headless && app.config.Frames > 0 && app.frameCount >= uint64(app.config.Frames) {
			app.Stop()
		}
		time.Sleep(16 * time.Millisecond)
	}

	app.logger.Println("main loop ended")
	return nil
}

// tick processes input, advances the emulator one frame, and renders it.
func (app *Application) tick() error {
	if err := app.processInput(); err != nil {
		app.logger.Printf("input error: %v", err)
	}

	if !app.paused && app.cartridge != nil {
		if err := app.emulator.Update(); err != nil {
			return fmt.Errorf("emulator update: %w", err)
		}
		app.frameCount++
	}

	if err := app.render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// processInput translates queued host input events into controller
// button state on the bus.
func (app *Application) processInput() error {
	if app.window == nil {
		return nil
	}

	events := app.window.PollEvents()
	if len(events) == 0 {
		return nil
	}

	for _, event := range events {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			app.Stop()
			return nil
		case graphics.InputEventTypeButton:
			if app.cartridge == nil {
				continue
			}
			button := graphicsButtonToInputButton(event.Button)
			app.bus.SetControllerButton(0, button, event.Pressed)
		}
	}

	return nil
}

func graphicsButtonToInputButton(gButton graphics.Button) input.Button {
	switch gButton {
	case graphics.ButtonA:
		return input.A
	case graphics.ButtonB:
		return input.B
	case graphics.ButtonSelect:
		return input.Select
	case graphics.ButtonStart:
		return input.Start
	case graphics.ButtonUp:
		return input.Up
	case graphics.ButtonDown:
		return input.Down
	case graphics.ButtonLeft:
		return input.Left
	case graphics.ButtonRight:
		return input.Right
	default:
		return input.A
	}
}

// SetControllerButtons sets all eight button states for a controller port at once.
func (app *Application) SetControllerButtons(controller int, buttons [8]bool) {
	if app.bus != nil {
		app.bus.SetControllerButtons(controller, buttons)
	}
}

// GetBus returns the underlying bus for direct inspection (testing,
// headless frame dumping).
func (app *Application) GetBus() *bus.Bus { return app.bus }

func (app *Application) render() error {
	if app.window == nil {
		return nil
	}
	if app.cartridge == nil {
		return nil
	}

	frame := app.bus.FrameBuffer()
	if app.videoProcessor != nil {
		frame = app.videoProcessor.ProcessFrame(frame)
	}

	if err := app.window.RenderFrame(frame); err != nil {
		return fmt.Errorf("render NES frame: %w", err)
	}

	app.window.SwapBuffers()
	return nil
}

// Stop halts the main loop.
func (app *Application) Stop() { app.running = false }

// Pause halts emulator stepping without stopping the host loop.
func (app *Application) Pause() { app.paused = true }

// Resume resumes emulator stepping.
func (app *Application) Resume() { app.paused = false }

// TogglePause flips the paused state.
func (app *Application) TogglePause() { app.paused = !app.paused }

// Reset resets the bus (CPU/PPU/memory), leaving the loaded cartridge in place.
func (app *Application) Reset() {
	if app.bus != nil {
		app.bus.Reset()
	}
}

// IsRunning reports whether the main loop is active.
func (app *Application) IsRunning() bool { return app.running }

// IsPaused reports whether emulator stepping is paused.
func (app *Application) IsPaused() bool { return app.paused }

// GetFrameCount returns the number of frames rendered so far.
func (app *Application) GetFrameCount() uint64 { return app.frameCount }

// GetUptime returns how long the application has been running.
func (app *Application) GetUptime() time.Duration { return time.Since(app.startTime) }

// GetROMPath returns the path of the currently loaded ROM, if any.
func (app *Application) GetROMPath() string { return app.romPath }

// GetConfig returns the application's configuration.
func (app *Application) GetConfig() *Config { return app.config }

// Cleanup releases graphics and emulator resources.
func (app *Application) Cleanup() error {
	app.logger.Println("cleaning up application resources")

	var lastErr error

	if app.emulator != nil {
		if err := app.emulator.Cleanup(); err != nil {
			lastErr = err
		}
	}
	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
		}
	}
	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
		}
	}

	app.initialized = false
	return lastErr
}

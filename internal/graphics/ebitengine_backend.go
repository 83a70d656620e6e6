//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitengineBackend renders NES frames through Ebitengine, the one
// host-facing dependency this core keeps out-of-scope behind the
// Backend interface.
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow is the Window implementation backing an Ebitengine game.
type EbitengineWindow struct {
	backend            *EbitengineBackend
	title              string
	width              int
	height             int
	game               *EbitengineGame
	running            bool
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game, converting the emulator's
// RGB888 frame buffer into a drawable image each tick.
type EbitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	nesWidth     int
	nesHeight    int
	windowWidth  int
	windowHeight int

	previousKeyStates map[ebiten.Key]bool
	imageBuffer       *image.RGBA
}

// NewEbitengineBackend creates a new Ebitengine graphics backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend.
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window.
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &EbitengineGame{
		nesWidth:          256,
		nesHeight:         240,
		windowWidth:       width,
		windowHeight:      height,
		frameImage:        ebiten.NewImage(256, 240),
		previousKeyStates: make(map[ebiten.Key]bool),
		imageBuffer:       image.NewRGBA(image.Rect(0, 0, 256, 240)),
	}

	window := &EbitengineWindow{backend: b, title: title, width: width, height: height, game: game, running: true}
	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	if b.config.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

// Cleanup releases all Ebitengine resources.
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless reports whether the backend was configured headless.
func (b *EbitengineBackend) IsHeadless() bool { return b.config.Headless }

// GetName returns the backend's identifying name.
func (b *EbitengineBackend) GetName() string { return "Ebitengine" }

// SetTitle sets the window title.
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions.
func (w *EbitengineWindow) GetSize() (width, height int) { return w.width, w.height }

// ShouldClose reports whether the window wants to close.
func (w *EbitengineWindow) ShouldClose() bool { return !w.running }

// SwapBuffers is a no-op: Ebitengine swaps automatically.
func (w *EbitengineWindow) SwapBuffers() {}

// PollEvents drains and returns queued input events.
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame copies an RGB888 256x240 frame buffer into the window's
// backing image.
func (w *EbitengineWindow) RenderFrame(frameBuffer []byte) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	if len(frameBuffer) != 256*240*3 {
		return fmt.Errorf("frame buffer has %d bytes, want %d", len(frameBuffer), 256*240*3)
	}

	img := w.game.imageBuffer
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			offset := (y*256 + x) * 3
			img.SetRGBA(x, y, color.RGBA{
				R: frameBuffer[offset],
				G: frameBuffer[offset+1],
				B: frameBuffer[offset+2],
				A: 255,
			})
		}
	}
	w.game.frameImage.ReplacePixels(img.Pix)
	return nil
}

// Cleanup marks the window closed.
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop; it blocks until the window closes.
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	return ebiten.RunGame(w.game)
}

// SetEmulatorUpdateFunc sets the per-tick emulator driver.
func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// Update implements ebiten.Game.
func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}
	g.processInput()
	if g.window.emulatorUpdateFunc != nil {
		return g.window.emulatorUpdateFunc()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	if g.frameImage == nil {
		screen.Fill(color.RGBA{A: 255})
		return
	}
	screen.Fill(color.RGBA{A: 255})

	op := &ebiten.DrawImageOptions{}
	scaleX := float64(g.windowWidth) / float64(g.nesWidth)
	scaleY := float64(g.windowHeight) / float64(g.nesHeight)
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - float64(g.nesWidth)*scale) / 2
	offsetY := (float64(g.windowHeight) - float64(g.nesHeight)*scale) / 2
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)
}

// Layout implements ebiten.Game.
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

var keyMappings = map[ebiten.Key]Key{
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeySpace:      KeySpace,
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyW:          KeyW,
	ebiten.KeyA:          KeyA,
	ebiten.KeyS:          KeyS,
	ebiten.KeyD:          KeyD,
	ebiten.KeyJ:          KeyJ,
	ebiten.KeyK:          KeyK,
}

var buttonMappings = map[Key]Button{
	KeyUp:    ButtonUp,
	KeyDown:  ButtonDown,
	KeyLeft:  ButtonLeft,
	KeyRight: ButtonRight,
	KeyW:     ButtonUp,
	KeyS:     ButtonDown,
	KeyA:     ButtonLeft,
	KeyD:     ButtonRight,
	KeyJ:     ButtonA,
	KeyK:     ButtonB,
	KeyEnter: ButtonStart,
	KeySpace: ButtonSelect,
}

// processInput translates Ebitengine key edges into controller button
// events and queues them for PollEvents.
func (g *EbitengineGame) processInput() {
	if g.window == nil {
		return
	}

	var events []InputEvent
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}

	for ebitenKey, key := range keyMappings {
		var pressed bool
		var changed bool
		if inpututil.IsKeyJustPressed(ebitenKey) {
			pressed, changed = true, true
		} else if inpututil.IsKeyJustReleased(ebitenKey) {
			pressed, changed = false, true
		}
		if !changed {
			continue
		}
		g.previousKeyStates[ebitenKey] = pressed
		if button, ok := buttonMappings[key]; ok {
			events = append(events, InputEvent{Type: InputEventTypeButton, Button: button, Pressed: pressed})
		} else {
			events = append(events, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: pressed})
		}
	}

	g.window.events = append(g.window.events, events...)
}

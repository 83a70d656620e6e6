// Package input implements the NES controller shift-register protocol.
package input

// Button identifies one of the eight controller buttons, in the
// order the serial protocol shifts them out.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single NES controller: an 8-bit button latch
// exposed through $4016/$4017 as a serial shift register.
type Controller struct {
	buttons uint8

	strobe        bool
	shiftRegister uint8
	bitPosition   uint8
}

// New creates a Controller with no buttons pressed.
func New() *Controller { return &Controller{} }

// SetButton sets or clears a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight button states at once, in A, B, Select,
// Start, Up, Down, Left, Right order.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	bits := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(bits[i])
		}
	}
}

// IsPressed reports whether button is currently held.
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles a write to $4016: bit 0 is the strobe line. While
// strobe is high the shift register continuously reloads from the
// live button state; the falling edge latches it for the read
// sequence that follows (spec §4.5).
func (c *Controller) Write(value uint8) {
	wasStrobe := c.strobe
	c.strobe = value&1 != 0
	if c.strobe || wasStrobe {
		c.shiftRegister = c.buttons
		c.bitPosition = 0
	}
}

// Read pulls the next bit from the shift register. While strobe is
// held high, every read returns button A and the position never
// advances. Once the eight button bits are exhausted, reads return 1
// as an open-bus substitute (spec §4.5) rather than 0.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}

	if c.bitPosition >= 8 {
		return 1
	}

	bit := c.shiftRegister & 1
	c.shiftRegister >>= 1
	c.bitPosition++
	return bit
}

// Reset clears all controller state.
func (c *Controller) Reset() {
	c.buttons = 0
	c.strobe = false
	c.shiftRegister = 0
	c.bitPosition = 0
}

// InputState owns both controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates two fresh controllers.
func NewInputState() *InputState {
	return &InputState{Controller1: New(), Controller2: New()}
}

// Reset resets both controllers.
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets controller 1's button states.
func (is *InputState) SetButtons1(buttons [8]bool) { is.Controller1.SetButtons(buttons) }

// SetButtons2 sets controller 2's button states.
func (is *InputState) SetButtons2(buttons [8]bool) { is.Controller2.SetButtons(buttons) }

// Read reads from a controller port. $4017 (controller 2) is wired
// but second-controller game logic is out of scope (spec Non-goals);
// the port still answers the same serial protocol.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		return is.Controller2.Read()
	default:
		return 0
	}
}

// Write writes the strobe line to both controller ports; real
// hardware wires $4016 to both shift registers simultaneously.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}

// Package input implements the NES standard controller and its serial port protocol.
package input

// Button represents a controller button. The value is the bit the button
// occupies in the report shifted out on $4016/$4017, A first.
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

var buttonNames = [8]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	for i, name := range buttonNames {
		if b == 1<<i {
			return name
		}
	}
	return "Button(?)"
}

// ParseButton maps a button name to its Button.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(1 << i), true
		}
	}
	return 0, false
}

// Controller represents a standard NES controller
type Controller struct {
	// Current button state
	buttons uint8

	// Serial report, reloaded from buttons while strobe is high
	shiftRegister uint8
	strobe        bool
}

// New creates a new controller instance
func New() *Controller {
	return &Controller{}
}

// Press marks a button as held.
func (c *Controller) Press(button Button) {
	c.buttons |= uint8(button)
}

// Release marks a button as released.
func (c *Controller) Release(button Button) {
	c.buttons &^= uint8(button)
}

// SetButtons replaces the whole button state.
func (c *Controller) SetButtons(buttons uint8) {
	c.buttons = buttons
}

// IsPressed returns true if the specified button is pressed
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// Write handles the strobe register. Any write latches the current buttons;
// while bit 0 stays set every read reloads them.
func (c *Controller) Write(value uint8) {
	c.strobe = value&0x01 != 0
	c.shiftRegister = c.buttons
}

// Read returns the next report bit in bit 0. After eight reads the register
// has filled with ones.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.shiftRegister = c.buttons
	}
	bit := c.shiftRegister & 0x01
	c.shiftRegister = c.shiftRegister>>1 | 0x80
	return bit
}

// Reset clears the latch. Buttons held by the player stay held.
func (c *Controller) Reset() {
	c.shiftRegister = 0
	c.strobe = false
}

// InputState holds the two controller ports
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Controller returns the controller in port n (1 or 2).
func (is *InputState) Controller(n int) *Controller {
	if n == 2 {
		return is.Controller2
	}
	return is.Controller1
}

// Reset resets both controllers
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// Read reads from controller ports
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

// Write writes to controller ports. The strobe reaches both controllers.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}

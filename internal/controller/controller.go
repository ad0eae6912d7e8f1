// Package controller models the standard NES joypad: an 8-bit parallel-in,
// serial-out shift register read one bit at a time through $4016/$4017.
package controller

// Button identifies a joypad line. The order is the order the shift register
// reports them in; OnOff occupies the slot before A and is never shifted out.
type Button int

const (
	OnOff Button = iota
	A
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

var buttonNames = [...]string{"On/Off", "A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if b >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "?"
}

// InputSource reports the live state of the host's buttons.
type InputSource interface {
	IsPressed(Button) bool
}

// Buttons is a fixed InputSource, handy for headless runs and tests.
type Buttons map[Button]bool

func (b Buttons) IsPressed(btn Button) bool { return b[btn] }

// Controller is one joypad port. It polls its InputSource lazily, once per
// read, and never caches button state.
type Controller struct {
	src    InputSource
	strobe bool
	cursor Button
}

func New(src InputSource) *Controller {
	// Reads before the first strobe behave like reads past the last button.
	return &Controller{src: src, cursor: Right}
}

// SetSource swaps the host input. A nil source reports nothing pressed.
func (c *Controller) SetSource(src InputSource) { c.src = src }

// Write handles a CPU write to $4016. Only bit 0 (the strobe line) matters.
// Dropping the strobe from 1 to 0 rewinds the cursor to the slot before A.
func (c *Controller) Write(v byte) {
	high := v&1 != 0
	if c.strobe && !high {
		c.cursor = OnOff
	}
	c.strobe = high
}

// Read returns the next button in bit 0 and advances the cursor. While the
// strobe is held high the register keeps reloading, so every read reports A.
// Once all eight buttons are shifted out, reads return 1.
func (c *Controller) Read() byte {
	if c.strobe {
		return c.state(A)
	}
	if c.cursor >= Right {
		return 1
	}
	c.cursor++
	return c.state(c.cursor)
}

// Peek reports what Read would return without shifting the register.
func (c *Controller) Peek() byte {
	switch {
	case c.strobe:
		return c.state(A)
	case c.cursor >= Right:
		return 1
	}
	return c.state(c.cursor + 1)
}

func (c *Controller) state(b Button) byte {
	if c.src != nil && c.src.IsPressed(b) {
		return 1
	}
	return 0
}

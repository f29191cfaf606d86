// Package ptt drives the transmitter-keying GPIO line and the
// receive-indicator LED line, against the OutputLine seam the
// original firmware's ptt_test.go defines.
package ptt

import "fmt"

// OutputLine is the minimal seam ptt_test.go's mockGPIODLine
// implements; gpiocdevLine in gpiocdev.go satisfies it against real hardware
// via go-gpiocdev.
type OutputLine interface {
	SetValue(v int) error
	Close() error
}

// Controller owns one PTT line and one optional RX LED line. Unlike
// the original's per-channel array of octype lines, one Controller
// models the single half-duplex channel this modem core speaks for.
type Controller struct {
	pttLine    OutputLine
	ledLine    OutputLine
	pttInvert  bool
	ledInvert  bool
}

func New(pttLine, ledLine OutputLine, pttInvert, ledInvert bool) *Controller {
	return &Controller{pttLine: pttLine, ledLine: ledLine, pttInvert: pttInvert, ledInvert: ledInvert}
}

// SetPTT drives the key line. active=true keys the transmitter.
func (c *Controller) SetPTT(active bool) error {
	if c.pttLine == nil {
		return nil
	}
	return c.pttLine.SetValue(level(active, c.pttInvert))
}

// PulseRXLED lights the receive LED. Wired as the llp.OpenSquelch
// side effect: called once per successfully decoded frame.
func (c *Controller) PulseRXLED() {
	if c.ledLine == nil {
		return
	}
	_ = c.ledLine.SetValue(level(true, c.ledInvert))
}

func (c *Controller) ClearRXLED() {
	if c.ledLine == nil {
		return
	}
	_ = c.ledLine.SetValue(level(false, c.ledInvert))
}

func (c *Controller) Close() error {
	var firstErr error
	if c.pttLine != nil {
		if err := c.pttLine.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.ledLine != nil {
		if err := c.ledLine.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close RX LED line: %w", err)
		}
	}
	return firstErr
}

func level(active, invert bool) int {
	if active != invert {
		return 1
	}
	return 0
}

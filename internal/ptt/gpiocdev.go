// +build linux

package ptt

import "github.com/warthog618/go-gpiocdev"

// gpiocdevLine adapts go-gpiocdev's *gpiocdev.Line to OutputLine.
// This is the first real wiring of the dependency: the teacher's
// go.mod already required it but nothing in the teacher's actual
// source imported it, only this package's test-double shape implied
// it (the teacher's real PTT driver used cgo libgpiod instead).
type gpiocdevLine struct {
	line *gpiocdev.Line
}

func OpenLine(chip string, offset int) (OutputLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return &gpiocdevLine{line: line}, nil
}

func (g *gpiocdevLine) SetValue(v int) error {
	return g.line.SetValue(v)
}

func (g *gpiocdevLine) Close() error {
	return g.line.Close()
}

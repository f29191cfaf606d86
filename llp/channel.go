package llp

import "io"

// Channel is the byte-oriented handle the AFSK modem layer exposes.
// GetByte returns io.EOF when no more bytes are currently available
// (non-blocking); it never blocks waiting for new data.
type Channel interface {
	GetByte() (byte, error)
	PutByte(b byte)
	Receiving() bool
	Status() byte
	ClearStatus()
}

var ErrNoData = io.EOF

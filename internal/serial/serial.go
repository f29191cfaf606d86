// Package serial hides operating-system differences for the host
// UART the modem is attached to, in the spirit of the original
// firmware's serial_port.c: open, byte-level non-blocking read,
// blocking write, close.
package serial

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
)

// ErrNoData is returned by GetByte when no byte is currently pending,
// the same way llp.Channel.GetByte reports an empty channel.
var ErrNoData = errors.New("serial: no data available")

// Port is a minimal, byte-level UART handle. A background goroutine
// performs the actual blocking read against the device and feeds a
// buffered channel, so GetByte itself never blocks: the poll loop
// that drives the radio side of the link can keep running even when
// the host side is idle.
type Port struct {
	fd      *term.Term
	bytesCh chan byte
	errCh   chan error
}

var supportedBauds = map[int]bool{
	1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// Open opens devicename (e.g. "/dev/ttyUSB0") at baud bps, 8N1, raw
// mode. baud of 0 leaves the port speed alone.
func Open(devicename string, baud int) (*Port, error) {
	fd, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", devicename, err)
	}

	switch {
	case baud == 0:
		// leave it alone
	case supportedBauds[baud]:
		if err := fd.SetSpeed(baud); err != nil {
			fd.Close()
			return nil, fmt.Errorf("set speed %d on %s: %w", baud, devicename, err)
		}
	default:
		log.Warn("unsupported serial speed, falling back to 4800", "requested", baud, "device", devicename)
		if err := fd.SetSpeed(4800); err != nil {
			fd.Close()
			return nil, fmt.Errorf("set fallback speed on %s: %w", devicename, err)
		}
	}

	p := &Port{
		fd:      fd,
		bytesCh: make(chan byte, 256),
		errCh:   make(chan error, 1),
	}
	go p.readLoop()
	return p, nil
}

// readLoop performs the actual blocking device read on a dedicated
// goroutine and feeds bytesCh, so GetByte can be non-blocking.
func (p *Port) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := p.fd.Read(buf)
		if n == 1 {
			p.bytesCh <- buf[0]
		}
		if err != nil {
			p.errCh <- err
			return
		}
	}
}

func (p *Port) Write(data []byte) (int, error) {
	return p.fd.Write(data)
}

// GetByte returns the next available byte without blocking. It
// returns ErrNoData if nothing is pending yet.
func (p *Port) GetByte() (byte, error) {
	select {
	case b := <-p.bytesCh:
		return b, nil
	case err := <-p.errCh:
		return 0, err
	default:
		return 0, ErrNoData
	}
}

func (p *Port) Close() error {
	return p.fd.Close()
}

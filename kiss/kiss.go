// Package kiss multiplexes a host-facing serial byte stream onto the
// llp link, under one of three framing modes (DIRECT, NMEA, KISS),
// and drives outbound transmission through a p-persistent slotted
// CSMA scheduler.
package kiss

import "time"

const (
	FEND  = 0xC0
	FESC  = 0xDB
	TFEND = 0xDC
	TFESC = 0xDD
)

const (
	CMD_DATA     = 0x00
	CMD_TXDELAY  = 0x01
	CMD_P        = 0x02
	CMD_SLOTTIME = 0x03
	CMD_TXTAIL   = 0x04
)

// Mode is a tagged variant over the three mutually-exclusive serial
// framing modes. Set once at construction; the per-byte handler is
// dispatched on Mode rather than re-checked every byte.
type Mode int

const (
	ModeDirect Mode = iota
	ModeNMEA
	ModeKISS
)

// Params holds the KISS parameter commands (TXDELAY/TXTAIL/SLOTTIME/P)
// as one-byte-payload commands distinct from framed DATA.
type Params struct {
	CustomPreamble int // ms, from TXDELAY * 10
	CustomTail     int // ms, from TXTAIL * 10
	SlotTime       int // ms, from SLOTTIME * 10
	P              byte
}

func defaultParams() Params {
	return Params{SlotTime: 200, P: 255}
}

const maxDirectBuffer = 512

// Context folds the original firmware's file-scope KISS globals
// (IN_FRAME, frame_len, serialBuffer, command, ESCAPE, custom_*,
// slotTime, p, timeout_ticks, skip_sentences) into one structure
// owned exclusively by the serial callback.
type Context struct {
	mode Mode

	buf          []byte
	inFrame      bool
	haveCommand  bool
	awaitingParam bool
	command      byte
	escape       bool

	params Params

	txMaxWait time.Duration
	lastByte  time.Time

	nmeaSkip  int
	nmeaCount int

	// Deliver is invoked once per assembled payload, ready for CSMA
	// transmission.
	Deliver func(payload []byte)
}

// NewContext constructs a Context for one of the three framing modes.
// txMaxWait governs the DIRECT-mode inactivity flush; nmeaSkip is the
// NMEA decimation factor (every nmeaSkip+1'th valid sentence is
// dropped; 0 drops none).
func NewContext(mode Mode, txMaxWait time.Duration, nmeaSkip int, deliver func([]byte)) *Context {
	c := &Context{
		mode:      mode,
		params:    defaultParams(),
		txMaxWait: txMaxWait,
		nmeaSkip:  nmeaSkip,
		Deliver:   deliver,
	}
	if mode == ModeNMEA {
		// Documented quirk, preserved verbatim: the buffer is
		// pre-seeded with the sentence prefix it filters on, so a
		// fresh context's first delivered sentence carries a
		// spurious leading "$GPGGA" ahead of whatever actually
		// arrived. Not fixed here; see DESIGN.md.
		c.buf = append(c.buf, []byte(nmeaPrefix)...)
	}
	return c
}

func (c *Context) Params() Params { return c.params }

// HandleByte feeds one host byte into the framing state machine.
func (c *Context) HandleByte(b byte, now time.Time) {
	switch c.mode {
	case ModeDirect:
		c.handleDirect(b)
	case ModeNMEA:
		c.handleNMEA(b)
	case ModeKISS:
		c.handleKISS(b)
	}
	c.lastByte = now
}

// CheckTimeout force-flushes a partial DIRECT-mode frame once
// txMaxWait has elapsed since the last byte. Callers invoke it
// repeatedly from their poll loop; a full buffer is flushed by
// handleDirect itself.
func (c *Context) CheckTimeout(now time.Time) {
	if c.mode == ModeDirect && c.inFrame && now.Sub(c.lastByte) > c.txMaxWait {
		c.flushDirect()
	}
}

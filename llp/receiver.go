package llp

// Poll drains every byte currently available from the channel,
// running it through the HDLC/FEC state machine. It returns as soon
// as the channel reports no more data; it never blocks.
func (c *Context) Poll() {
	for {
		b, err := c.Channel.GetByte()
		if err != nil {
			return
		}
		c.processByte(b)
	}
}

func (c *Context) processByte(b byte) {
	if c.escape {
		c.escape = false
		if c.sync {
			c.appendFrameByte(b)
		}
		return
	}
	switch b {
	case HDLC_FLAG:
		c.onFlag()
	case HDLC_RESET:
		c.desync()
	case LLP_ESC:
		c.escape = true
	default:
		if c.sync {
			c.appendFrameByte(b)
		}
	}
}

// desync drops out of frame sync, enforcing sync=false ⇒ frameLen=0
// and readLen=0 immediately rather than waiting for the next flag.
func (c *Context) desync() {
	c.sync = false
	c.frameLen = 0
	c.readLen = 0
}

func (c *Context) onFlag() {
	if c.frameLen >= MIN_FRAME_LEN && c.crcOK() {
		c.decode()
	}
	c.sync = true
	c.crcIn = CRC_INIT
	c.frameLen = 0
	c.readLen = 0
	c.correctionsMade = 0
}

func (c *Context) crcOK() bool {
	return c.Config.PassAll || c.crcIn == CRC_CORRECT
}

func (c *Context) appendFrameByte(b byte) {
	if c.frameLen >= MAX_FRAME_LEN {
		c.desync()
		return
	}
	c.buf[c.frameLen] = b
	c.frameLen++

	if c.Config.DisableInterleave {
		c.crcIn = crcUpdate(c.crcIn, b)
		return
	}

	c.readLen++
	if c.readLen%INTERLEAVE_SIZE == 0 {
		c.fecFlush()
	}
}

// fecFlush deinterleaves the 12 bytes just appended, Hamming-corrects
// each of the 4 (a, b, parity) triples in ascending offset order,
// folds the corrected data into crc_in, and compacts the frame buffer
// by discarding the 4 parity bytes.
func (c *Context) fecFlush() {
	blockStart := c.frameLen - INTERLEAVE_SIZE
	var wire [INTERLEAVE_SIZE]byte
	copy(wire[:], c.buf[blockStart:c.frameLen])
	copy(c.interleaveIn[:], wire[:])

	block := Deinterleave(wire)

	out := blockStart
	for i := 0; i < 4; i++ {
		a, b, parity := block[3*i], block[3*i+1], block[3*i+2]
		ca, cb, corrected := correctTriple(a, b, parity)
		c.correctionsMade += corrected
		c.crcIn = crcUpdate(c.crcIn, ca)
		c.crcIn = crcUpdate(c.crcIn, cb)
		c.buf[out] = ca
		out++
		c.buf[out] = cb
		out++
	}
	c.frameLen -= 4
}

// decode strips the header and padding, shifts the payload to offset
// 0, and invokes the delivery hook.
func (c *Context) decode() {
	if c.frameLen < HEADER_SIZE {
		return
	}
	padding := int(c.buf[HEADER_SIZE-1])
	skip := HEADER_SIZE + padding
	newLen := c.frameLen - skip - CRC_SIZE
	if newLen < 0 || skip+newLen > c.frameLen {
		return
	}
	copy(c.buf[0:newLen], c.buf[skip:skip+newLen])
	c.frameLen = newLen

	if c.Config.OpenSquelch {
		c.rxLEDPulse()
	}

	if c.Hook != nil {
		c.Hook(c, c.buf[0:c.frameLen])
	}
}

// rxLEDPulse is overridden by internal/ptt wiring; the default is a
// no-op so the core package has no hardware dependency.
var rxLEDHook func() = nil

func (c *Context) rxLEDPulse() {
	if rxLEDHook != nil {
		rxLEDHook()
	}
}

// SetRXLEDHook lets a host application (internal/ptt) observe every
// successfully decoded frame without the llp package depending on
// GPIO.
func SetRXLEDHook(fn func()) {
	rxLEDHook = fn
}

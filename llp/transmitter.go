package llp

// computePadding returns the zero-fill byte count needed so that
// header + padding + payload + crc is a multiple of DATA_BLOCK_SIZE.
func computePadding(payloadLen int) int {
	total := HEADER_SIZE + CRC_SIZE + payloadLen
	return (DATA_BLOCK_SIZE - (total % DATA_BLOCK_SIZE)) % DATA_BLOCK_SIZE
}

// Send emits exactly one HDLC-delimited, FEC-encoded frame addressed
// to dst, carrying payload. It resets all transmit state at entry.
func (c *Context) Send(dst Address, payload []byte) {
	c.crcOut = CRC_INIT
	c.interleaveCount = 0
	c.sendParityBlock = false

	c.Channel.PutByte(HDLC_FLAG)

	padding := computePadding(len(payload))
	header := [HEADER_SIZE]byte{
		byte(c.Local.Network >> 8), byte(c.Local.Network),
		byte(c.Local.Host >> 8), byte(c.Local.Host),
		byte(dst.Network >> 8), byte(dst.Network),
		byte(dst.Host >> 8), byte(dst.Host),
		0, // flags
		byte(padding),
	}
	for _, b := range header {
		c.sendByte(b)
	}
	for i := 0; i < padding; i++ {
		c.sendByte(0)
	}
	for _, b := range payload {
		c.sendByte(b)
	}

	low := byte(c.crcOut & 0xFF)
	high := byte((c.crcOut >> 8) & 0xFF)
	c.sendByte(low ^ 0xFF)
	c.sendByte(high ^ 0xFF)

	c.Channel.PutByte(HDLC_FLAG)
}

// sendByte feeds one on-wire data byte into the interleaver,
// injecting a parity byte after every second data byte, and flushes
// a full 12-byte interleaved block to the channel once one is ready.
func (c *Context) sendByte(b byte) {
	c.crcOut = crcUpdate(c.crcOut, b)

	if c.Config.DisableInterleave {
		c.putEscaped(b)
		return
	}

	c.interleaveOut[c.interleaveCount] = b
	c.interleaveCount++

	if c.sendParityBlock {
		c.interleaveOut[c.interleaveCount] = ParityBlock(c.lastByte, b)
		c.interleaveCount++
	}
	c.sendParityBlock = !c.sendParityBlock
	c.lastByte = b

	if c.interleaveCount == INTERLEAVE_SIZE {
		var block [INTERLEAVE_SIZE]byte
		copy(block[:], c.interleaveOut[:])
		wire := Interleave(block)
		for _, wb := range wire {
			c.putEscaped(wb)
		}
		c.interleaveCount = 0
	}
}

// putEscaped prefixes LLP_ESC before any byte that would otherwise be
// mistaken for a control byte, then writes the byte.
func (c *Context) putEscaped(b byte) {
	if b == HDLC_FLAG || b == HDLC_RESET || b == LLP_ESC {
		c.Channel.PutByte(LLP_ESC)
	}
	c.Channel.PutByte(b)
}

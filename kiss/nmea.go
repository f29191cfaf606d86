package kiss

import "bytes"

const nmeaPrefix = "$GPGGA"

// handleNMEA accumulates bytes until a '*' checksum marker appears 3
// bytes from the current end (the 2 hex checksum digits follow it).
// A buffer that doesn't begin with nmeaPrefix at that point is a
// framing mismatch: it's dropped and the buffer reset, silently, per
// the NMEA error path. Otherwise the trailing CRLF is appended and the
// sentence flushed; every (nmeaSkip+1)'th valid sentence is dropped
// for decimation (none when nmeaSkip is 0).
func (c *Context) handleNMEA(b byte) {
	c.buf = append(c.buf, b)
	if len(c.buf) >= 3 && c.buf[len(c.buf)-3] == '*' {
		if !bytes.HasPrefix(c.buf, []byte(nmeaPrefix)) {
			c.buf = nil
			return
		}

		c.buf = append(c.buf, '\n', '\r')
		payload := c.buf
		c.buf = nil

		c.nmeaCount++
		drop := c.nmeaSkip > 0 && c.nmeaCount%(c.nmeaSkip+1) == 0
		if !drop && c.Deliver != nil {
			c.Deliver(payload)
		}
	}
}

package kiss

import (
	"math/rand"
	"time"
)

// Channel is the subset of llp.Channel the scheduler needs to sense
// carrier and detect overflow, kept narrow so this package does not
// import llp just to run CSMA.
type Channel interface {
	Receiving() bool
	Status() byte
	ClearStatus()
}

// RunCSMA performs slotted p-persistent transmit arbitration. poll
// should drain the receiver (llp.Context.Poll); send should emit the
// waiting packet through the transmitter. The loop never times out on
// its own and takes no cancellation: it returns only by sending or by
// observing a channel error.
//
// The asymmetric drain below is load-bearing: the channel is polled
// only while it is actively receiving, so a contended slot does not
// overrun the receive buffer, but an idle slot wait does not busy-spin
// the receiver for no reason.
func RunCSMA(ctx Channel, p byte, slotTime time.Duration, poll func(), send func()) {
	for {
		if !ctx.Receiving() {
			r := byte(rand.Intn(256))
			if r < p {
				send()
				return
			}
			time.Sleep(slotTime)
			continue
		}
		for ctx.Receiving() {
			poll() // drain so we don't overrun the RX buffer
			if ctx.Status() != 0 {
				ctx.ClearStatus()
				return // drop this packet silently
			}
		}
	}
}

package llp

// Two bit-numbering conventions coexist by design and must not be
// unified: BIT treats bit 1 as the LSB (used by the Hamming parity
// and syndrome math); GET_BIT treats bit 1 as the MSB (used by the
// interleaver's column extraction).

func BIT(b byte, n int) byte {
	return (b >> (n - 1)) & 1
}

func GET_BIT(b byte, n int) byte {
	return (b >> (8 - n)) & 1
}

// parityNibble computes the 4-bit (12,8) Hamming parity for one data
// byte, using the LSB-origin BIT convention.
func parityNibble(x byte) byte {
	p1 := BIT(x, 1) ^ BIT(x, 2) ^ BIT(x, 4) ^ BIT(x, 5) ^ BIT(x, 7)
	p2 := BIT(x, 1) ^ BIT(x, 3) ^ BIT(x, 4) ^ BIT(x, 6) ^ BIT(x, 7)
	p3 := BIT(x, 2) ^ BIT(x, 3) ^ BIT(x, 4) ^ BIT(x, 8)
	p4 := BIT(x, 5) ^ BIT(x, 6) ^ BIT(x, 7) ^ BIT(x, 8)
	return p1 | (p2 << 1) | (p3 << 2) | (p4 << 3)
}

// ParityBlock computes the combined parity byte for a pair of data
// bytes: low nibble covers a, high nibble covers b.
func ParityBlock(a, b byte) byte {
	return parityNibble(a) | (parityNibble(b) << 4)
}

// correctByte applies the (12,8) Hamming syndrome correction to x. It
// reports whether a bit was actually flipped, so the caller can bump
// corrections_made.
func correctByte(x byte, syndrome byte) (byte, bool) {
	switch syndrome {
	case 0, 1, 2, 4, 8:
		return x, false
	case 3:
		return x ^ (1 << 0), true
	case 5:
		return x ^ (1 << 1), true
	case 6:
		return x ^ (1 << 2), true
	case 7:
		return x ^ (1 << 3), true
	case 9:
		return x ^ (1 << 4), true
	case 10:
		return x ^ (1 << 5), true
	case 11:
		return x ^ (1 << 6), true
	case 12:
		return x ^ (1 << 7), true
	default:
		return x, false // unrecoverable, leave unchanged
	}
}

// correctTriple corrects one (a, b, parity) triple. The syndrome is the
// recomputed ParityBlock(a, b) XORed with the received parity byte; its
// low nibble corrects a and its high nibble corrects b, following
// ParityBlock's layout.
func correctTriple(a, b, parity byte) (ca, cb byte, corrected int) {
	syndromes := ParityBlock(a, b) ^ parity
	sLow := syndromes & 0x0F         // corrects a
	sHigh := (syndromes >> 4) & 0x0F // corrects b
	var fixedA, fixedB bool
	ca, fixedA = correctByte(a, sLow)
	cb, fixedB = correctByte(b, sHigh)
	if fixedA {
		corrected++
	}
	if fixedB {
		corrected++
	}
	return ca, cb, corrected
}

var dataPos = [8]int{0, 1, 3, 4, 6, 7, 9, 10}
var parityPos = [4]int{2, 5, 8, 11}
var parityBitPairs = [4][2]int{{1, 5}, {2, 6}, {3, 7}, {4, 8}}

// Interleave permutes a 12-byte block (8 data bytes at dataPos, 4
// parity bytes at parityPos) into wire order: the first 8 output
// bytes are bit-columns (GET_BIT convention) across the 8 data
// bytes, and the last 4 output bytes each carry two bit-columns
// (n, n+4) across the 4 parity bytes. The exact column order was not
// recoverable from the source that survived retrieval; this mapping
// is a self-consistent reconstruction verified by round-trip (see
// DESIGN.md and the interleave involution property test).
func Interleave(block [12]byte) [12]byte {
	var out [12]byte
	for n := 1; n <= 8; n++ {
		var ob byte
		for i, pos := range dataPos {
			if GET_BIT(block[pos], n) == 1 {
				ob |= 1 << uint(7-i)
			}
		}
		out[n-1] = ob
	}
	for k, pair := range parityBitPairs {
		var ob byte
		for i, pos := range parityPos {
			if GET_BIT(block[pos], pair[0]) == 1 {
				ob |= 1 << uint(7-2*i)
			}
			if GET_BIT(block[pos], pair[1]) == 1 {
				ob |= 1 << uint(7-2*i-1)
			}
		}
		out[8+k] = ob
	}
	return out
}

// Deinterleave is the exact inverse of Interleave.
func Deinterleave(wire [12]byte) [12]byte {
	var block [12]byte
	for n := 1; n <= 8; n++ {
		ob := wire[n-1]
		for i, pos := range dataPos {
			if (ob>>uint(7-i))&1 == 1 {
				block[pos] |= 1 << uint(8-n)
			}
		}
	}
	for k, pair := range parityBitPairs {
		ob := wire[8+k]
		for i, pos := range parityPos {
			if (ob>>uint(7-2*i))&1 == 1 {
				block[pos] |= 1 << uint(8-pair[0])
			}
			if (ob>>uint(7-2*i-1))&1 == 1 {
				block[pos] |= 1 << uint(8-pair[1])
			}
		}
	}
	return block
}

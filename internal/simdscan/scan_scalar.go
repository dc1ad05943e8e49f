package simdscan

// lutACTG maps a 2-bit (bit2,bit1) index to the expected uppercase letter,
// matching the table in spec §4.2: index 0b00->A, 0b01->C, 0b10->T, 0b11->G.
var lutACTG = [4]byte{'A', 'C', 'T', 'G'}

const upperFold = 0b1101_1111 // clears bit 5, folding ASCII lowercase to uppercase

// extractFastaScalar is the byte-at-a-time reference classifier: the
// correctness oracle for the AVX-512 path, and its fallback on targets
// without the required vector ISA.
func extractFastaScalar(win *[64]byte, n int, want Want) FastaMask {
	var m FastaMask
	for i := 0; i < n; i++ {
		x := win[i]
		bit := uint64(1) << uint(i)

		if x == '>' {
			m.OpenBracket |= bit
		}
		if x == '\n' {
			m.LineFeeds |= bit
		}

		idx := (x >> 1) & 0b11
		if x&upperFold == lutACTG[idx] {
			m.ActgMask |= bit
		}

		if want.Columnar || want.Packed {
			b2 := uint64((x >> 2) & 1)
			b1 := uint64((x >> 1) & 1)
			m.HighBit |= b2 << uint(i)
			m.LowBit |= b1 << uint(i)

			if want.Packed {
				code := (b2 << 1) | b1
				depositTwoBits(&m.TwoBitsLo, &m.TwoBitsHi, i, code)
			}
		}
	}
	return m
}

func extractFastqScalar(win *[64]byte, n int, want Want) FastqMask {
	var m FastqMask
	for i := 0; i < n; i++ {
		x := win[i]
		bit := uint64(1) << uint(i)

		if x == '\n' {
			m.LineFeeds |= bit
		}

		idx := (x >> 1) & 0b11
		if x&upperFold == lutACTG[idx] {
			m.ActgMask |= bit
		}

		if want.Columnar || want.Packed {
			b2 := uint64((x >> 2) & 1)
			b1 := uint64((x >> 1) & 1)
			m.HighBit |= b2 << uint(i)
			m.LowBit |= b1 << uint(i)

			if want.Packed {
				code := (b2 << 1) | b1
				depositTwoBits(&m.TwoBitsLo, &m.TwoBitsHi, i, code)
			}
		}
	}
	return m
}

// depositTwoBits writes the two-bit code for byte i into the 128-bit
// two_bits word (split across lo/hi uint64 halves), at bit position 2i.
func depositTwoBits(lo, hi *uint64, i int, code uint64) {
	pos := 2 * i
	if pos < 64 {
		*lo |= code << uint(pos)
	} else {
		*hi |= code << uint(pos-64)
	}
}

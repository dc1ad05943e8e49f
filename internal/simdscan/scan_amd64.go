//go:build goexperiment.simd && amd64

package simdscan

import (
	"simd/archsimd"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// NOTE: simd/archsimd is an experimental Go 1.26 package enabled via
// GOEXPERIMENT=simd, amd64-only; a portable SIMD package is planned for the
// future. See https://go.dev/doc/go1.26 and golang.org/issue/73787.
//
// As in the CSV scanner this package is derived from, archsimd.Int8x32's
// Equal().ToBits() lowers to VPMOVB2M, which requires AVX-512BW and raises
// SIGILL on CPUs without it (notably most CI runners) — hence the runtime
// cpu.X86 feature gate below rather than relying on archsimd to refuse.
//
// Only the two compare-driven masks (record-start, newline) are worth
// vectorizing this way: archsimd's demonstrated surface here is limited to
// broadcast/load/equal/tobits, which is exactly enough for "does this byte
// equal a constant" but not for table lookups or bit-plane extraction, so
// the ACTG/two-bit/columnar computation stays scalar even on this path.

const halfChunk = 32

func init() {
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasAVX512VL {
		useAVX512 = true
		fastaAVX512 = extractFastaAVX512
		fastqAVX512 = extractFastqAVX512
	}
}

func compareMask32(data []byte, want byte) uint64 {
	cmp := archsimd.BroadcastInt8x32(int8(want))
	lo := archsimd.LoadInt8x32((*[halfChunk]int8)(unsafe.Pointer(&data[0])))
	loMask := lo.Equal(cmp).ToBits()
	hi := archsimd.LoadInt8x32((*[halfChunk]int8)(unsafe.Pointer(&data[halfChunk])))
	hiMask := hi.Equal(cmp).ToBits()
	return uint64(loMask) | (uint64(hiMask) << 32)
}

func extractFastaAVX512(win *[64]byte, n int, want Want) FastaMask {
	m := extractFastaScalar(win, n, want) // ACTG/two-bit/columnar + exact tail masking
	if n == 64 {
		data := win[:]
		m.OpenBracket = compareMask32(data, '>')
		m.LineFeeds = compareMask32(data, '\n')
	}
	return m
}

func extractFastqAVX512(win *[64]byte, n int, want Want) FastqMask {
	m := extractFastqScalar(win, n, want)
	if n == 64 {
		m.LineFeeds = compareMask32(win[:], '\n')
	}
	return m
}

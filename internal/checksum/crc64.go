// Package checksum computes the CRC64 variant Redis/Valkey uses for the
// RDB trailer (the "Jones" polynomial, reflected input and output).
// The RDB stream loop observes this value but does not gate parsing on
// it — see internal/rdb's StreamLoop.
package checksum

import (
	"hash/crc64"
	"io"
	"math/bits"
	"sync"
)

// jonesPoly is the polynomial Redis/Valkey uses for its RDB/AOF CRC64
// (the "Jones" CRC-64 variant), distinct from the stdlib's built-in
// ECMA and ISO tables.
const jonesPoly = 0xad93d23594c935a9

var (
	jonesTableOnce sync.Once
	jonesTable     *crc64.Table
)

// buildJonesTable constructs the CRC64 table by hand rather than via
// crc64.MakeTable: MakeTable expects an already-reflected (LSB-first)
// polynomial, but Redis's reference implementation builds its table
// from the polynomial MSB-first and only reflects the finished table
// entries. Feeding the same polynomial straight to MakeTable produces
// a table that silently disagrees with every real RDB trailer.
func buildJonesTable() {
	table := new(crc64.Table)
	for i := 0; i < 256; i++ {
		var bit, crc uint64
		for j := uint8(1); j&0xFF != 0; j <<= 1 {
			bit = crc & 0x8000000000000000
			if uint8(i)&j != 0 {
				if bit == 0 {
					bit = 1
				} else {
					bit = 0
				}
			}
			crc <<= 1
			if bit != 0 {
				crc ^= jonesPoly
			}
		}
		table[i] = bits.Reverse64(crc)
	}
	jonesTable = table
}

// Reader wraps an io.Reader, accumulating a running CRC64 over every
// byte that passes through Read. It is purely observational: nothing in
// the decoder depends on Sum() to make a parsing decision.
//
// raw carries the crc64.Update-native accumulator, pre-inverted so that
// it starts equivalent to Redis's zero initial register; Read chains
// raw Update calls directly (Update is defined to compose across
// chunks), and Sum un-inverts once at the end. This mirrors the
// standard library's own crc32/crc64 streaming digests, which keep
// their accumulator in Update-native form between Write calls and only
// invert when Sum is read.
type Reader struct {
	r   io.Reader
	raw uint64
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	jonesTableOnce.Do(buildJonesTable)
	return &Reader{r: r, raw: ^uint64(0)}
}

func (cr *Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.raw = crc64.Update(cr.raw, jonesTable, p[:n])
	}
	return n, err
}

// Sum returns the running checksum over all bytes read so far.
func (cr *Reader) Sum() uint64 {
	return ^cr.raw
}

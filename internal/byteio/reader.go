// Package byteio provides an offset-tracked binary reader over a
// forward-only byte source, used by the RDB decoder to pull fixed-width
// integers, doubles and exact-length byte runs without ever rewinding.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// ErrUnexpectedEnd is returned whenever a read comes up short of the
// requested byte count, regardless of cause (EOF, closed source,
// cancellation).
var ErrUnexpectedEnd = fmt.Errorf("byteio: unexpected end of stream")

// Reader wraps an io.Reader and tracks how many bytes it has consumed.
// It is not safe for concurrent use.
type Reader struct {
	r      io.Reader
	offset uint64
}

// New wraps r. The returned Reader owns no buffering of its own; callers
// that need buffered reads should wrap r in a *bufio.Reader first.
func New(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed since construction. It is
// observational only — no parsing decision in this package depends on it.
func (r *Reader) Offset() uint64 {
	return r.offset
}

// ReadExact reads exactly n bytes or fails with ErrUnexpectedEnd.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.offset += uint64(read)
	if err != nil {
		return nil, ErrUnexpectedEnd
	}
	return buf, nil
}

// Skip discards the next n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.ReadExact(n)
	return err
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU16BE() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadI16LE() (int16, error) {
	v, err := r.ReadU16LE()
	return int16(v), err
}

func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU32BE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadI32LE() (int32, error) {
	v, err := r.ReadU32LE()
	return int32(v), err
}

func (r *Reader) ReadU64LE() (uint64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI64LE() (int64, error) {
	v, err := r.ReadU64LE()
	return int64(v), err
}

func (r *Reader) ReadU64BE() (uint64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ReadF64LE reads 8 bytes and bit-reinterprets them as an IEEE-754 double.
func (r *Reader) ReadF64LE() (float64, error) {
	v, err := r.ReadU64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

package checksum

import (
	"bytes"
	"io"
	"testing"
)

// Known-answer test: Redis's own crc64.c self-check computes this CRC64
// (Jones polynomial, Redis's init/no-final-XOR convention) over the
// ASCII string "123456789" and expects 0xe9c6d914c4b8d9ca.
func TestReaderKnownVector(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("123456789")))
	if _, err := io.ReadAll(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const want = uint64(0xe9c6d914c4b8d9ca)
	if got := r.Sum(); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

// Chaining across multiple short reads must produce the same result as
// reading the whole payload in one call.
func TestReaderChunkedReadsMatchSingleRead(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	whole := NewReader(bytes.NewReader(data))
	if _, err := io.ReadAll(whole); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunked := NewReader(iotest1ByteReader{bytes.NewReader(data)})
	if _, err := io.ReadAll(chunked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if whole.Sum() != chunked.Sum() {
		t.Fatalf("chunked sum %#x != whole sum %#x", chunked.Sum(), whole.Sum())
	}
}

// iotest1ByteReader forces callers to read one byte at a time,
// regardless of the buffer size offered.
type iotest1ByteReader struct {
	r io.Reader
}

func (r iotest1ByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return r.r.Read(p)
}

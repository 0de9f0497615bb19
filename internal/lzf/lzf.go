// Package lzf wraps github.com/zhuyie/golzf, the LZF decompressor the
// teacher's replication pipeline used for inline-compressed RDB
// strings, with the fixed-output-length convention internal/rdb needs:
// the RDB wire format always declares the decompressed length up front.
package lzf

import (
	"fmt"

	golzf "github.com/zhuyie/golzf"
)

// ErrCorrupted is returned when golzf cannot expand src to exactly
// outLen bytes.
type ErrCorrupted struct {
	Reason string
}

func (e *ErrCorrupted) Error() string {
	return fmt.Sprintf("lzf: corrupted compression: %s", e.Reason)
}

// Decompress expands src, a LZF-compressed block, into exactly outLen
// bytes.
func Decompress(src []byte, outLen int) ([]byte, error) {
	dst := make([]byte, outLen)
	n, err := golzf.Decompress(src, dst)
	if err != nil {
		return nil, &ErrCorrupted{Reason: err.Error()}
	}
	if n != outLen {
		return nil, &ErrCorrupted{Reason: fmt.Sprintf("decompressed length mismatch: expected %d, got %d", outLen, n)}
	}
	return dst, nil
}

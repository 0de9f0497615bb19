// Package rawpass implements the raw-passthrough mode: copy the RDB
// payload straight from the handshake's framed reader to a
// destination writer, without running it through internal/rdb at
// all. Useful for saving a snapshot to disk for later offline
// decoding, or for piping it to another tool.
package rawpass

import (
	"fmt"
	"io"
)

// Copy streams src to dst and returns the number of bytes copied.
func Copy(dst io.Writer, src io.Reader) (int64, error) {
	n, err := io.Copy(dst, src)
	if err != nil {
		return n, fmt.Errorf("rawpass: copy failed after %d bytes: %w", n, err)
	}
	return n, nil
}

package rdb

import (
	"strconv"

	"valkeysnap/internal/byteio"
	"valkeysnap/internal/lzf"
)

// readString decodes one RDB string: a length-prefixed byte run, or one
// of the special encodings (INT8/16/32, LZF) dispatched via the length
// prefix's special-tag bit.
func readString(r *byteio.Reader) ([]byte, error) {
	l, err := readLength(r)
	if err != nil {
		return nil, err
	}

	if !l.Special {
		if l.Value == 0 {
			return []byte{}, nil
		}
		data, err := r.ReadExact(int(l.Value))
		if err != nil {
			return nil, wrapUnexpectedEnd(r, err, "reading string payload")
		}
		return data, nil
	}

	switch l.Value {
	case EncInt8:
		v, err := r.ReadI8()
		if err != nil {
			return nil, wrapUnexpectedEnd(r, err, "reading INT8 string")
		}
		return []byte(strconv.FormatInt(int64(v), 10)), nil

	case EncInt16:
		v, err := r.ReadI16LE()
		if err != nil {
			return nil, wrapUnexpectedEnd(r, err, "reading INT16 string")
		}
		return []byte(strconv.FormatInt(int64(v), 10)), nil

	case EncInt32:
		v, err := r.ReadI32LE()
		if err != nil {
			return nil, wrapUnexpectedEnd(r, err, "reading INT32 string")
		}
		return []byte(strconv.FormatInt(int64(v), 10)), nil

	case EncLZF:
		return readLZFString(r)

	default:
		return nil, newErr(CorruptedEncoding, r.Offset(), int(l.Value), "unknown string special encoding", nil)
	}
}

// readLZFString reads a LengthCodec-encoded compressed length, a
// LengthCodec-encoded uncompressed length, then the compressed payload,
// and decompresses it.
func readLZFString(r *byteio.Reader) ([]byte, error) {
	compLen, err := readLength(r)
	if err != nil {
		return nil, err
	}
	rawLen, err := readLength(r)
	if err != nil {
		return nil, err
	}

	compressed, err := r.ReadExact(int(compLen.Value))
	if err != nil {
		return nil, wrapUnexpectedEnd(r, err, "reading LZF compressed payload")
	}

	out, err := lzf.Decompress(compressed, int(rawLen.Value))
	if err != nil {
		return nil, newErr(CorruptedCompression, r.Offset(), EncLZF, "LZF decompression failed", err)
	}
	return out, nil
}

// formatDouble renders a float64 the way CommandEmitter score formatting
// requires: +inf / -inf / nan sentinels, whole numbers as plain decimal
// integers, everything else via default f64 decimal rendering.
func formatDouble(f float64) string {
	switch {
	case isPosInf(f):
		return "+inf"
	case isNegInf(f):
		return "-inf"
	case isNaN(f):
		return "nan"
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

package rdb

import (
	"math"
	"strconv"

	"valkeysnap/internal/byteio"
)

func isPosInf(f float64) bool { return math.IsInf(f, 1) }
func isNegInf(f float64) bool { return math.IsInf(f, -1) }
func isNaN(f float64) bool    { return math.IsNaN(f) }

// readASCIIDouble decodes the legacy zset/zset-ziplist/zset-listpack
// score encoding: one length byte L, then L ASCII bytes parsed as an
// f64, with three sentinel lengths for the non-finite values.
func readASCIIDouble(r *byteio.Reader) (float64, error) {
	l, err := r.ReadU8()
	if err != nil {
		return 0, wrapUnexpectedEnd(r, err, "reading ASCII double length")
	}
	switch l {
	case doubleLenNegInf:
		return math.Inf(-1), nil
	case doubleLenPosInf:
		return math.Inf(1), nil
	case doubleLenNaN:
		return math.NaN(), nil
	}

	raw, err := r.ReadExact(int(l))
	if err != nil {
		return 0, wrapUnexpectedEnd(r, err, "reading ASCII double payload")
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, newErr(CorruptedEncoding, r.Offset(), -1, "invalid ASCII double", err)
	}
	return f, nil
}

// parseScoreString parses a score rendered as plain ASCII text (as found
// inside ziplist/listpack entries after PackedContainerCodec has already
// turned them into byte strings), honoring the same sentinels as
// readASCIIDouble where present.
func parseScoreString(s []byte) (float64, error) {
	switch string(s) {
	case "+inf", "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(string(s), 64)
}

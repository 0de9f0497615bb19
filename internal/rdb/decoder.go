package rdb

import (
	"fmt"
	"io"
	"strconv"

	"valkeysnap/internal/byteio"
	"valkeysnap/internal/checksum"
)

// MinSupportedVersion and MaxSupportedVersion bound the RDB versions
// this decoder is built against. Versions outside the range do not abort
// parsing: the version reaches the sink through OnStart unchanged, and
// internal/sink's Progress logs a warning for it.
const (
	MinSupportedVersion = 1
	MaxSupportedVersion = 11
)

// Decoder drives the top-level scan over one RDB payload: the file
// header, the opcode-dispatch main loop, the expiry/aux/resize/selectdb
// sidebands, and the EOF + trailing checksum. It holds at most one
// decoded entry in flight and retains no entry after emitting it.
type Decoder struct {
	cr *checksum.Reader
	r  *byteio.Reader

	sink Sink

	currentDB     int
	currentExpire int64
	totalKeys     int64

	computedChecksum uint64
}

// NewDecoder binds a Decoder to src, the post-handshake RDB byte
// stream, and to the sink that receives decoded observations.
func NewDecoder(src io.Reader, sink Sink) *Decoder {
	cr := checksum.NewReader(src)
	if sink == nil {
		sink = NopSink{}
	}
	return &Decoder{
		cr:            cr,
		r:             byteio.New(cr),
		sink:          sink,
		currentExpire: -1,
	}
}

// Run parses the header and then every entry until the EOF opcode,
// reporting each decoded key to the sink and returning once the trailer
// checksum has been read. Any parse failure is fatal: the loop does not
// attempt to resynchronise, since the RDB stream is not self-framing.
func (d *Decoder) Run() error {
	version, err := d.parseHeader()
	if err != nil {
		d.sink.OnError(err)
		return err
	}
	d.sink.OnStart(version)

	for {
		done, err := d.step()
		if err != nil {
			d.sink.OnError(err)
			return err
		}
		if done {
			return nil
		}
	}
}

func (d *Decoder) parseHeader() (int, error) {
	magic, err := d.r.ReadExact(5)
	if err != nil {
		return 0, newErr(CorruptedHeader, d.r.Offset(), -1, "reading magic", err)
	}
	if string(magic) != "REDIS" {
		return 0, newErr(CorruptedHeader, d.r.Offset(), -1, fmt.Sprintf("bad magic %q", magic), nil)
	}

	versionBytes, err := d.r.ReadExact(4)
	if err != nil {
		return 0, newErr(CorruptedHeader, d.r.Offset(), -1, "reading version", err)
	}
	version, err := strconv.Atoi(string(versionBytes))
	if err != nil {
		return 0, newErr(CorruptedHeader, d.r.Offset(), -1, fmt.Sprintf("unparseable version %q", versionBytes), err)
	}
	// Outside the supported range is tolerated: parsing continues, the
	// caller finds out via the OnStart observation.
	return version, nil
}

// step consumes one opcode. It returns done=true once the EOF opcode
// (and its trailing checksum) has been consumed.
func (d *Decoder) step() (bool, error) {
	opcode, err := d.r.ReadU8()
	if err != nil {
		return false, newErr(UnexpectedEnd, d.r.Offset(), -1, "reading opcode", err)
	}

	switch opcode {
	case OpcodeEOF:
		// The trailer CRC64 covers every byte up to and including
		// this opcode, but not the 8 trailer bytes themselves —
		// capture the running sum before consuming them.
		d.computedChecksum = d.cr.Sum()
		trailer, err := d.r.ReadExact(8)
		if err != nil {
			return false, newErr(UnexpectedEnd, d.r.Offset(), int(opcode), "reading EOF checksum trailer", err)
		}
		d.sink.OnEnd(le64(trailer), d.totalKeys)
		return true, nil

	case OpcodeSelectDB:
		l, err := readLength(d.r)
		if err != nil {
			return false, err
		}
		d.currentDB = int(l.Value)
		d.sink.OnDBSelect(d.currentDB)
		return false, nil

	case OpcodeExpireTime:
		secs, err := d.r.ReadU32LE()
		if err != nil {
			return false, newErr(UnexpectedEnd, d.r.Offset(), int(opcode), "reading EXPIRETIME", err)
		}
		d.currentExpire = int64(secs) * 1000
		return false, nil

	case OpcodeExpireTimeMs:
		ms, err := d.r.ReadI64LE()
		if err != nil {
			return false, newErr(UnexpectedEnd, d.r.Offset(), int(opcode), "reading EXPIRETIME_MS", err)
		}
		d.currentExpire = ms
		return false, nil

	case OpcodeResizeDB:
		if _, err := readLength(d.r); err != nil {
			return false, err
		}
		if _, err := readLength(d.r); err != nil {
			return false, err
		}
		return false, nil

	case OpcodeAux:
		if _, err := readString(d.r); err != nil {
			return false, err
		}
		if _, err := readString(d.r); err != nil {
			return false, err
		}
		return false, nil

	case OpcodeFreq:
		if err := d.r.Skip(1); err != nil {
			return false, newErr(UnexpectedEnd, d.r.Offset(), int(opcode), "reading FREQ", err)
		}
		return false, nil

	case OpcodeIdle:
		if _, err := readLength(d.r); err != nil {
			return false, err
		}
		return false, nil

	case OpcodeModuleAux:
		if _, err := readLength(d.r); err != nil { // module-id length
			return false, err
		}
		if _, err := readLength(d.r); err != nil { // "when" length
			return false, err
		}
		if _, err := decodeModuleValue(d.r, TypeModule2); err != nil {
			return false, err
		}
		return false, nil

	default:
		entry, err := d.parseEntry(opcode)
		if err != nil {
			return false, err
		}
		d.totalKeys++
		d.sink.OnEntry(entry)
		d.currentExpire = -1
		return false, nil
	}
}

func (d *Decoder) parseEntry(typeByte byte) (*Entry, error) {
	key, err := readString(d.r)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Key:        key,
		DB:         d.currentDB,
		ExpireAtMs: d.currentExpire,
	}

	if err := decodeValue(d.r, typeByte, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ComputedChecksum returns the CRC64 Jones checksum this decoder
// accumulated over the stream, valid once Run has reached the EOF
// opcode. A value of 0 in the trailer (reported via Sink.OnEnd) means
// the source had checksums disabled, in which case there is nothing
// to compare this against.
func (d *Decoder) ComputedChecksum() uint64 {
	return d.computedChecksum
}

func le64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

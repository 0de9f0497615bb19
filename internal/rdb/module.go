package rdb

import "valkeysnap/internal/byteio"

const moduleAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// decodeModuleName recovers the module's name from its 64-bit ID: six
// bits per character, nine characters, read most-significant-chunk
// first, with trailing null characters trimmed.
func decodeModuleName(id uint64) string {
	var chars [9]byte
	for i := 8; i >= 0; i-- {
		chars[i] = moduleAlphabet[id&0x3F]
		id >>= 6
	}
	n := 9
	for n > 0 && chars[n-1] == moduleAlphabet[0] {
		n--
	}
	return string(chars[:n])
}

// decodeModuleValue consumes a MODULE (type 6) or MODULE_2 (type 7)
// value. Type 6 carries no opcode framing, so its payload size cannot be
// inferred from the stream alone: it fails with UnsupportedType. Type 7
// is framed as a sequence of (opcode, payload) records terminated by
// opcode 0.
func decodeModuleValue(r *byteio.Reader, typeByte byte) (string, error) {
	// The module ID is itself carried through the ordinary RDB length
	// encoding (it fits the 64-bit length scheme), not a raw 8-byte
	// field.
	moduleID, err := readLength(r)
	if err != nil {
		return "", err
	}
	name := decodeModuleName(moduleID.Value)

	if typeByte == TypeModule {
		return "", newErr(UnsupportedType, r.Offset(), int(typeByte), "MODULE value has no opcode framing; size cannot be inferred for "+name, nil)
	}

	for {
		opcode, err := readLength(r)
		if err != nil {
			return "", err
		}
		switch opcode.Value {
		case 0:
			return name, nil
		case 1, 2:
			if _, err := readLength(r); err != nil {
				return "", err
			}
		case 3, 4:
			if _, err := r.ReadF64LE(); err != nil {
				return "", wrapUnexpectedEnd(r, err, "reading MODULE_2 double field")
			}
		case 5:
			if _, err := readString(r); err != nil {
				return "", err
			}
		default:
			return "", newErr(UnsupportedModule, r.Offset(), int(opcode.Value), "unrecognised MODULE_2 field opcode for "+name, nil)
		}
	}
}

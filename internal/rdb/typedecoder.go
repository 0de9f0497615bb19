package rdb

import "valkeysnap/internal/byteio"

// decodeValue dispatches on the entry-type opcode and fills in the
// value fields of entry. The key, DB and expiry are already set by the
// caller (StreamLoop).
func decodeValue(r *byteio.Reader, typeByte byte, entry *Entry) error {
	switch typeByte {
	case TypeString:
		v, err := readString(r)
		if err != nil {
			return err
		}
		entry.Kind = KindString
		entry.StringValue = v
		return nil

	case TypeList:
		items, err := decodeLengthPrefixedStrings(r)
		if err != nil {
			return err
		}
		entry.Kind = KindList
		entry.ListItems = items
		return nil

	case TypeSet:
		members, err := decodeLengthPrefixedStrings(r)
		if err != nil {
			return err
		}
		entry.Kind = KindSet
		entry.SetMembers = members
		return nil

	case TypeZSet:
		return decodeZSetLegacy(r, entry)

	case TypeHash:
		fields, err := decodeHashStandard(r)
		if err != nil {
			return err
		}
		entry.Kind = KindHash
		entry.HashFields = fields
		return nil

	case TypeZSet2:
		return decodeZSet2(r, entry)

	case TypeModule, TypeModule2:
		name, err := decodeModuleValue(r, typeByte)
		if err != nil {
			return err
		}
		entry.Kind = KindModule
		entry.ModuleName = name
		return nil

	case TypeHashZipmap:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		pairs, err := decodeZipmap(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindHash
		entry.HashFields = pairsToHashFields(pairs)
		return nil

	case TypeListZiplist:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		items, err := decodeZiplist(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindList
		entry.ListItems = items
		return nil

	case TypeSetIntset:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		members, err := decodeIntset(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindSet
		entry.SetMembers = members
		return nil

	case TypeZSetZiplist:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		pairs, err := decodeZiplist(raw)
		if err != nil {
			return err
		}
		entries, err := pairsToZSetEntries(pairs)
		if err != nil {
			return err
		}
		entry.Kind = KindSortedSet
		entry.ZSetEntries = entries
		return nil

	case TypeHashZiplist:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		pairs, err := decodeZiplist(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindHash
		entry.HashFields = pairsToHashFields(pairs)
		return nil

	case TypeListQuicklist:
		items, err := decodeQuicklist(r, false)
		if err != nil {
			return err
		}
		entry.Kind = KindList
		entry.ListItems = items
		return nil

	case TypeStreamListpacks, TypeStreamListpacks2, TypeStreamListpacks3:
		if err := skipStream(r, typeByte); err != nil {
			return err
		}
		entry.Kind = KindStream
		return nil

	case TypeHashListpack:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		pairs, err := decodeListpack(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindHash
		entry.HashFields = pairsToHashFields(pairs)
		return nil

	case TypeZSetListpack:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		pairs, err := decodeListpack(raw)
		if err != nil {
			return err
		}
		entries, err := pairsToZSetEntries(pairs)
		if err != nil {
			return err
		}
		entry.Kind = KindSortedSet
		entry.ZSetEntries = entries
		return nil

	case TypeListQuicklist2:
		items, err := decodeQuicklist(r, true)
		if err != nil {
			return err
		}
		entry.Kind = KindList
		entry.ListItems = items
		return nil

	case TypeSetListpack:
		raw, err := readString(r)
		if err != nil {
			return err
		}
		members, err := decodeListpack(raw)
		if err != nil {
			return err
		}
		entry.Kind = KindSet
		entry.SetMembers = members
		return nil

	default:
		return newErr(CorruptedEncoding, r.Offset(), int(typeByte), "unknown value-type opcode", nil)
	}
}

func decodeLengthPrefixedStrings(r *byteio.Reader) ([][]byte, error) {
	l, err := readLength(r)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, l.Value)
	for i := uint64(0); i < l.Value; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeHashStandard(r *byteio.Reader) ([]HashField, error) {
	l, err := readLength(r)
	if err != nil {
		return nil, err
	}
	out := make([]HashField, 0, l.Value)
	for i := uint64(0); i < l.Value; i++ {
		field, err := readString(r)
		if err != nil {
			return nil, err
		}
		value, err := readString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, HashField{Field: field, Value: value})
	}
	return out, nil
}

func decodeZSetLegacy(r *byteio.Reader, entry *Entry) error {
	l, err := readLength(r)
	if err != nil {
		return err
	}
	out := make([]ZSetEntry, 0, l.Value)
	for i := uint64(0); i < l.Value; i++ {
		member, err := readString(r)
		if err != nil {
			return err
		}
		score, err := readASCIIDouble(r)
		if err != nil {
			return err
		}
		out = append(out, ZSetEntry{Member: member, Score: score})
	}
	entry.Kind = KindSortedSet
	entry.ZSetEntries = out
	return nil
}

func decodeZSet2(r *byteio.Reader, entry *Entry) error {
	l, err := readLength(r)
	if err != nil {
		return err
	}
	out := make([]ZSetEntry, 0, l.Value)
	for i := uint64(0); i < l.Value; i++ {
		member, err := readString(r)
		if err != nil {
			return err
		}
		score, err := r.ReadF64LE()
		if err != nil {
			return wrapUnexpectedEnd(r, err, "reading ZSET_2 score")
		}
		out = append(out, ZSetEntry{Member: member, Score: score})
	}
	entry.Kind = KindSortedSet
	entry.ZSetEntries = out
	return nil
}

// decodeQuicklist handles both RDB_TYPE_LIST_QUICKLIST (legacy: each
// node is always a ziplist) and RDB_TYPE_LIST_QUICKLIST_2 (each node
// carries an explicit container tag: 1 = plain single element, 2 =
// packed listpack).
func decodeQuicklist(r *byteio.Reader, v2 bool) ([][]byte, error) {
	l, err := readLength(r)
	if err != nil {
		return nil, err
	}
	var items [][]byte
	for i := uint64(0); i < l.Value; i++ {
		if !v2 {
			raw, err := readString(r)
			if err != nil {
				return nil, err
			}
			entries, err := decodeZiplist(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, entries...)
			continue
		}

		container, err := readLength(r)
		if err != nil {
			return nil, err
		}
		raw, err := readString(r)
		if err != nil {
			return nil, err
		}
		if container.Value == QuicklistContainerPacked {
			entries, err := decodeListpack(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, entries...)
		} else {
			items = append(items, raw)
		}
	}
	return items, nil
}

func pairsToHashFields(pairs [][]byte) []HashField {
	out := make([]HashField, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, HashField{Field: pairs[i], Value: pairs[i+1]})
	}
	return out
}

func pairsToZSetEntries(pairs [][]byte) ([]ZSetEntry, error) {
	out := make([]ZSetEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		score, err := parseScoreString(pairs[i+1])
		if err != nil {
			return nil, newErr(CorruptedEncoding, 0, -1, "invalid packed-container zset score", err)
		}
		out = append(out, ZSetEntry{Member: pairs[i], Score: score})
	}
	return out, nil
}

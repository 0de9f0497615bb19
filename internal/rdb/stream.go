package rdb

import "valkeysnap/internal/byteio"

// skipStream structurally consumes a STREAM_LISTPACKS / _2 / _3 value
// without surfacing its content: the goal is only to advance the byte
// cursor correctly so the next opcode can be located.
func skipStream(r *byteio.Reader, typeByte byte) error {
	numEntries, err := readLength(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < numEntries.Value; i++ {
		if _, err := readString(r); err != nil { // master ID
			return err
		}
		if _, err := readString(r); err != nil { // listpack
			return err
		}
	}

	// length, last-id-ms, last-id-seq
	if _, err := readLength(r); err != nil {
		return err
	}
	if _, err := readLength(r); err != nil {
		return err
	}
	if _, err := readLength(r); err != nil {
		return err
	}

	if typeByte >= TypeStreamListpacks2 {
		// first-id-ms, first-id-seq, max-deleted-ms, max-deleted-seq,
		// entries-added
		for i := 0; i < 5; i++ {
			if _, err := readLength(r); err != nil {
				return err
			}
		}
	}

	numGroups, err := readLength(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < numGroups.Value; i++ {
		if err := skipStreamGroup(r, typeByte); err != nil {
			return err
		}
	}
	return nil
}

func skipStreamGroup(r *byteio.Reader, typeByte byte) error {
	if _, err := readString(r); err != nil { // group name
		return err
	}
	// last-delivered ms, seq
	if _, err := readLength(r); err != nil {
		return err
	}
	if _, err := readLength(r); err != nil {
		return err
	}
	if typeByte >= TypeStreamListpacks2 {
		if _, err := readLength(r); err != nil { // entries-read
			return err
		}
	}

	pelSize, err := readLength(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < pelSize.Value; i++ {
		if err := r.Skip(16); err != nil { // stream ID
			return wrapUnexpectedEnd(r, err, "reading group PEL entry ID")
		}
		if _, err := r.ReadI64LE(); err != nil { // delivery time
			return wrapUnexpectedEnd(r, err, "reading group PEL delivery time")
		}
		if _, err := readLength(r); err != nil { // delivery count
			return err
		}
	}

	numConsumers, err := readLength(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < numConsumers.Value; i++ {
		if err := skipStreamConsumer(r, typeByte); err != nil {
			return err
		}
	}
	return nil
}

func skipStreamConsumer(r *byteio.Reader, typeByte byte) error {
	if _, err := readString(r); err != nil { // consumer name
		return err
	}
	if _, err := r.ReadI64LE(); err != nil { // seen-time
		return wrapUnexpectedEnd(r, err, "reading consumer seen-time")
	}
	if typeByte >= TypeStreamListpacks3 {
		if _, err := readLength(r); err != nil { // active-time
			return err
		}
	}

	pelSize, err := readLength(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < pelSize.Value; i++ {
		if err := r.Skip(16); err != nil { // stream ID only, no time/count
			return wrapUnexpectedEnd(r, err, "reading consumer PEL entry ID")
		}
	}
	return nil
}

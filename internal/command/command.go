// Package command translates a decoded RDB entry (valkeysnap/internal/rdb.Entry)
// into one or more replay-ready commands, chunking oversized collections
// the way the teacher's FlowWriter batches writes, and appends an
// expiry command when the source key carried one.
package command

import (
	"valkeysnap/internal/rdb"
)

// Defaults mirror the teacher's batch-size defaults for large-collection
// writes.
const (
	DefaultMaxElementsPerCommand = 1000
	DefaultMaxBytesPerCommand    = 4 * 1024 * 1024
)

// Command is one replay-ready command: an uppercase ASCII verb and an
// ordered list of binary arguments.
type Command struct {
	Verb string
	Args [][]byte

	SourceKey []byte
	DB        int
	Seq       int
	Total     int
}

// Emitter turns decoded entries into Commands. It is stateless per
// entry — nothing about one call to Emit depends on a previous call.
type Emitter struct {
	MaxElementsPerCommand int
	MaxBytesPerCommand    int
}

// NewEmitter builds an Emitter with the given chunking ceilings. A
// non-positive value is replaced with the package default.
func NewEmitter(maxElements, maxBytes int) *Emitter {
	if maxElements <= 0 {
		maxElements = DefaultMaxElementsPerCommand
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytesPerCommand
	}
	return &Emitter{MaxElementsPerCommand: maxElements, MaxBytesPerCommand: maxBytes}
}

// Emit produces the replay command sequence for one decoded entry. Empty
// collections emit nothing; Stream and Module entries emit nothing,
// since their content cannot be reconstructed from the core alone.
func (e *Emitter) Emit(entry *rdb.Entry) []Command {
	var cmds []Command

	switch entry.Kind {
	case rdb.KindString:
		cmds = []Command{{Verb: "SET", Args: [][]byte{entry.Key, entry.StringValue}}}

	case rdb.KindList:
		cmds = e.chunkFlat("RPUSH", entry.Key, entry.ListItems)

	case rdb.KindSet:
		cmds = e.chunkFlat("SADD", entry.Key, entry.SetMembers)

	case rdb.KindSortedSet:
		cmds = e.chunkZSet(entry.Key, entry.ZSetEntries)

	case rdb.KindHash:
		cmds = e.chunkHash(entry.Key, entry.HashFields)

	case rdb.KindStream, rdb.KindModule:
		return nil
	}

	if len(cmds) == 0 {
		return nil
	}

	if entry.HasExpiration() {
		cmds = append(cmds, Command{
			Verb: "PEXPIREAT",
			Args: [][]byte{entry.Key, []byte(formatInt64(entry.ExpireAtMs))},
		})
	}

	total := len(cmds)
	for i := range cmds {
		cmds[i].SourceKey = entry.Key
		cmds[i].DB = entry.DB
		cmds[i].Seq = i + 1
		cmds[i].Total = total
	}
	return cmds
}

// chunkFlat splits a flat sequence of values (list items, set members)
// into RPUSH/SADD-style commands obeying both ceilings.
func (e *Emitter) chunkFlat(verb string, key []byte, values [][]byte) []Command {
	if len(values) == 0 {
		return nil
	}

	var cmds []Command
	var args [][]byte
	bytesUsed := 0

	flush := func() {
		if len(args) == 0 {
			return
		}
		cmds = append(cmds, Command{Verb: verb, Args: append([][]byte{key}, args...)})
		args = nil
		bytesUsed = 0
	}

	for _, v := range values {
		if len(args) > 0 && (len(args) >= e.MaxElementsPerCommand || bytesUsed+len(v) > e.MaxBytesPerCommand) {
			flush()
		}
		args = append(args, v)
		bytesUsed += len(v)
	}
	flush()
	return cmds
}

// chunkHash splits field/value pairs into HSET commands; each pair
// counts as two primitive elements for chunking purposes.
func (e *Emitter) chunkHash(key []byte, fields []rdb.HashField) []Command {
	if len(fields) == 0 {
		return nil
	}

	var cmds []Command
	var args [][]byte
	elements := 0
	bytesUsed := 0

	flush := func() {
		if len(args) == 0 {
			return
		}
		cmds = append(cmds, Command{Verb: "HSET", Args: append([][]byte{key}, args...)})
		args = nil
		elements = 0
		bytesUsed = 0
	}

	for _, f := range fields {
		pairBytes := len(f.Field) + len(f.Value)
		if elements > 0 && (elements+2 > e.MaxElementsPerCommand || bytesUsed+pairBytes > e.MaxBytesPerCommand) {
			flush()
		}
		args = append(args, f.Field, f.Value)
		elements += 2
		bytesUsed += pairBytes
	}
	flush()
	return cmds
}

// chunkZSet splits member/score pairs into ZADD commands; each pair
// counts as two primitive elements for chunking purposes.
func (e *Emitter) chunkZSet(key []byte, entries []rdb.ZSetEntry) []Command {
	if len(entries) == 0 {
		return nil
	}

	var cmds []Command
	var args [][]byte
	elements := 0
	bytesUsed := 0

	flush := func() {
		if len(args) == 0 {
			return
		}
		cmds = append(cmds, Command{Verb: "ZADD", Args: append([][]byte{key}, args...)})
		args = nil
		elements = 0
		bytesUsed = 0
	}

	for _, e2 := range entries {
		scoreStr := []byte(FormatScore(e2.Score))
		pairBytes := len(scoreStr) + len(e2.Member)
		if elements > 0 && (elements+2 > e.MaxElementsPerCommand || bytesUsed+pairBytes > e.MaxBytesPerCommand) {
			flush()
		}
		args = append(args, scoreStr, e2.Member)
		elements += 2
		bytesUsed += pairBytes
	}
	flush()
	return cmds
}

package command

import (
	"bytes"
	"testing"

	"valkeysnap/internal/rdb"
)

func TestEmitStringNoExpiry(t *testing.T) {
	e := NewEmitter(0, 0)
	entry := &rdb.Entry{
		Kind:        rdb.KindString,
		Key:         []byte("hello"),
		StringValue: []byte("world"),
		ExpireAtMs:  -1,
	}
	cmds := e.Emit(entry)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	if cmds[0].Verb != "SET" || string(cmds[0].Args[0]) != "hello" || string(cmds[0].Args[1]) != "world" {
		t.Fatalf("unexpected command: %+v", cmds[0])
	}
	if cmds[0].Seq != 1 || cmds[0].Total != 1 {
		t.Fatalf("unexpected seq/total: %+v", cmds[0])
	}
}

// S2: a string with a TTL sideband must emit SET then PEXPIREAT.
func TestEmitStringWithExpiry(t *testing.T) {
	e := NewEmitter(0, 0)
	entry := &rdb.Entry{
		Kind:        rdb.KindString,
		Key:         []byte("hello"),
		StringValue: []byte("world"),
		ExpireAtMs:  50000000,
	}
	cmds := e.Emit(entry)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].Verb != "SET" {
		t.Fatalf("expected SET first, got %s", cmds[0].Verb)
	}
	if cmds[1].Verb != "PEXPIREAT" || string(cmds[1].Args[0]) != "hello" || string(cmds[1].Args[1]) != "50000000" {
		t.Fatalf("unexpected PEXPIREAT command: %+v", cmds[1])
	}
}

func TestEmitEmptyCollectionProducesNoCommands(t *testing.T) {
	e := NewEmitter(0, 0)
	entry := &rdb.Entry{Kind: rdb.KindSet, Key: []byte("k"), ExpireAtMs: -1}
	if cmds := e.Emit(entry); cmds != nil {
		t.Fatalf("expected nil commands for empty set, got %v", cmds)
	}
}

func TestEmitStreamAndModuleProduceNothing(t *testing.T) {
	e := NewEmitter(0, 0)
	for _, kind := range []rdb.EntryKind{rdb.KindStream, rdb.KindModule} {
		entry := &rdb.Entry{Kind: kind, Key: []byte("k"), ExpireAtMs: -1}
		if cmds := e.Emit(entry); cmds != nil {
			t.Fatalf("expected nil commands for kind %v, got %v", kind, cmds)
		}
	}
}

// S5: 2,500 set members with a ceiling of 1,000 elements per command
// must chunk into three SADD commands of 1000/1000/500.
func TestEmitSetChunking(t *testing.T) {
	members := make([][]byte, 2500)
	for i := range members {
		members[i] = []byte{byte(i % 256), byte(i / 256)}
	}
	entry := &rdb.Entry{
		Kind:       rdb.KindSet,
		Key:        []byte("bigset"),
		SetMembers: members,
		ExpireAtMs: -1,
	}

	e := NewEmitter(1000, 0)
	cmds := e.Emit(entry)
	if len(cmds) != 3 {
		t.Fatalf("got %d chunks, want 3", len(cmds))
	}
	wantSizes := []int{1000, 1000, 500}
	for i, want := range wantSizes {
		if cmds[i].Verb != "SADD" {
			t.Fatalf("chunk %d: expected SADD, got %s", i, cmds[i].Verb)
		}
		got := len(cmds[i].Args) - 1 // minus the key
		if got != want {
			t.Fatalf("chunk %d: got %d members, want %d", i, got, want)
		}
		if cmds[i].Seq != i+1 || cmds[i].Total != 3 {
			t.Fatalf("chunk %d: unexpected seq/total: %+v", i, cmds[i])
		}
	}
}

func TestEmitHashChunkingByElementCount(t *testing.T) {
	fields := make([]rdb.HashField, 5)
	for i := range fields {
		fields[i] = rdb.HashField{Field: []byte{byte(i)}, Value: []byte{byte(i)}}
	}
	entry := &rdb.Entry{Kind: rdb.KindHash, Key: []byte("h"), HashFields: fields, ExpireAtMs: -1}

	// 4 elements per command (2 pairs) forces a 2/2/1-pair split.
	e := NewEmitter(4, 0)
	cmds := e.Emit(entry)
	if len(cmds) != 3 {
		t.Fatalf("got %d chunks, want 3", len(cmds))
	}
	if len(cmds[0].Args) != 5 || len(cmds[1].Args) != 5 || len(cmds[2].Args) != 3 {
		t.Fatalf("unexpected chunk arg counts: %d %d %d", len(cmds[0].Args), len(cmds[1].Args), len(cmds[2].Args))
	}
}

// S3: a decoded 3-item list emits a single RPUSH carrying all members
// in order.
func TestEmitListRPush(t *testing.T) {
	e := NewEmitter(0, 0)
	entry := &rdb.Entry{
		Kind:       rdb.KindList,
		Key:        []byte("list"),
		ListItems:  [][]byte{[]byte("1"), []byte("2"), []byte("3")},
		ExpireAtMs: -1,
	}
	cmds := e.Emit(entry)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Verb != "RPUSH" {
		t.Fatalf("got verb %s, want RPUSH", cmd.Verb)
	}
	if string(cmd.Args[0]) != "list" {
		t.Fatalf("got key %q, want list", cmd.Args[0])
	}
	wantMembers := []string{"1", "2", "3"}
	for i, want := range wantMembers {
		if string(cmd.Args[i+1]) != want {
			t.Fatalf("arg %d: got %q, want %q", i+1, cmd.Args[i+1], want)
		}
	}
}

type onlySink struct {
	rdb.NopSink
	entries []*rdb.Entry
}

func (s *onlySink) OnEntry(e *rdb.Entry) { s.entries = append(s.entries, e) }

// S5, full pipeline: decode a real RDB byte stream holding a 2,500
// member set, then run the decoded entry through an Emitter with a
// 1,000-element ceiling and confirm the same 1000/1000/500 chunking
// the unit-level TestEmitSetChunking exercises directly.
func TestDecodeThenEmitSetChunking(t *testing.T) {
	const numMembers = 2500

	var buf bytes.Buffer
	buf.WriteString("REDIS0011")
	buf.Write([]byte{rdb.OpcodeSelectDB, 0x00})
	buf.Write([]byte{rdb.TypeSet})
	buf.Write([]byte{0x06})
	buf.WriteString("bigset")
	// 14-bit length prefix for 2500: top bits 01, value = (first&0x3F)<<8 | next.
	buf.Write([]byte{0x40 | 0x09, 0xC4})
	for i := 0; i < numMembers; i++ {
		buf.Write([]byte{0x02, byte(i % 256), byte(i / 256)})
	}
	buf.Write([]byte{rdb.OpcodeEOF})
	buf.Write(make([]byte, 8))

	sink := &onlySink{}
	d := rdb.NewDecoder(&buf, sink)
	if err := d.Run(); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(sink.entries))
	}
	e := sink.entries[0]
	if e.Kind != rdb.KindSet || len(e.SetMembers) != numMembers {
		t.Fatalf("unexpected decoded entry: kind=%v members=%d", e.Kind, len(e.SetMembers))
	}

	emitter := NewEmitter(1000, 0)
	cmds := emitter.Emit(e)
	if len(cmds) != 3 {
		t.Fatalf("got %d chunks, want 3", len(cmds))
	}
	wantSizes := []int{1000, 1000, 500}
	for i, want := range wantSizes {
		if cmds[i].Verb != "SADD" {
			t.Fatalf("chunk %d: expected SADD, got %s", i, cmds[i].Verb)
		}
		if got := len(cmds[i].Args) - 1; got != want {
			t.Fatalf("chunk %d: got %d members, want %d", i, got, want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	cases := map[float64]string{
		100:                 "100",
		-100:                "-100",
		1.5:                 "1.5",
	}
	for in, want := range cases {
		if got := FormatScore(in); got != want {
			t.Fatalf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
}

package rdb

// EntryKind tags which variant an Entry carries.
type EntryKind int

const (
	KindString EntryKind = iota
	KindList
	KindSet
	KindSortedSet
	KindHash
	KindStream
	KindModule
)

// ZSetEntry is one (member, score) pair of a sorted set, kept in
// source-file order (not score order).
type ZSetEntry struct {
	Member []byte
	Score  float64
}

// HashField is one (field, value) pair of a hash, in field-insertion
// order.
type HashField struct {
	Field []byte
	Value []byte
}

// Entry is a decoded RDB key. Exactly one of the *value* fields is
// meaningful, selected by Kind. ExpireAtMs is -1 when the key carries no
// expiration, and a positive absolute Unix millisecond timestamp
// otherwise.
type Entry struct {
	Kind EntryKind
	Key  []byte
	DB   int

	ExpireAtMs int64

	StringValue []byte
	ListItems   [][]byte
	SetMembers  [][]byte
	ZSetEntries []ZSetEntry
	HashFields  []HashField

	// ModuleName is set only when Kind == KindModule.
	ModuleName string
}

// HasExpiration reports whether the entry carries an absolute
// expiration. A value of 0 or -1 both count as "no expiration" per
// spec.md's boundary case for expiry values.
func (e *Entry) HasExpiration() bool {
	return e.ExpireAtMs > 0
}

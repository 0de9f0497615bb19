package rdb

// Sink receives decoder observations synchronously, on the parsing
// goroutine. Implementations must not block indefinitely — the
// StreamLoop makes no progress while a callback is running.
type Sink interface {
	OnStart(rdbVersion int)
	OnDBSelect(db int)
	OnEntry(entry *Entry)
	OnEnd(checksum uint64, totalKeys int64)
	OnError(err error)
}

// NopSink discards every observation. Useful as an embeddable base for
// sinks that only care about a subset of callbacks.
type NopSink struct{}

func (NopSink) OnStart(int)        {}
func (NopSink) OnDBSelect(int)     {}
func (NopSink) OnEntry(*Entry)     {}
func (NopSink) OnEnd(uint64, int64) {}
func (NopSink) OnError(error)      {}

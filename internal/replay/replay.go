// Package replay executes decoded commands against a destination
// Redis/Valkey instance using the real go-redis client, rather than
// the hand-rolled RESP client the teacher used for its own
// standalone-pipeline path.
package replay

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"valkeysnap/internal/command"
	"valkeysnap/internal/rdb"
)

// Client wraps a go-redis client scoped to one destination database.
type Client struct {
	conn *redis.Client
}

// NewClient dials addr (host:port) and selects db.
func NewClient(addr, password string, db int) *Client {
	return &Client{conn: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Exec runs one command against the destination.
func (c *Client) Exec(ctx context.Context, cmd command.Command) error {
	args := buildArgs(cmd)
	if err := c.conn.Do(ctx, args...).Err(); err != nil {
		return fmt.Errorf("replay: %s %s (chunk %d/%d): %w", cmd.Verb, cmd.SourceKey, cmd.Seq, cmd.Total, err)
	}
	return nil
}

// buildArgs flattens a Command into the positional argument list
// go-redis's variadic Do expects.
func buildArgs(cmd command.Command) []interface{} {
	args := make([]interface{}, 0, len(cmd.Args)+1)
	args = append(args, cmd.Verb)
	for _, a := range cmd.Args {
		args = append(args, a)
	}
	return args
}

// ExecAll runs a sequence of commands in order, stopping at the first
// failure — later commands in the sequence (e.g. a trailing
// PEXPIREAT) assume the earlier ones already landed.
func (c *Client) ExecAll(ctx context.Context, cmds []command.Command) error {
	for _, cmd := range cmds {
		if err := c.Exec(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Sink adapts a replay Client into an rdb.Sink: it emits commands for
// each decoded entry and executes them immediately, rather than
// buffering the whole snapshot in memory first.
type Sink struct {
	rdb.NopSink
	client  *Client
	emitter *command.Emitter
	ctx     context.Context
	onError func(error)

	totalKeys int64
}

// NewSink builds a Sink that replays every emitted command through
// client. onError is called (non-fatally) for each command that
// fails, so one bad key does not abort the whole snapshot.
func NewSink(ctx context.Context, client *Client, emitter *command.Emitter, onError func(error)) *Sink {
	return &Sink{client: client, emitter: emitter, ctx: ctx, onError: onError}
}

// OnEntry emits and executes the replay commands for one decoded
// entry.
func (s *Sink) OnEntry(entry *rdb.Entry) {
	s.totalKeys++
	cmds := s.emitter.Emit(entry)
	if err := s.client.ExecAll(s.ctx, cmds); err != nil && s.onError != nil {
		s.onError(err)
	}
}

// TotalKeys reports how many entries have been replayed so far.
func (s *Sink) TotalKeys() int64 {
	return s.totalKeys
}

// Package netconn dials the TCP connection to a Redis/Valkey primary,
// adapted from the teacher's redisx.Dial: plain TCP only, keepalive
// enabled, no RESP framing (that lives in internal/resp and
// internal/handshake).
package netconn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// KeepAlivePeriod matches the interval Redis/Valkey replicas use to
// detect a dead primary.
const KeepAlivePeriod = 30 * time.Second

// Dial opens a TCP connection to addr and enables keepalive.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	if addr == "" {
		return nil, errors.New("netconn: addr is empty")
	}
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netconn: dial %s: %w", addr, err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetKeepAlive(true); err == nil {
			_ = tcpConn.SetKeepAlivePeriod(KeepAlivePeriod)
		}
	}
	return conn, nil
}

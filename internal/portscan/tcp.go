package portscan

import (
	"context"
	"net"
	"time"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/pkg/rawsock"
)

// tcpScanner is a SYN scan: SYN+ACK means open, RST closed, and silence
// through every retry filtered.
type tcpScanner struct {
	engine
}

// NewTCPv4 returns a SYN scanner for IPv4 destinations.
func NewTCPv4(cfg Config) Scanner {
	return &tcpScanner{engine: newEngine(cfg, rawsock.V4, rawsock.ProtoTCP)}
}

// NewTCPv6 returns a SYN scanner for IPv6 destinations.
func NewTCPv6(cfg Config) Scanner {
	return &tcpScanner{engine: newEngine(cfg, rawsock.V6, rawsock.ProtoTCP)}
}

func (s *tcpScanner) Scan(ctx context.Context, t Target) ([]Result, error) {
	return s.run(ctx, t, func(sess *session, dst net.IP, port int) (PortState, error) {
		return s.probe(sess, dst, port, t.Timeout)
	})
}

// probe sends up to 1+Retries SYNs, each with its own timeout budget.
func (s *tcpScanner) probe(sess *session, dst net.IP, port int, timeout time.Duration) (PortState, error) {
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		p, err := sess.sender.Send(rawsock.ProtoTCP, s.fam, dst, port, attempt)
		if err != nil {
			return "", errors.Wrap(dst.String(), "send syn", err)
		}

		state, ok, err := sess.receiver.AwaitTCP(p, time.Now().Add(timeout))
		if err != nil {
			return "", errors.Wrap(dst.String(), "wait for syn reply", err)
		}
		if ok {
			return state, nil
		}
	}
	return StateFiltered, nil
}

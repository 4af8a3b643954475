package portscan

import (
	"context"
	"net"
	"time"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/pkg/rawsock"
)

// udpScanner sends one empty datagram per port and waits for the ICMP
// port-unreachable it triggers. A port that stays silent for the whole
// timeout is reported open; an open port and a filter that drops the
// datagram look the same from here.
type udpScanner struct {
	engine
}

// NewUDPv4 returns a UDP scanner correlating ICMP replies.
func NewUDPv4(cfg Config) Scanner {
	return &udpScanner{engine: newEngine(cfg, rawsock.V4, rawsock.ProtoUDP)}
}

// NewUDPv6 returns a UDP scanner correlating ICMPv6 replies.
func NewUDPv6(cfg Config) Scanner {
	return &udpScanner{engine: newEngine(cfg, rawsock.V6, rawsock.ProtoUDP)}
}

func (s *udpScanner) Scan(ctx context.Context, t Target) ([]Result, error) {
	return s.run(ctx, t, func(sess *session, dst net.IP, port int) (PortState, error) {
		return s.probe(sess, dst, port, t.Timeout)
	})
}

func (s *udpScanner) probe(sess *session, dst net.IP, port int, timeout time.Duration) (PortState, error) {
	p, err := sess.sender.Send(rawsock.ProtoUDP, s.fam, dst, port, 0)
	if err != nil {
		return "", errors.Wrap(dst.String(), "send datagram", err)
	}

	unreachable, err := sess.receiver.AwaitUnreachable(p, time.Now().Add(timeout))
	if err != nil {
		return "", errors.Wrap(dst.String(), "wait for icmp", err)
	}
	if unreachable {
		return StateClosed, nil
	}
	return StateOpen, nil
}

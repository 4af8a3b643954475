package portscan

import (
	"net"

	"github.com/rs/zerolog"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// ─── probe ────────────────────────────────────────────────────────────────────

// Probe describes one transmitted segment. A new Probe, with a new source
// port, is made for every attempt.
type Probe struct {
	Proto   rawsock.Protocol
	Family  rawsock.Family
	Dst     net.IP
	DstPort int
	SrcPort int
	Attempt int
}

// ─── sender ───────────────────────────────────────────────────────────────────

// Sender builds probe headers and transmits them through a Channel.
type Sender struct {
	ch     Channel
	local  net.IP
	window *PortWindow
	log    zerolog.Logger
}

// NewSender creates a Sender that sources probes from local, drawing source
// ports from window.
func NewSender(ch Channel, local net.IP, window *PortWindow, log zerolog.Logger) *Sender {
	return &Sender{
		ch:     ch,
		local:  local,
		window: window,
		log:    log,
	}
}

// Send transmits a fresh probe for dst:port and returns it.
func (s *Sender) Send(proto rawsock.Protocol, fam rawsock.Family, dst net.IP, port, attempt int) (Probe, error) {
	p := Probe{
		Proto:   proto,
		Family:  fam,
		Dst:     dst,
		DstPort: port,
		SrcPort: s.window.Next(),
		Attempt: attempt,
	}

	packet, err := rawsock.Build(proto, s.local, dst, p.SrcPort, port)
	if err != nil {
		return p, err
	}
	if err := s.ch.Send(packet, dst); err != nil {
		return p, err
	}

	s.log.Debug().
		Str("dst", dst.String()).
		Int("port", port).
		Int("sport", p.SrcPort).
		Int("attempt", attempt).
		Msg("probe sent")
	return p, nil
}

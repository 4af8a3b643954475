package portscan

import (
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// ─── receiver ─────────────────────────────────────────────────────────────────

// Receiver waits on a Channel for the frame answering an outstanding probe.
type Receiver struct {
	ch    Channel
	local net.IP
	log   zerolog.Logger
}

// NewReceiver creates a Receiver that accepts frames addressed to local.
func NewReceiver(ch Channel, local net.IP, log zerolog.Logger) *Receiver {
	return &Receiver{
		ch:    ch,
		local: local,
		log:   log,
	}
}

// AwaitTCP waits until deadline for a SYN+ACK or RST answering p.
// ok is false when the deadline passed first.
func (r *Receiver) AwaitTCP(p Probe, deadline time.Time) (state PortState, ok bool, err error) {
	ok, err = r.await(deadline, func(f rawsock.Frame) bool {
		var matched bool
		state, matched = matchTCP(p, r.local, f)
		return matched
	})
	return state, ok, err
}

// AwaitUnreachable waits until deadline for the ICMP port-unreachable
// message triggered by p.
func (r *Receiver) AwaitUnreachable(p Probe, deadline time.Time) (bool, error) {
	return r.await(deadline, func(f rawsock.Frame) bool {
		return matchUnreachable(p, r.local, f)
	})
}

// await reads frames until match accepts one or deadline passes. The budget
// left is measured again before every read.
func (r *Receiver) await(deadline time.Time, match func(rawsock.Frame) bool) (bool, error) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}

		f, err := r.ch.Recv(remaining)
		if errors.Is(err, rawsock.ErrTimeout) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		if match(f) {
			return true, nil
		}
		r.log.Debug().Str("proto", f.Proto.String()).Str("src", f.Src.String()).Msg("frame ignored")
	}
}

// ─── matching ─────────────────────────────────────────────────────────────────

// matchTCP accepts a segment from p.Dst to local whose ports mirror p.
// Only SYN+ACK and RST are verdicts; other flag combinations do not match.
func matchTCP(p Probe, local net.IP, f rawsock.Frame) (PortState, bool) {
	if f.Proto != rawsock.ProtoTCP || !f.Src.Equal(p.Dst) || !f.Dst.Equal(local) {
		return "", false
	}

	h, err := rawsock.ParseTCP(f.Payload)
	if err != nil {
		return "", false
	}
	if int(h.SrcPort) != p.DstPort || int(h.DstPort) != p.SrcPort {
		return "", false
	}

	switch {
	case h.Has(rawsock.FlagSYN | rawsock.FlagACK):
		return StateOpen, true
	case h.Has(rawsock.FlagRST):
		return StateClosed, true
	}
	return "", false
}

// matchUnreachable accepts a port-unreachable from p.Dst to local that echoes
// a datagram addressed to p.Dst with the UDP ports of p.
func matchUnreachable(p Probe, local net.IP, f rawsock.Frame) bool {
	if f.Proto != p.Family.ICMP() || !f.Src.Equal(p.Dst) || !f.Dst.Equal(local) {
		return false
	}

	u, err := rawsock.ParseUnreachable(p.Family, f.Payload)
	if err != nil {
		return false
	}
	return u.InnerDst.Equal(p.Dst) && int(u.SrcPort) == p.SrcPort && int(u.DstPort) == p.DstPort
}

package portscan

import (
	"context"
	"fmt"
	"net"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/pkg/rawsock"
)

// Scanner scans every destination/port pair of one protocol and address
// family in a target, one probe outstanding at a time. Cancelling ctx stops
// the scan before the next pair is probed.
type Scanner interface {
	Scan(ctx context.Context, t Target) ([]Result, error)
}

// session is the state of one run: its channel's sender and receiver, which
// share a single source-port window.
type session struct {
	sender   *Sender
	receiver *Receiver
}

// engine holds what the protocol scanners share.
type engine struct {
	cfg   Config
	fam   rawsock.Family
	proto rawsock.Protocol
}

func newEngine(cfg Config, fam rawsock.Family, proto rawsock.Protocol) engine {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Open == nil {
		cfg.Open = OpenRaw
	}
	return engine{cfg: cfg, fam: fam, proto: proto}
}

// run opens the channel, probes every destination/port pair in order and
// releases the channel on every return path. No results are returned when a
// probe fails fatally or ctx is done.
func (e engine) run(ctx context.Context, t Target, probe func(s *session, dst net.IP, port int) (PortState, error)) ([]Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	dsts, ports := t.Destinations(e.fam), t.Ports(e.proto)
	if len(dsts) == 0 || len(ports) == 0 {
		return nil, nil
	}
	local := t.Local(e.fam)
	if local == nil {
		return nil, errors.Input("interface", fmt.Sprintf("%s has no %s address", t.Interface, e.fam))
	}

	ch, err := e.cfg.Open(t.Interface, e.fam, e.proto)
	if err != nil {
		return nil, errors.Wrap(t.Interface, fmt.Sprintf("open %s/%s channel", e.proto, e.fam), err)
	}
	defer ch.Close()

	log := e.cfg.Logger.With().
		Str("proto", e.proto.String()).
		Str("family", e.fam.String()).
		Logger()
	s := &session{
		sender:   NewSender(ch, local, NewPortWindow(e.cfg.PortStart, e.cfg.PortEnd), log),
		receiver: NewReceiver(ch, local, log),
	}

	tracker := NewTracker(len(dsts) * len(ports))
	for _, dst := range dsts {
		for _, port := range ports {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			state, err := probe(s, dst, port)
			if err != nil {
				return nil, err
			}
			log.Debug().Str("dst", dst.String()).Int("port", port).Str("state", string(state)).Msg("verdict")
			tracker.Add(Result{
				Address: dst.String(),
				Port:    port,
				Proto:   e.proto.String(),
				State:   state,
			})
		}
	}

	log.Debug().
		Int("open", tracker.Count(StateOpen)).
		Int("closed", tracker.Count(StateClosed)).
		Int("filtered", tracker.Count(StateFiltered)).
		Msg("run complete")
	return tracker.Results(), nil
}

package portscan

import (
	"context"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// runs lists the scanners in output order.
var runs = []struct {
	proto rawsock.Protocol
	fam   rawsock.Family
	build func(Config) Scanner
}{
	{rawsock.ProtoTCP, rawsock.V4, NewTCPv4},
	{rawsock.ProtoTCP, rawsock.V6, NewTCPv6},
	{rawsock.ProtoUDP, rawsock.V4, NewUDPv4},
	{rawsock.ProtoUDP, rawsock.V6, NewUDPv6},
}

// Run scans t as TCP/IPv4, TCP/IPv6, UDP/IPv4 then UDP/IPv6, handing each
// run's verdicts to report once that run has completed. Runs without ports or
// destinations are skipped, as are families the interface has no address for.
// A fatal error or a done ctx stops the remaining runs.
func Run(ctx context.Context, cfg Config, t Target, report func([]Result) error) error {
	if err := t.Validate(); err != nil {
		return err
	}

	for _, r := range runs {
		if len(t.Ports(r.proto)) == 0 || len(t.Destinations(r.fam)) == 0 {
			continue
		}
		if t.Local(r.fam) == nil {
			cfg.Logger.Warn().
				Str("interface", t.Interface).
				Str("family", r.fam.String()).
				Str("proto", r.proto.String()).
				Msg("interface has no address of this family, skipping")
			continue
		}

		results, err := r.build(cfg).Scan(ctx, t)
		if err != nil {
			return err
		}
		if err := report(results); err != nil {
			return err
		}
	}
	return nil
}

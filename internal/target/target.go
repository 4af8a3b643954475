// Package target turns command-line input into a validated portscan.Target:
// it parses port lists, resolves the destination and looks up the addresses
// of the scanning interface.
package target

import (
	"context"
	"net"
	"time"

	"github.com/logivex/l4scan/internal/portscan"
)

// Options is the raw scan request. A nil port list was not requested; a
// non-nil one must parse, even when empty.
type Options struct {
	Interface string
	Host      string
	TCPPorts  *string
	UDPPorts  *string
	Timeout   time.Duration
}

// Build resolves opts into a Target.
func Build(ctx context.Context, opts Options) (portscan.Target, error) {
	return build(ctx, opts, net.DefaultResolver, LookupInterface)
}

func build(ctx context.Context, opts Options, r Resolver, lookup func(string) (Interface, error)) (portscan.Target, error) {
	t := portscan.Target{Timeout: opts.Timeout}

	var err error
	if opts.TCPPorts != nil {
		if t.TCPPorts, err = ParsePorts(*opts.TCPPorts); err != nil {
			return portscan.Target{}, err
		}
	}
	if opts.UDPPorts != nil {
		if t.UDPPorts, err = ParsePorts(*opts.UDPPorts); err != nil {
			return portscan.Target{}, err
		}
	}

	ifi, err := lookup(opts.Interface)
	if err != nil {
		return portscan.Target{}, err
	}
	t.Interface, t.LocalIPv4, t.LocalIPv6 = ifi.Name, ifi.IPv4, ifi.IPv6

	if t.IPv4, t.IPv6, err = Resolve(ctx, r, opts.Host); err != nil {
		return portscan.Target{}, err
	}

	if err := t.Validate(); err != nil {
		return portscan.Target{}, err
	}
	return t, nil
}

package target

import (
	"context"
	"fmt"
	"net"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/pkg/rawsock"
)

// Resolver looks up the addresses of a host name.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Resolve returns the IPv4 and IPv6 destinations for host, deduplicated and
// in resolver order. Literal addresses are returned without a lookup.
func Resolve(ctx context.Context, r Resolver, host string) (v4, v6 []net.IP, err error) {
	if host == "" {
		return nil, nil, errors.Input("target", "no host or address given")
	}

	if ip := net.ParseIP(host); ip != nil {
		v4, v6 = split([]net.IP{ip})
		return v4, v6, nil
	}

	addrs, err := r.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, nil, errors.Input("target", fmt.Sprintf("cannot resolve %s: %s", host, err))
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}
	v4, v6 = split(ips)
	if len(v4) == 0 && len(v6) == 0 {
		return nil, nil, errors.Input("target", fmt.Sprintf("no addresses found for %s", host))
	}
	return v4, v6, nil
}

// split partitions ips by family, dropping duplicates.
func split(ips []net.IP) (v4, v6 []net.IP) {
	seen := make(map[string]bool)
	for _, ip := range ips {
		key := ip.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		fam, ok := rawsock.FamilyOf(ip)
		if !ok {
			continue
		}
		if fam == rawsock.V4 {
			v4 = append(v4, ip.To4())
		} else {
			v6 = append(v6, ip)
		}
	}
	return v4, v6
}

package portscan

import (
	"fmt"
	"net"
	"time"

	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/pkg/rawsock"
)

// Target is a resolved, validated scan request.
type Target struct {
	Interface string
	LocalIPv4 net.IP
	LocalIPv6 net.IP
	IPv4      []net.IP
	IPv6      []net.IP
	TCPPorts  []int
	UDPPorts  []int
	Timeout   time.Duration
}

// Validate rejects targets the engine cannot scan.
func (t Target) Validate() error {
	if t.Interface == "" {
		return errors.Input("interface", "no interface given")
	}
	if len(t.TCPPorts) == 0 && len(t.UDPPorts) == 0 {
		return errors.Input("ports", "no tcp or udp ports to scan")
	}
	if len(t.IPv4) == 0 && len(t.IPv6) == 0 {
		return errors.Input("target", "no destination addresses")
	}
	if t.Timeout <= 0 {
		return errors.Input("timeout", fmt.Sprintf("%s is not positive", t.Timeout))
	}
	for _, list := range [][]int{t.TCPPorts, t.UDPPorts} {
		for _, p := range list {
			if p < 1 || p > 65535 {
				return errors.Input("port", fmt.Sprintf("%d out of range", p))
			}
		}
	}
	for fam, list := range map[rawsock.Family][]net.IP{rawsock.V4: t.IPv4, rawsock.V6: t.IPv6} {
		for _, ip := range list {
			if !fam.Contains(ip) {
				return errors.Input("target", fmt.Sprintf("%s is not an %s address", ip, fam))
			}
		}
	}
	return nil
}

// Destinations returns the destination addresses of fam.
func (t Target) Destinations(fam rawsock.Family) []net.IP {
	if fam == rawsock.V6 {
		return t.IPv6
	}
	return t.IPv4
}

// Local returns the interface address of fam, or nil.
func (t Target) Local(fam rawsock.Family) net.IP {
	if fam == rawsock.V6 {
		return t.LocalIPv6
	}
	return t.LocalIPv4
}

// Ports returns the port list of proto.
func (t Target) Ports(proto rawsock.Protocol) []int {
	if proto == rawsock.ProtoUDP {
		return t.UDPPorts
	}
	return t.TCPPorts
}

package rawsock

import "net"

// ─── family ───────────────────────────────────────────────────────────────────

// Family is an IP address family.
type Family int

const (
	V4 Family = iota
	V6
)

func (f Family) String() string {
	if f == V6 {
		return "ipv6"
	}
	return "ipv4"
}

// ICMP returns the error-reporting protocol of the family.
func (f Family) ICMP() Protocol {
	if f == V6 {
		return ProtoICMPv6
	}
	return ProtoICMP
}

// Contains reports whether ip belongs to the family.
func (f Family) Contains(ip net.IP) bool {
	switch f {
	case V4:
		return ip.To4() != nil
	case V6:
		return ip.To4() == nil && ip.To16() != nil
	}
	return false
}

// FamilyOf returns the family of ip.
func FamilyOf(ip net.IP) (Family, bool) {
	switch {
	case V4.Contains(ip):
		return V4, true
	case V6.Contains(ip):
		return V6, true
	}
	return V4, false
}

// ─── protocol ─────────────────────────────────────────────────────────────────

// Protocol is an IANA protocol number.
type Protocol uint8

const (
	ProtoICMP   Protocol = 1
	ProtoTCP    Protocol = 6
	ProtoUDP    Protocol = 17
	ProtoICMPv6 Protocol = 58
)

func (p Protocol) String() string {
	switch p {
	case ProtoICMP:
		return "icmp"
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	case ProtoICMPv6:
		return "icmpv6"
	}
	return "unknown"
}

package rawsock

import (
	"fmt"
	"net"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// MaxFrameSize is the largest frame read from a raw socket.
const MaxFrameSize = 4096

const icmpHeaderLen = 8

// ─── frame ────────────────────────────────────────────────────────────────────

// Frame is one packet read from a raw socket with its IP layer removed.
type Frame struct {
	Proto   Protocol // protocol of the socket the frame arrived on
	Src     net.IP   // sender of the enclosing IP packet
	Dst     net.IP   // destination of the enclosing IP packet
	Payload []byte   // transport or ICMP message
}

// decodeIPv4 strips the IPv4 header a raw AF_INET socket delivers.
func decodeIPv4(b []byte, proto Protocol) (Frame, error) {
	h, err := ipv4.ParseHeader(b)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrShortFrame, err)
	}
	if h.Len > len(b) {
		return Frame{}, fmt.Errorf("%w: header length %d of %d bytes", ErrShortFrame, h.Len, len(b))
	}

	payload := make([]byte, len(b)-h.Len)
	copy(payload, b[h.Len:])
	return Frame{
		Proto:   proto,
		Src:     h.Src,
		Dst:     h.Dst,
		Payload: payload,
	}, nil
}

// ─── ICMP ─────────────────────────────────────────────────────────────────────

// Unreachable holds the parts of an ICMP port-unreachable message that tie it
// to the UDP datagram which triggered it.
type Unreachable struct {
	InnerDst net.IP
	SrcPort  uint16
	DstPort  uint16
}

// ParseUnreachable decodes an ICMP (V4) or ICMPv6 (V6) message and returns the
// embedded UDP ports. Any message other than port unreachable
// (type 3 code 3, or ICMPv6 type 1 code 4) yields ErrNotUnreachable.
func ParseUnreachable(fam Family, b []byte) (Unreachable, error) {
	msg, err := icmp.ParseMessage(int(fam.ICMP()), b)
	if err != nil {
		return Unreachable{}, fmt.Errorf("%w: %v", ErrShortFrame, err)
	}

	switch fam {
	case V4:
		if msg.Type != ipv4.ICMPTypeDestinationUnreachable || msg.Code != 3 {
			return Unreachable{}, ErrNotUnreachable
		}
	case V6:
		if msg.Type != ipv6.ICMPTypeDestinationUnreachable || msg.Code != 4 {
			return Unreachable{}, ErrNotUnreachable
		}
	}

	body, ok := msg.Body.(*icmp.DstUnreach)
	if !ok {
		return Unreachable{}, ErrNotUnreachable
	}
	inner := body.Data
	if len(inner) == 0 && len(b) > icmpHeaderLen {
		inner = b[icmpHeaderLen:]
	}

	var u Unreachable
	var offset int
	switch fam {
	case V4:
		h, err := ipv4.ParseHeader(inner)
		if err != nil {
			return Unreachable{}, fmt.Errorf("%w: inner ipv4 header: %v", ErrShortFrame, err)
		}
		if h.Protocol != int(ProtoUDP) {
			return Unreachable{}, ErrNotUDP
		}
		u.InnerDst, offset = h.Dst, h.Len
	case V6:
		h, err := ipv6.ParseHeader(inner)
		if err != nil {
			return Unreachable{}, fmt.Errorf("%w: inner ipv6 header: %v", ErrShortFrame, err)
		}
		if h.NextHeader != int(ProtoUDP) {
			return Unreachable{}, ErrNotUDP
		}
		u.InnerDst, offset = h.Dst, ipv6.HeaderLen
	}
	if offset > len(inner) {
		return Unreachable{}, fmt.Errorf("%w: inner header length %d of %d bytes", ErrShortFrame, offset, len(inner))
	}

	u.SrcPort, u.DstPort, err = UDPPorts(inner[offset:])
	if err != nil {
		return Unreachable{}, err
	}
	return u, nil
}

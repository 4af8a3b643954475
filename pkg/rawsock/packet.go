package rawsock

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"net"
)

const (
	TCPHeaderLen = 20
	UDPHeaderLen = 8
)

// TCP flag bits as carried in byte 13 of the header.
const (
	FlagFIN uint8 = 0x01
	FlagSYN uint8 = 0x02
	FlagRST uint8 = 0x04
	FlagPSH uint8 = 0x08
	FlagACK uint8 = 0x10
	FlagURG uint8 = 0x20
)

// ─── TCP header ───────────────────────────────────────────────────────────────

// TCPHeader is an option-less TCP header.
type TCPHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Seq      uint32
	Ack      uint32
	Flags    uint8
	Window   uint16
	Checksum uint16
}

// Has reports whether all bits of flags are set.
func (h TCPHeader) Has(flags uint8) bool {
	return h.Flags&flags == flags
}

// Marshal encodes h in network byte order and fills in the checksum computed
// over the pseudo header for src -> dst. h.Checksum is ignored.
func (h TCPHeader) Marshal(src, dst net.IP) ([]byte, error) {
	b := make([]byte, TCPHeaderLen)

	binary.BigEndian.PutUint16(b[0:2], h.SrcPort) // source port
	binary.BigEndian.PutUint16(b[2:4], h.DstPort) // destination port
	binary.BigEndian.PutUint32(b[4:8], h.Seq)     // sequence number
	binary.BigEndian.PutUint32(b[8:12], h.Ack)    // ack number
	b[12] = (TCPHeaderLen / 4) << 4               // data offset: 5*4=20 bytes
	b[13] = h.Flags
	binary.BigEndian.PutUint16(b[14:16], h.Window) // window size
	// b[16:18] checksum, zero while it is computed
	binary.BigEndian.PutUint16(b[18:20], 0) // urgent pointer

	sum, err := transportChecksum(src, dst, ProtoTCP, b)
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(b[16:18], sum)

	return b, nil
}

// BuildSYN constructs a SYN segment with a random initial sequence number.
// The kernel supplies the IP header.
func BuildSYN(src, dst net.IP, srcPort, dstPort int) ([]byte, error) {
	return TCPHeader{
		SrcPort: uint16(srcPort),
		DstPort: uint16(dstPort),
		Seq:     rand.Uint32(),
		Flags:   FlagSYN,
		Window:  65535,
	}.Marshal(src, dst)
}

// ParseTCP decodes the fixed part of a TCP header.
func ParseTCP(b []byte) (TCPHeader, error) {
	if len(b) < TCPHeaderLen {
		return TCPHeader{}, fmt.Errorf("%w: %d bytes", ErrShortTCPHeader, len(b))
	}
	return TCPHeader{
		SrcPort:  binary.BigEndian.Uint16(b[0:2]),
		DstPort:  binary.BigEndian.Uint16(b[2:4]),
		Seq:      binary.BigEndian.Uint32(b[4:8]),
		Ack:      binary.BigEndian.Uint32(b[8:12]),
		Flags:    b[13],
		Window:   binary.BigEndian.Uint16(b[14:16]),
		Checksum: binary.BigEndian.Uint16(b[16:18]),
	}, nil
}

// ─── UDP header ───────────────────────────────────────────────────────────────

// BuildUDP constructs a payload-less UDP datagram header.
func BuildUDP(src, dst net.IP, srcPort, dstPort int) ([]byte, error) {
	b := make([]byte, UDPHeaderLen)

	binary.BigEndian.PutUint16(b[0:2], uint16(srcPort))
	binary.BigEndian.PutUint16(b[2:4], uint16(dstPort))
	binary.BigEndian.PutUint16(b[4:6], UDPHeaderLen) // length: header only
	// b[6:8] checksum

	sum, err := transportChecksum(src, dst, ProtoUDP, b)
	if err != nil {
		return nil, err
	}
	// an all-zero UDP checksum means "none"; RFC 768 transmits it as all ones
	if sum == 0 {
		sum = 0xffff
	}
	binary.BigEndian.PutUint16(b[6:8], sum)

	return b, nil
}

// UDPPorts returns the source and destination ports of a UDP header.
// Only the first four bytes are required, which is all an ICMP error is
// guaranteed to echo back.
func UDPPorts(b []byte) (src, dst uint16, err error) {
	if len(b) < 4 {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrShortUDPHeader, len(b))
	}
	return binary.BigEndian.Uint16(b[0:2]), binary.BigEndian.Uint16(b[2:4]), nil
}

// Build returns a ready-to-send probe header for proto.
func Build(proto Protocol, src, dst net.IP, srcPort, dstPort int) ([]byte, error) {
	switch proto {
	case ProtoTCP:
		return BuildSYN(src, dst, srcPort, dstPort)
	case ProtoUDP:
		return BuildUDP(src, dst, srcPort, dstPort)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, proto)
}

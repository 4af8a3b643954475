package rawsock

import (
	"encoding/binary"
	"fmt"
	"net"
)

const (
	PseudoHeaderV4Len = 12
	PseudoHeaderV6Len = 40
)

// PseudoHeaderV4 returns the IPv4 pseudo header used as checksum input.
// Layout: src(4) dst(4) zero(1) protocol(1) length(2).
func PseudoHeaderV4(src, dst net.IP, proto Protocol, length int) ([]byte, error) {
	s, d := src.To4(), dst.To4()
	if s == nil || d == nil {
		return nil, fmt.Errorf("%w: ipv4 pseudo header %s -> %s", ErrBadAddress, src, dst)
	}

	h := make([]byte, PseudoHeaderV4Len)
	copy(h[0:4], s)
	copy(h[4:8], d)
	h[8] = 0x00
	h[9] = byte(proto)
	binary.BigEndian.PutUint16(h[10:12], uint16(length))
	return h, nil
}

// PseudoHeaderV6 returns the IPv6 pseudo header used as checksum input.
// Layout: src(16) dst(16) upper-layer length(4) zero(3) next header(1).
func PseudoHeaderV6(src, dst net.IP, proto Protocol, length int) ([]byte, error) {
	if !V6.Contains(src) || !V6.Contains(dst) {
		return nil, fmt.Errorf("%w: ipv6 pseudo header %s -> %s", ErrBadAddress, src, dst)
	}

	h := make([]byte, PseudoHeaderV6Len)
	copy(h[0:16], src.To16())
	copy(h[16:32], dst.To16())
	binary.BigEndian.PutUint32(h[32:36], uint32(length))
	// h[36:39] zero
	h[39] = byte(proto)
	return h, nil
}

// transportChecksum computes the checksum of segment prefixed by the pseudo
// header matching the family of src.
func transportChecksum(src, dst net.IP, proto Protocol, segment []byte) (uint16, error) {
	var (
		pseudo []byte
		err    error
	)
	if V4.Contains(src) {
		pseudo, err = PseudoHeaderV4(src, dst, proto, len(segment))
	} else {
		pseudo, err = PseudoHeaderV6(src, dst, proto, len(segment))
	}
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, len(pseudo)+len(segment))
	buf = append(buf, pseudo...)
	buf = append(buf, segment...)
	return Checksum(buf), nil
}

//go:build linux

package rawsock

import (
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"
)

// ─── Socket ───────────────────────────────────────────────────────────────────

// Socket is a raw transport socket bound to one interface. UDP sockets carry a
// companion ICMP or ICMPv6 socket, since a closed UDP port answers with an ICMP
// error rather than on the UDP socket itself. Both are watched by one epoll
// instance.
type Socket struct {
	fam    Family
	proto  Protocol
	fd     int
	icmpFd int
	epfd   int
	buf    []byte
	oob    []byte
	events []unix.EpollEvent
}

// Open creates the raw socket(s) for fam/proto and binds them to iface.
// Every descriptor acquired before a failure is released before returning.
func Open(iface string, fam Family, proto Protocol) (*Socket, error) {
	if proto != ProtoTCP && proto != ProtoUDP {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, proto)
	}

	s := &Socket{
		fam:    fam,
		proto:  proto,
		fd:     -1,
		icmpFd: -1,
		epfd:   -1,
		buf:    make([]byte, MaxFrameSize),
		events: make([]unix.EpollEvent, 2),
	}
	if fam == V6 {
		s.oob = ipv6.NewControlMessage(ipv6.FlagDst)
	}

	if err := s.open(iface); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Socket) open(iface string) error {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return fmt.Errorf("epoll create: %w", err)
	}
	s.epfd = epfd

	if err := s.attach(&s.fd, iface, s.proto); err != nil {
		return err
	}
	if s.proto == ProtoUDP {
		if err := s.attach(&s.icmpFd, iface, s.fam.ICMP()); err != nil {
			return err
		}
	}
	return nil
}

// attach opens one raw socket, stores it in *dst as soon as it exists so Close
// owns it, binds it to iface and registers it with epoll.
func (s *Socket) attach(dst *int, iface string, proto Protocol) error {
	fd, err := unix.Socket(domain(s.fam), unix.SOCK_RAW|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, int(proto))
	if err != nil {
		return socketErr(fmt.Sprintf("open %s/%s socket", proto, s.fam), err)
	}
	*dst = fd

	if err := unix.BindToDevice(fd, iface); err != nil {
		return socketErr(fmt.Sprintf("bind %s socket to %s", proto, iface), err)
	}

	if s.fam == V6 {
		if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_RECVPKTINFO, 1); err != nil {
			return fmt.Errorf("enable ipv6 packet info: %w", err)
		}
	}
	if proto == ProtoICMPv6 {
		// only destination-unreachable reaches the socket
		var filter unix.ICMPv6Filter
		for i := range filter.Data {
			filter.Data[i] = 0xffffffff
		}
		t := uint32(ipv6.ICMPTypeDestinationUnreachable)
		filter.Data[t>>5] &^= 1 << (t & 31)
		if err := unix.SetsockoptICMPv6Filter(fd, unix.IPPROTO_ICMPV6, unix.ICMPV6_FILTER, &filter); err != nil {
			return fmt.Errorf("set icmpv6 filter: %w", err)
		}
	}

	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(s.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll add: %w", err)
	}
	return nil
}

// Close releases every descriptor. Calling it again is a no-op.
func (s *Socket) Close() error {
	var errs []error
	for _, fd := range []*int{&s.fd, &s.icmpFd, &s.epfd} {
		if *fd < 0 {
			continue
		}
		if err := unix.Close(*fd); err != nil {
			errs = append(errs, err)
		}
		*fd = -1
	}
	return errors.Join(errs...)
}

// Send transmits a transport header to dst. The destination port travels in
// the header itself; raw sockets take no port in the socket address.
func (s *Socket) Send(packet []byte, dst net.IP) error {
	sa, err := sockaddr(s.fam, dst)
	if err != nil {
		return err
	}
	if err := unix.Sendto(s.fd, packet, 0, sa); err != nil {
		return fmt.Errorf("sendto %s: %w", dst, err)
	}
	return nil
}

// Recv waits up to timeout for a frame on any watched socket. Each wake-up
// re-measures the time left, so unrelated traffic consumes the budget rather
// than resetting it. It returns ErrTimeout once the budget is spent.
func (s *Socket) Recv(timeout time.Duration) (Frame, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return Frame{}, ErrTimeout
		}

		n, err := unix.EpollWait(s.epfd, s.events, waitMillis(remaining))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return Frame{}, fmt.Errorf("epoll wait: %w", err)
		}

		for _, ev := range s.events[:n] {
			frame, ok, err := s.read(int(ev.Fd))
			if err != nil {
				return Frame{}, err
			}
			if ok {
				return frame, nil
			}
		}
	}
}

// read receives one packet from fd. ok is false when nothing usable was read:
// the socket had no data after all, or the packet was too short to decode.
func (s *Socket) read(fd int) (Frame, bool, error) {
	proto := s.proto
	if fd == s.icmpFd {
		proto = s.fam.ICMP()
	}

	if s.fam == V4 {
		n, _, err := unix.Recvfrom(fd, s.buf, 0)
		if err != nil {
			if retryable(err) {
				return Frame{}, false, nil
			}
			return Frame{}, false, fmt.Errorf("recvfrom: %w", err)
		}
		frame, err := decodeIPv4(s.buf[:n], proto)
		if err != nil {
			return Frame{}, false, nil
		}
		return frame, true, nil
	}

	// IPv6 raw sockets deliver no IP header; the destination comes from
	// the packet-info control message.
	n, oobn, _, from, err := unix.Recvmsg(fd, s.buf, s.oob, 0)
	if err != nil {
		if retryable(err) {
			return Frame{}, false, nil
		}
		return Frame{}, false, fmt.Errorf("recvmsg: %w", err)
	}

	frame := Frame{Proto: proto, Payload: make([]byte, n)}
	copy(frame.Payload, s.buf[:n])
	if sa, ok := from.(*unix.SockaddrInet6); ok {
		frame.Src = make(net.IP, net.IPv6len)
		copy(frame.Src, sa.Addr[:])
	}
	var cm ipv6.ControlMessage
	if err := cm.Parse(s.oob[:oobn]); err == nil {
		frame.Dst = cm.Dst
	}
	return frame, true, nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func domain(fam Family) int {
	if fam == V6 {
		return unix.AF_INET6
	}
	return unix.AF_INET
}

func sockaddr(fam Family, ip net.IP) (unix.Sockaddr, error) {
	if !fam.Contains(ip) {
		return nil, fmt.Errorf("%w: %s is not %s", ErrBadAddress, ip, fam)
	}
	if fam == V6 {
		sa := &unix.SockaddrInet6{}
		copy(sa.Addr[:], ip.To16())
		return sa, nil
	}
	sa := &unix.SockaddrInet4{}
	copy(sa.Addr[:], ip.To4())
	return sa, nil
}

// waitMillis rounds d up to whole milliseconds for epoll_wait.
func waitMillis(d time.Duration) int {
	ms := int((d + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return ms
}

// retryable reports whether a receive error is a non-event.
func retryable(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}

func socketErr(op string, err error) error {
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		return &PermissionErr{Op: op}
	}
	return fmt.Errorf("%s: %w", op, err)
}

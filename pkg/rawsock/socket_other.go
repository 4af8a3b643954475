//go:build !linux

package rawsock

import (
	"net"
	"time"
)

// Socket is unavailable outside Linux: binding raw sockets to a device and
// epoll are Linux facilities.
type Socket struct{}

// Open always fails with ErrUnsupported.
func Open(iface string, fam Family, proto Protocol) (*Socket, error) {
	return nil, ErrUnsupported
}

func (s *Socket) Close() error { return nil }

func (s *Socket) Send(packet []byte, dst net.IP) error { return ErrUnsupported }

func (s *Socket) Recv(timeout time.Duration) (Frame, error) { return Frame{}, ErrUnsupported }

package portscan

import (
	"net"
	"time"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// Channel is the raw send/receive path a run drives. *rawsock.Socket is the
// production implementation.
type Channel interface {
	Send(packet []byte, dst net.IP) error
	Recv(timeout time.Duration) (rawsock.Frame, error)
	Close() error
}

// Opener acquires a Channel for one protocol/family run on iface.
type Opener func(iface string, fam rawsock.Family, proto rawsock.Protocol) (Channel, error)

// OpenRaw opens raw sockets bound to iface.
func OpenRaw(iface string, fam rawsock.Family, proto rawsock.Protocol) (Channel, error) {
	sock, err := rawsock.Open(iface, fam, proto)
	if err != nil {
		return nil, err
	}
	return sock, nil
}

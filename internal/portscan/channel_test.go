package portscan

import (
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/logivex/l4scan/pkg/rawsock"
)

// step produces the outcome of one Recv call from the last packet sent.
type step func(sent []byte) (rawsock.Frame, error)

// scriptedChannel replays steps in order and times out once they run out.
type scriptedChannel struct {
	steps   []step
	noise   *rawsock.Frame
	sent    [][]byte
	dsts    []net.IP
	sendErr error
	closed  int
}

func (c *scriptedChannel) Send(packet []byte, dst net.IP) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, packet)
	c.dsts = append(c.dsts, dst)
	return nil
}

func (c *scriptedChannel) Recv(timeout time.Duration) (rawsock.Frame, error) {
	if c.noise != nil {
		time.Sleep(2 * time.Millisecond)
		return *c.noise, nil
	}
	if len(c.steps) == 0 {
		return rawsock.Frame{}, rawsock.ErrTimeout
	}
	s := c.steps[0]
	c.steps = c.steps[1:]

	var last []byte
	if len(c.sent) > 0 {
		last = c.sent[len(c.sent)-1]
	}
	return s(last)
}

func (c *scriptedChannel) Close() error {
	c.closed++
	return nil
}

// sourcePorts returns the source port of every packet sent.
func (c *scriptedChannel) sourcePorts() []int {
	ports := make([]int, 0, len(c.sent))
	for _, p := range c.sent {
		ports = append(ports, int(binary.BigEndian.Uint16(p[0:2])))
	}
	return ports
}

func configWith(ch Channel) Config {
	cfg := DefaultConfig()
	cfg.Open = func(string, rawsock.Family, rawsock.Protocol) (Channel, error) {
		return ch, nil
	}
	return cfg
}

// ─── steps ────────────────────────────────────────────────────────────────────

func timeout() step {
	return func([]byte) (rawsock.Frame, error) {
		return rawsock.Frame{}, rawsock.ErrTimeout
	}
}

// cancelling fires cancel while the probe is waiting, then times out.
func cancelling(cancel context.CancelFunc) step {
	return func([]byte) (rawsock.Frame, error) {
		cancel()
		return rawsock.Frame{}, rawsock.ErrTimeout
	}
}

func fail(err error) step {
	return func([]byte) (rawsock.Frame, error) {
		return rawsock.Frame{}, err
	}
}

// tcpReply answers the last SYN from remote to local with flags. portShift
// skews the echoed ports to produce a non-matching reply.
func tcpReply(t *testing.T, remote, local net.IP, flags uint8, portShift uint16) step {
	return func(sent []byte) (rawsock.Frame, error) {
		syn, err := rawsock.ParseTCP(sent)
		require.NoError(t, err)
		seg, err := rawsock.TCPHeader{
			SrcPort: syn.DstPort + portShift,
			DstPort: syn.SrcPort,
			Seq:     1,
			Ack:     syn.Seq + 1,
			Flags:   flags,
			Window:  1024,
		}.Marshal(remote, local)
		require.NoError(t, err)
		return rawsock.Frame{Proto: rawsock.ProtoTCP, Src: remote, Dst: local, Payload: seg}, nil
	}
}

func frame(f rawsock.Frame) step {
	return func([]byte) (rawsock.Frame, error) {
		return f, nil
	}
}

// unreachable answers the last datagram with an ICMP error of the given code
// from remote to local. portShift skews the embedded destination port.
func unreachable(t *testing.T, fam rawsock.Family, remote, local net.IP, code int, portShift uint16) step {
	return func(sent []byte) (rawsock.Frame, error) {
		sport, dport, err := rawsock.UDPPorts(sent)
		require.NoError(t, err)

		udp := make([]byte, rawsock.UDPHeaderLen)
		binary.BigEndian.PutUint16(udp[0:2], sport)
		binary.BigEndian.PutUint16(udp[2:4], dport+portShift)
		binary.BigEndian.PutUint16(udp[4:6], rawsock.UDPHeaderLen)

		var inner []byte
		var typ icmp.Type
		if fam == rawsock.V4 {
			h := ipv4.Header{
				Version:  ipv4.Version,
				Len:      ipv4.HeaderLen,
				TotalLen: ipv4.HeaderLen + rawsock.UDPHeaderLen,
				TTL:      64,
				Protocol: int(rawsock.ProtoUDP),
				Src:      local,
				Dst:      remote,
			}
			inner, err = h.Marshal()
			require.NoError(t, err)
			typ = ipv4.ICMPTypeDestinationUnreachable
		} else {
			inner = make([]byte, ipv6.HeaderLen)
			inner[0] = 0x60
			inner[6] = byte(rawsock.ProtoUDP)
			inner[7] = 64
			copy(inner[8:24], local.To16())
			copy(inner[24:40], remote.To16())
			typ = ipv6.ICMPTypeDestinationUnreachable
		}

		msg := icmp.Message{Type: typ, Code: code, Body: &icmp.DstUnreach{Data: append(inner, udp...)}}
		b, err := msg.Marshal(nil)
		require.NoError(t, err)
		return rawsock.Frame{Proto: fam.ICMP(), Src: remote, Dst: local, Payload: b}, nil
	}
}

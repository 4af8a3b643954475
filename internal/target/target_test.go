package target

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logivex/l4scan/internal/errors"
)

func ports(s string) *string {
	return &s
}

func staticInterface(ifi Interface, err error) func(string) (Interface, error) {
	return func(string) (Interface, error) { return ifi, err }
}

var eth0 = Interface{
	Name: "eth0",
	IPv4: net.ParseIP("10.0.0.2").To4(),
	IPv6: net.ParseIP("2001:db8::2"),
}

func TestBuild(t *testing.T) {
	r := &fakeResolver{addrs: ipAddrs("192.0.2.1", "2001:db8::1")}
	opts := Options{
		Interface: "eth0",
		Host:      "example.test",
		TCPPorts:  ports("22,80"),
		UDPPorts:  ports("53"),
		Timeout:   2 * time.Second,
	}

	got, err := build(context.Background(), opts, r, staticInterface(eth0, nil))
	require.NoError(t, err)
	assert.Equal(t, "eth0", got.Interface)
	assert.Equal(t, eth0.IPv4, got.LocalIPv4)
	assert.Equal(t, eth0.IPv6, got.LocalIPv6)
	assert.Equal(t, []int{22, 80}, got.TCPPorts)
	assert.Equal(t, []int{53}, got.UDPPorts)
	assert.Equal(t, []string{"192.0.2.1"}, strs(got.IPv4))
	assert.Equal(t, []string{"2001:db8::1"}, strs(got.IPv6))
	assert.Equal(t, 2*time.Second, got.Timeout)
}

func TestBuild_Errors(t *testing.T) {
	base := Options{Interface: "eth0", Host: "192.0.2.1", TCPPorts: ports("80"), Timeout: time.Second}

	tests := []struct {
		name   string
		mutate func(*Options)
		lookup func(string) (Interface, error)
	}{
		{"bad tcp ports", func(o *Options) { o.TCPPorts = ports("80,80") }, staticInterface(eth0, nil)},
		{"bad udp ports", func(o *Options) { o.UDPPorts = ports("0") }, staticInterface(eth0, nil)},
		{"no ports", func(o *Options) { o.TCPPorts = nil }, staticInterface(eth0, nil)},
		{"empty tcp list", func(o *Options) { o.TCPPorts = ports("") }, staticInterface(eth0, nil)},
		{"empty udp list beside tcp", func(o *Options) { o.UDPPorts = ports("") }, staticInterface(eth0, nil)},
		{"no timeout", func(o *Options) { o.Timeout = 0 }, staticInterface(eth0, nil)},
		{"no host", func(o *Options) { o.Host = "" }, staticInterface(eth0, nil)},
		{"interface missing", func(*Options) {}, staticInterface(Interface{}, errors.Input("interface", "eth0 not found or down"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			_, err := build(context.Background(), opts, &fakeResolver{}, tt.lookup)
			require.Error(t, err)
			assert.True(t, errors.IsInput(err))
		})
	}
}

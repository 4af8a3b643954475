package target

import (
	"fmt"
	"net"
	"sort"

	"github.com/logivex/l4scan/internal/errors"
)

// Interface is a network interface and the addresses probes are sourced from.
type Interface struct {
	Name string
	IPv4 net.IP
	IPv6 net.IP
}

// LookupInterface returns the first IPv4 and IPv6 address of the named up
// interface. A non-link-local IPv6 address is preferred.
func LookupInterface(name string) (Interface, error) {
	if name == "" {
		return Interface{}, errors.Input("interface", "no interface given")
	}

	ifi, err := net.InterfaceByName(name)
	if err != nil || ifi.Flags&net.FlagUp == 0 {
		return Interface{}, errors.Input("interface", fmt.Sprintf("%s not found or down", name))
	}
	addrs, err := ifi.Addrs()
	if err != nil {
		return Interface{}, errors.Network(name, fmt.Sprintf("cannot list addresses: %s", err))
	}

	out := pickAddrs(name, addrs)
	if out.IPv4 == nil && out.IPv6 == nil {
		return Interface{}, errors.Input("interface", fmt.Sprintf("%s has no addresses", name))
	}
	return out, nil
}

func pickAddrs(name string, addrs []net.Addr) Interface {
	out := Interface{Name: name}
	var linkLocal net.IP
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil {
			continue
		}

		if ip4 := ip.To4(); ip4 != nil {
			if out.IPv4 == nil {
				out.IPv4 = ip4
			}
			continue
		}
		if ip.IsLinkLocalUnicast() {
			if linkLocal == nil {
				linkLocal = ip
			}
			continue
		}
		if out.IPv6 == nil {
			out.IPv6 = ip
		}
	}
	if out.IPv6 == nil {
		out.IPv6 = linkLocal
	}
	return out
}

// ActiveInterfaces returns the sorted names of up interfaces that carry at
// least one address.
func ActiveInterfaces() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, errors.Network("", fmt.Sprintf("cannot list interfaces: %s", err))
	}

	var names []string
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := ifi.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		names = append(names, ifi.Name)
	}
	sort.Strings(names)
	return names, nil
}

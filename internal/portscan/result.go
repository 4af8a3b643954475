package portscan

import "fmt"

type PortState string

const (
	StateOpen     PortState = "open"
	StateClosed   PortState = "closed"
	StateFiltered PortState = "filtered"
)

// Result is the verdict for one address/port pair.
type Result struct {
	Address string
	Port    int
	Proto   string
	State   PortState
}

// String formats the result as "<address> <port> <protocol> <state>".
func (r Result) String() string {
	return fmt.Sprintf("%s %d %s %s", r.Address, r.Port, r.Proto, r.State)
}

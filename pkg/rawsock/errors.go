package rawsock

import "errors"

var (
	// ErrTimeout is returned by Recv when the wait budget elapses without a frame.
	ErrTimeout = errors.New("timed out waiting for frame")

	// decoding errors; frames that produce them are ignored, never matched
	ErrShortFrame      = errors.New("short frame")
	ErrShortTCPHeader  = errors.New("short TCP header")
	ErrShortUDPHeader  = errors.New("short UDP header")
	ErrNotUnreachable  = errors.New("not a port-unreachable message")
	ErrNotUDP          = errors.New("embedded packet is not UDP")
	ErrBadAddress      = errors.New("address does not match address family")
	ErrUnsupported     = errors.New("raw sockets are not supported on this platform")
	ErrUnknownProtocol = errors.New("unknown transport protocol")
)

// ─── permission error ─────────────────────────────────────────────────────────

// PermissionErr is returned when raw socket creation or interface binding
// fails due to insufficient privileges.
type PermissionErr struct {
	Op string
}

// Error implements the error interface.
func (e *PermissionErr) Error() string {
	if e.Op == "" {
		return "raw socket requires root privileges\n  hint: run with sudo l4scan"
	}
	return e.Op + ": raw socket requires root privileges\n  hint: run with sudo l4scan"
}

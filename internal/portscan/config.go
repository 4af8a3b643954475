package portscan

import (
	"github.com/rs/zerolog"
)

// ─── config ───────────────────────────────────────────────────────────────────

// Config tunes a scan run. Retries is the number of extra SYN transmissions
// after the first one times out; source ports cycle through
// [PortStart, PortEnd).
type Config struct {
	Retries   int
	PortStart int
	PortEnd   int
	Open      Opener
	Logger    zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Retries:   2,
		PortStart: 50000,
		PortEnd:   60000,
		Open:      OpenRaw,
		Logger:    zerolog.Nop(),
	}
}

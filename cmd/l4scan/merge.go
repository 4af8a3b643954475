package main

import (
	"fmt"
	"time"

	"github.com/logivex/l4scan/config"
)

// mergeConfig builds the final config by merging flag values into cfg.
// Priority: flag > config file > default.
func mergeConfig(cfg config.Config, f *flags) (config.Config, error) {
	if f.fs.Changed("wait") {
		if f.wait <= 0 {
			return cfg, fmt.Errorf("wait must be a positive number of milliseconds, got %d", f.wait)
		}
		cfg.Wait = time.Duration(f.wait) * time.Millisecond
	}
	if f.fs.Changed("output") {
		cfg.Output = f.output
	}
	return cfg, nil
}

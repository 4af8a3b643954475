package main

import (
	"time"

	"github.com/logivex/l4scan/config"
)

func defaultTestConfig() config.Config {
	cfg := config.Default()
	cfg.Wait = 1200 * time.Millisecond
	cfg.Output = "json"
	return cfg
}

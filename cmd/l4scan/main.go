package main

import (
	"context"
	"os"

	"github.com/logivex/l4scan/internal/output"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], output.Stdout(), os.Stderr))
}

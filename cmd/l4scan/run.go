package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/logivex/l4scan/config"
	"github.com/logivex/l4scan/internal/errors"
	"github.com/logivex/l4scan/internal/logging"
	"github.com/logivex/l4scan/internal/output"
	"github.com/logivex/l4scan/internal/portscan"
	"github.com/logivex/l4scan/internal/target"
)

// ─── exit codes ───────────────────────────────────────────────────────────────

const (
	exitOK       = 0
	exitInvalid  = 1
	exitInternal = 99
)

// openChannel acquires the raw channel of each run.
var openChannel portscan.Opener = portscan.OpenRaw

// ─── run ──────────────────────────────────────────────────────────────────────

// run parses args, performs the scan and returns the process exit code.
// Cancelling ctx stops the scan before its next probe.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if listOnly(args) {
		return listInterfaces(stdout, stderr)
	}
	if code, done := helpRequested(args, stdout, stderr); done {
		return code
	}

	f := newFlags(stderr)
	if err := f.fs.Parse(args); err != nil {
		return fail(stderr, exitInvalid, err)
	}
	if f.version {
		fmt.Fprintf(stdout, "l4scan v%s\n", version)
		return exitOK
	}

	host, err := hostArg(f)
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}
	if !f.fs.Changed("pt") && !f.fs.Changed("pu") {
		return fail(stderr, exitInvalid, errors.Input("ports", "give tcp ports with -t or udp ports with -u"))
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		return fail(stderr, exitInvalid, fmt.Errorf("cannot load config: %w", err))
	}
	if cfg, err = mergeConfig(cfg, f); err != nil {
		return fail(stderr, exitInvalid, err)
	}

	log, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Debug:   f.debug,
		Console: output.IsTerminal(stderr),
	}, stderr)
	if err != nil {
		return fail(stderr, exitInvalid, fmt.Errorf("invalid log level: %w", err))
	}

	w, err := output.New(cfg.Output, stdout, cfg.Output == output.FormatText && output.IsTerminal(stdout))
	if err != nil {
		return fail(stderr, exitInvalid, err)
	}

	// SIGINT aborts a slow lookup; once probing starts it kills the process
	// as usual.
	lookupCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	t, err := target.Build(lookupCtx, target.Options{
		Interface: f.iface,
		Host:      host,
		TCPPorts:  optional(f, "pt", f.tcp),
		UDPPorts:  optional(f, "pu", f.udp),
		Timeout:   cfg.Wait,
	})
	stop()
	if err != nil {
		return fail(stderr, exitCode(err), err)
	}

	log.Debug().
		Str("interface", t.Interface).
		Int("ipv4", len(t.IPv4)).
		Int("ipv6", len(t.IPv6)).
		Int("tcp_ports", len(t.TCPPorts)).
		Int("udp_ports", len(t.UDPPorts)).
		Dur("wait", t.Timeout).
		Msg("scan started")

	pcfg := portscan.DefaultConfig()
	pcfg.Retries = cfg.Retries
	pcfg.PortStart = cfg.SourcePortStart
	pcfg.PortEnd = cfg.SourcePortEnd
	pcfg.Logger = log
	pcfg.Open = openChannel

	start := time.Now()
	tracker := portscan.NewTracker(0)
	err = portscan.Run(ctx, pcfg, t, func(results []portscan.Result) error {
		for _, r := range results {
			tracker.Add(r)
		}
		return w.Write(results)
	})
	if err != nil {
		code := fail(stderr, exitCode(err), err)
		if errors.IsPermission(err) {
			fmt.Fprintln(stderr, "  hint: run with sudo l4scan, or grant cap_net_raw")
		}
		return code
	}

	meta := output.Meta{
		Target:   host,
		Scanned:  len(tracker.Results()),
		Open:     tracker.Count(portscan.StateOpen),
		Closed:   tracker.Count(portscan.StateClosed),
		Filtered: tracker.Count(portscan.StateFiltered),
		Duration: time.Since(start),
	}
	if err := w.Flush(meta); err != nil {
		return fail(stderr, exitInternal, err)
	}
	if cfg.Output == output.FormatText && output.IsTerminal(stderr) && output.IsTerminal(stdout) {
		output.PrintSummary(stderr, meta)
	}
	return exitOK
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// listOnly reports whether args ask for the interface list: no arguments at
// all, or a lone -i/--interface without a value.
func listOnly(args []string) bool {
	if len(args) == 0 {
		return true
	}
	return len(args) == 1 && (args[0] == "-i" || args[0] == "--interface")
}

// helpRequested prints usage for a lone -h/--help. Help combined with any
// other argument is rejected.
func helpRequested(args []string, stdout, stderr io.Writer) (int, bool) {
	for _, a := range args {
		if a != "-h" && a != "--help" {
			continue
		}
		if len(args) != 1 {
			return fail(stderr, exitInvalid, errors.Input("arguments", "-h/--help takes no other arguments")), true
		}
		printHelp(stdout)
		return exitOK, true
	}
	return 0, false
}

// hostArg returns the single positional host argument.
func hostArg(f *flags) (string, error) {
	switch rest := f.fs.Args(); len(rest) {
	case 1:
		return rest[0], nil
	case 0:
		return "", errors.Input("target", "no host or address given")
	default:
		return "", errors.Input("target", fmt.Sprintf("expected one host, got %d: %v", len(rest), rest))
	}
}

// listInterfaces prints the active interfaces one per line.
func listInterfaces(stdout, stderr io.Writer) int {
	names, err := target.ActiveInterfaces()
	if err != nil {
		return fail(stderr, exitInternal, err)
	}
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return exitOK
}

// exitCode maps err onto the process exit code.
func exitCode(err error) int {
	if errors.IsInput(err) {
		return exitInvalid
	}
	return exitInternal
}

func fail(stderr io.Writer, code int, err error) int {
	fmt.Fprintf(stderr, "error: %s\n", err)
	return code
}

// optional returns the value of a port-list flag, or nil if it was not given.
func optional(f *flags, name, value string) *string {
	if !f.fs.Changed(name) {
		return nil
	}
	return &value
}

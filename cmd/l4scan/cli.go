package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

const version = "0.1.0"

// ─── flags ────────────────────────────────────────────────────────────────────

type flags struct {
	fs *pflag.FlagSet

	iface   string
	tcp     string
	udp     string
	wait    int
	output  string
	config  string
	debug   bool
	version bool
}

// newFlags declares the command-line flags on a fresh FlagSet.
func newFlags(stderr io.Writer) *flags {
	f := &flags{fs: pflag.NewFlagSet("l4scan", pflag.ContinueOnError)}
	f.fs.SetOutput(stderr)
	f.fs.Usage = func() {}
	f.fs.SortFlags = false

	f.fs.StringVarP(&f.iface, "interface", "i", "", "interface to scan from")
	f.fs.StringVarP(&f.tcp, "pt", "t", "", "tcp ports: 22 | 22,80,443 | 1-1024")
	f.fs.StringVarP(&f.udp, "pu", "u", "", "udp ports: 53 | 53,123 | 1-1024")
	f.fs.IntVarP(&f.wait, "wait", "w", 5000, "per-probe timeout in milliseconds")
	f.fs.StringVarP(&f.output, "output", "o", "text", "output format: text, json, csv")
	f.fs.StringVar(&f.config, "config", "", "config file (default: ~/.l4scan.yaml)")
	f.fs.BoolVar(&f.debug, "debug", false, "log every probe to stderr")
	f.fs.BoolVar(&f.version, "version", false, "print version")
	return f
}

// ─── help ─────────────────────────────────────────────────────────────────────

// printHelp prints the full usage message to w.
func printHelp(w io.Writer) {
	fmt.Fprintf(w, `l4scan v%s, a TCP SYN and UDP port scanner

USAGE:
  l4scan -i <interface> [-t <ports>] [-u <ports>] [-w <ms>] <host|address>
  l4scan [-i | --interface]      list active interfaces
  l4scan -h | --help             print this message

TARGET:
  -i, --interface   interface to send probes from
  <host|address>    domain name, IPv4 or IPv6 address

PORTS:
  -t, --pt          tcp ports: 22 | 22,80,443 | 1-1024
  -u, --pu          udp ports: 53 | 53,123 | 1-1024

SCAN:
  -w, --wait        per-probe timeout in milliseconds (default: 5000)

OUTPUT:
  -o, --output      format: text, json, csv (default: text)
  --config          config file (default: ~/.l4scan.yaml)
  --debug           log every probe to stderr
  --version         print version

EXAMPLES:
  sudo l4scan -i eth0 -t 22,80,443 example.com
  sudo l4scan -i eth0 -u 53 -w 1000 192.0.2.1
  sudo l4scan -i lo -t 1-1024 -u 1-1024 ::1
`, version)
}

package target

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/logivex/l4scan/internal/errors"
)

// ParsePorts parses one of three forms: a single port ("80"), a
// comma-separated list ("80,443,8080") without duplicates, or an inclusive
// range ("1000-1024"). The forms cannot be mixed.
func ParsePorts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Input("port", "empty port list")
	}

	if strings.Contains(s, "-") {
		if strings.Contains(s, ",") {
			return nil, errors.Input("port", fmt.Sprintf("%q mixes a range and a list", s))
		}
		lo, hi, _ := strings.Cut(s, "-")
		begin, err := parsePort(lo)
		if err != nil {
			return nil, err
		}
		end, err := parsePort(hi)
		if err != nil {
			return nil, err
		}
		if begin > end {
			return nil, errors.Input("port", fmt.Sprintf("range %q is inverted", s))
		}
		ports := make([]int, 0, end-begin+1)
		for p := begin; p <= end; p++ {
			ports = append(ports, p)
		}
		return ports, nil
	}

	var ports []int
	seen := make(map[int]bool)
	for _, field := range strings.Split(s, ",") {
		p, err := parsePort(field)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, errors.Input("port", fmt.Sprintf("%d listed twice", p))
		}
		seen[p] = true
		ports = append(ports, p)
	}
	return ports, nil
}

func parsePort(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return 0, errors.Input("port", fmt.Sprintf("%q is not a port", s))
	}
	return n, nil
}

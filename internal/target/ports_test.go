package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logivex/l4scan/internal/errors"
)

func TestParsePorts(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"80", []int{80}},
		{" 443 ", []int{443}},
		{"22,80,443", []int{22, 80, 443}},
		{"443,22", []int{443, 22}},
		{"1000-1003", []int{1000, 1001, 1002, 1003}},
		{"7-7", []int{7}},
		{"65535", []int{65535}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePorts(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePorts_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "0", "65536", "-1", "http", "80,80", "80,", "10-5", "1-2,5", "1-", "a-b",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePorts(in)
			require.Error(t, err)
			assert.True(t, errors.IsInput(err))
		})
	}
}

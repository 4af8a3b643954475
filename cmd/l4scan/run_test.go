package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logivex/l4scan/internal/errors"
)

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		code, stdout, stderr := runArgs(arg)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "USAGE:")
		assert.Empty(t, stderr)
	}
}

func TestRun_HelpWithOtherArgs(t *testing.T) {
	code, stdout, stderr := runArgs("-i", "lo", "-h")
	assert.Equal(t, exitInvalid, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error:")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runArgs("--version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, fmt.Sprintf("l4scan v%s\n", version), stdout)
}

func TestRun_ListInterfaces(t *testing.T) {
	for _, args := range [][]string{{}, {"-i"}, {"--interface"}} {
		code, _, stderr := runArgs(args...)
		assert.Equal(t, exitOK, code, "args %v", args)
		assert.Empty(t, stderr)
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	cfg := "--config=" + filepath.Join(t.TempDir(), "none.yaml")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope", "host"}},
		{"tcp flag without list", []string{"-i", "lo", "host", "-t"}},
		{"no host", []string{cfg, "-i", "lo", "-t", "80"}},
		{"two hosts", []string{cfg, "-i", "lo", "-t", "80", "a", "b"}},
		{"no ports", []string{cfg, "-i", "lo", "127.0.0.1"}},
		{"bad port list", []string{cfg, "-i", "lo", "-t", "80,80", "127.0.0.1"}},
		{"empty tcp list", []string{cfg, "-i", "lo", "-t", "", "-u", "5354", "127.0.0.1"}},
		{"empty udp list", []string{cfg, "-i", "lo", "-t", "80", "--pu=", "127.0.0.1"}},
		{"mixed port forms", []string{cfg, "-i", "lo", "-u", "1-5,9", "127.0.0.1"}},
		{"zero wait", []string{cfg, "-i", "lo", "-t", "80", "-w", "0", "127.0.0.1"}},
		{"negative wait", []string{cfg, "-i", "lo", "-t", "80", "--wait=-5", "127.0.0.1"}},
		{"non-numeric wait", []string{cfg, "-i", "lo", "-t", "80", "-w", "soon", "127.0.0.1"}},
		{"unknown output", []string{cfg, "-i", "lo", "-t", "80", "-o", "xml", "127.0.0.1"}},
		{"unknown interface", []string{cfg, "-i", "no-such-if0", "-t", "80", "127.0.0.1"}},
		{"missing interface", []string{cfg, "-t", "80", "127.0.0.1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runArgs(tt.args...)
			assert.Equal(t, exitInvalid, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "error:")
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitInvalid, exitCode(errors.Input("port", "bad")))
	assert.Equal(t, exitInternal, exitCode(errors.Permission("raw socket")))
	assert.Equal(t, exitInternal, exitCode(errors.Network("lo", "send failed")))
	assert.Equal(t, exitInternal, exitCode(fmt.Errorf("boom")))
}

func TestListOnly(t *testing.T) {
	assert.True(t, listOnly(nil))
	assert.True(t, listOnly([]string{"-i"}))
	assert.True(t, listOnly([]string{"--interface"}))
	assert.False(t, listOnly([]string{"-i", "lo"}))
	assert.False(t, listOnly([]string{"--interface=lo"}))
	assert.False(t, listOnly([]string{"-t", "80"}))
}

func TestMergeConfig(t *testing.T) {
	f := newFlags(&bytes.Buffer{})
	require.NoError(t, f.fs.Parse([]string{"-w", "250", "-o", "csv"}))

	cfg, err := mergeConfig(defaultTestConfig(), f)
	require.NoError(t, err)
	assert.Equal(t, "250ms", cfg.Wait.String())
	assert.Equal(t, "csv", cfg.Output)

	f = newFlags(&bytes.Buffer{})
	require.NoError(t, f.fs.Parse(nil))
	cfg, err = mergeConfig(defaultTestConfig(), f)
	require.NoError(t, err)
	assert.Equal(t, defaultTestConfig(), cfg, "unset flags keep config values")
}

package main

import (
	"bytes"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scopedtimer/internal/meta"
	"scopedtimer/pkg/timer"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	meta.VersionSHA = "abc123"
	defer func() { meta.VersionSHA = "" }()

	out, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "elapsed/abc123\n", out)
}

func TestMissingCommand(t *testing.T) {
	_, err := execute(t, "--config", "")

	assert.EqualError(t, err, "elapsed: missing command to run")
}

func TestReportsToConsole(t *testing.T) {
	out, err := execute(t, "--config", "", "--granularity", "us", "--", "sh", "-c", "echo working")

	require.NoError(t, err)
	assert.Regexp(t, `^working\nElapsed time: [0-9.e+-]+ ms  \n$`, out)
}

func TestReportsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timings.log")

	_, err := execute(t, "--config", "", "--output", path, "--granularity", "h", "--", "true")
	require.NoError(t, err)
	_, err = execute(t, "--config", "", "--output", path, "--granularity", "h", "--", "true")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Elapsed time: 0 h  \nElapsed time: 0 h  \n", string(data))
}

func TestPropagatesExitStatus(t *testing.T) {
	out, err := execute(t, "--config", "", "--granularity", "s", "--", "sh", "-c", "exit 3")

	var exitErr *exitStatusError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.code)
	assert.Equal(t, "Elapsed time: 0 s  \n", out)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "timings.log")
	config := filepath.Join(dir, "elapsed.yaml")
	require.NoError(t, os.WriteFile(report, []byte("stale\n"), 0644))
	require.NoError(t, os.WriteFile(config, []byte(
		"timer:\n  granularity: min\n  sink: file\n  path: "+report+"\n  truncate: true\n",
	), 0644))

	out, err := execute(t, "--config", config, "--", "true")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "Elapsed time: 0 min  \n", string(data))
}

func TestInvalidGranularityFlag(t *testing.T) {
	_, err := execute(t, "--config", "", "--granularity", "weeks", "--", "true")

	assert.EqualError(t, err, "timer: unknown granularity: granularity=weeks")
}

func TestOverrideTimerConfig(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--output", "/tmp/t.log", "--name", "deploy"}))

	cfg := overrideTimerConfig(
		timer.Config{Granularity: "s", Sink: "discard", Truncate: true},
		cmd.Flags(),
		&options{output: "/tmp/t.log", name: "deploy"},
	)

	assert.Equal(t, timer.Config{
		Granularity: "s",
		Sink:        "file",
		Path:        "/tmp/t.log",
		Truncate:    true,
		Name:        "deploy",
	}, cfg)
}

func TestOverrideTimerConfigBackToConsole(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--output", ""}))

	cfg := overrideTimerConfig(
		timer.Config{Sink: "file", Path: "/tmp/t.log", Truncate: true},
		cmd.Flags(),
		&options{},
	)

	assert.Equal(t, timer.Config{Sink: "console"}, cfg)
}

func TestStatsdMetricsDeliveredBeforeExit(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	config := filepath.Join(t.TempDir(), "elapsed.yaml")
	require.NoError(t, os.WriteFile(config, []byte(
		"metrics:\n  statsd:\n    addr: "+conn.LocalAddr().String()+"\n    sample_rate: 1\n"+
			"timer:\n  sink: discard\n  name: smoke\n",
	), 0644))

	_, err = execute(t, "--config", config, "--", "true")
	require.NoError(t, err)

	// Execute has returned, so every metric must already be queued on the socket.
	var packets []string
	buf := make([]byte, 1024)
	for len(packets) < 2 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		packets = append(packets, strings.Split(string(buf[:n]), "\n")...)
	}

	joined := strings.Join(packets, "\n")
	assert.Contains(t, joined, "scopedtimer.event.timer.finalize,")
	assert.Contains(t, joined, "scopedtimer.latency.timer.elapsed,")
	assert.Contains(t, joined, "name=smoke")
}

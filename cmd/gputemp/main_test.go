package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luki/gputemp/internal/sensor"
)

func TestMutuallyExclusiveFlags(t *testing.T) {
	err := run([]string{"--json", "--short"})
	if err == nil {
		t.Fatal("expected error for --json with --short")
	}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("expected an exit-coded error, got %T: %v", err, err)
	}
	if coder.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", coder.ExitCode())
	}
}

func TestUnexpectedArgument(t *testing.T) {
	err := run([]string{"leftover"})
	if err == nil {
		t.Fatal("expected error for a positional argument")
	}
	if !strings.Contains(err.Error(), "unexpected argument") {
		t.Errorf("error = %v, want a mention of the argument", err)
	}
}

func TestUnknownFlag(t *testing.T) {
	err := run([]string{"--bogus"})
	if err == nil {
		t.Fatal("expected error for an unknown flag")
	}
	if !strings.Contains(err.Error(), "unknown flag") {
		t.Errorf("error = %v, want the unknown-flag message", err)
	}
}

func TestHelpExitsClean(t *testing.T) {
	if err := run([]string{"--help"}); err != nil {
		t.Fatalf("--help should not error, got: %v", err)
	}
}

func TestReportFailedPoll(t *testing.T) {
	snap := sensor.Snapshot{
		Readings:   []sensor.Reading{},
		Method:     sensor.MethodNone,
		Diagnostic: "no GPU temperature data found via generic sensors",
		SensorKeys: []string{"coretemp", "nvme"},
	}

	var buf bytes.Buffer
	err := reportFailedPoll(&buf, snap)
	if err == nil {
		t.Fatal("diagnostic with no readings should be fatal in one-shot modes")
	}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatalf("expected an exit-coded error, got %T: %v", err, err)
	}
	if coder.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", coder.ExitCode())
	}

	out := buf.String()
	if !strings.Contains(out, snap.Diagnostic) {
		t.Errorf("diagnostic not reported, output:\n%s", out)
	}
	if !strings.Contains(out, "Available sensor keys: coretemp, nvme") {
		t.Errorf("sensor keys not reported, output:\n%s", out)
	}
}

func TestReportFailedPollKeepsFallbackData(t *testing.T) {
	snap := sensor.Snapshot{
		Readings: []sensor.Reading{
			{Label: "edge", Current: 41.0, High: 85, Critical: 95, Source: "genericFallback (amdgpu)"},
		},
		Method:     sensor.MethodGenericFallback,
		Diagnostic: "nvml error: nvmlInit: Unknown Error; falling back to generic sensors",
	}

	var buf bytes.Buffer
	if err := reportFailedPoll(&buf, snap); err != nil {
		t.Fatalf("diagnostic next to readings should not be fatal, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed for a successful fallback, got %q", buf.String())
	}
}

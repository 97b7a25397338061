package common

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.AddBlock(1024, 892)
	m.AddBlock(512, 100)
	m.AddFailure("unsupported_format", 64)
	m.AddFailure("", 0)
	time.Sleep(time.Millisecond)
	m.Stop()

	snap := m.Snapshot()
	if snap.Blocks != 2 {
		t.Fatalf("Blocks = %d, want 2", snap.Blocks)
	}
	if snap.Samples != 992 {
		t.Fatalf("Samples = %d, want 992", snap.Samples)
	}
	if snap.Bytes != 1600 {
		t.Fatalf("Bytes = %d, want 1600", snap.Bytes)
	}
	if snap.Failures["unsupported_format"] != 1 || snap.Failures["other"] != 1 {
		t.Fatalf("Failures = %v", snap.Failures)
	}
	if snap.FailureCount() != 2 {
		t.Fatalf("FailureCount = %d, want 2", snap.FailureCount())
	}
	if snap.Duration <= 0 {
		t.Fatalf("Duration = %v, want > 0", snap.Duration)
	}
	summary := snap.Summary()
	if !strings.Contains(summary, "Decoded 2 blocks, 992 samples") || !strings.Contains(summary, "other=1 unsupported_format=1") {
		t.Fatalf("unexpected summary %q", summary)
	}

	snap.Failures["other"] = 10
	if m.Snapshot().Failures["other"] != 1 {
		t.Fatalf("snapshot shares failure map with metrics")
	}
}

func TestMetricsZeroDuration(t *testing.T) {
	var s MetricsSnapshot
	if s.ThroughputBytesPerSecond() != 0 || s.SamplesPerSecond() != 0 {
		t.Fatalf("expected zero rates without duration")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1.00 KiB",
		5 * 1024 * 1024: "5.00 MiB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Fatalf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

package common

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics counts decoded blocks, samples and failures across a run.
type Metrics struct {
	mu       sync.Mutex
	start    time.Time
	end      time.Time
	bytes    int64
	blocks   int64
	samples  int64
	failures map[string]int64
}

func NewMetrics() *Metrics {
	return &Metrics{failures: make(map[string]int64)}
}

func (m *Metrics) Start() {
	m.mu.Lock()
	if m.start.IsZero() {
		m.start = time.Now()
		m.end = time.Time{}
	}
	m.mu.Unlock()
}

func (m *Metrics) Stop() {
	m.mu.Lock()
	if !m.start.IsZero() && m.end.IsZero() {
		m.end = time.Now()
	}
	m.mu.Unlock()
}

// AddBlock records one successfully decoded block of size bytes.
func (m *Metrics) AddBlock(size int64, samples int) {
	m.mu.Lock()
	if size > 0 {
		m.bytes += size
	}
	m.blocks++
	if samples > 0 {
		m.samples += int64(samples)
	}
	m.mu.Unlock()
}

// AddFailure records a block that failed to decode, grouped by kind.
func (m *Metrics) AddFailure(kind string, size int64) {
	if kind == "" {
		kind = "other"
	}
	m.mu.Lock()
	if m.failures == nil {
		m.failures = make(map[string]int64)
	}
	m.failures[kind]++
	if size > 0 {
		m.bytes += size
	}
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	failures := make(map[string]int64, len(m.failures))
	for k, v := range m.failures {
		failures[k] = v
	}
	return MetricsSnapshot{
		Duration: m.elapsedLocked(),
		Bytes:    m.bytes,
		Blocks:   m.blocks,
		Samples:  m.samples,
		Failures: failures,
	}
}

func (m *Metrics) elapsedLocked() time.Duration {
	if m.start.IsZero() {
		return 0
	}
	if !m.end.IsZero() {
		return m.end.Sub(m.start)
	}
	return time.Since(m.start)
}

type MetricsSnapshot struct {
	Duration time.Duration
	Bytes    int64
	Blocks   int64
	Samples  int64
	Failures map[string]int64
}

func (s MetricsSnapshot) FailureCount() int64 {
	var total int64
	for _, n := range s.Failures {
		total += n
	}
	return total
}

func (s MetricsSnapshot) ThroughputBytesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Bytes) / s.Duration.Seconds()
}

func (s MetricsSnapshot) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Samples) / s.Duration.Seconds()
}

// Summary renders a one-line human readable report.
func (s MetricsSnapshot) Summary() string {
	line := fmt.Sprintf("Decoded %d blocks, %d samples from %s in %s (%.2f MiB/s)",
		s.Blocks, s.Samples, FormatBytes(s.Bytes), s.Duration.Round(time.Millisecond),
		s.ThroughputBytesPerSecond()/(1024*1024))
	if len(s.Failures) == 0 {
		return line
	}
	kinds := make([]string, 0, len(s.Failures))
	for k := range s.Failures {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.Failures[k]))
	}
	return fmt.Sprintf("%s; failures: %s", line, strings.Join(parts, " "))
}

func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div := float64(unit)
	exp := 0
	for n := float64(b) / div; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	prefixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	return fmt.Sprintf("%.2f %s", float64(b)/div, prefixes[exp])
}

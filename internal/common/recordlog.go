package common

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// BlockRecord is the outcome of decoding one data block file.
type BlockRecord struct {
	Path        string    `json:"path"`
	Sha256      string    `json:"sha256"`
	Size        int64     `json:"size"`
	SampleCount int       `json:"sampleCount,omitempty"`
	Format      string    `json:"format,omitempty"`
	Flags       uint8     `json:"flags"`
	Min         int32     `json:"min"`
	Max         int32     `json:"max"`
	Error       string    `json:"error,omitempty"`
	Ts          time.Time `json:"ts"`
}

// OK reports whether the block decoded without error.
func (r BlockRecord) OK() bool {
	return r.Error == ""
}

// RecordLog provides append-only access to a JSONL decode log.
type RecordLog struct {
	path string
	mu   sync.Mutex
}

// NewRecordLog returns a RecordLog that writes to the provided path.
func NewRecordLog(path string) *RecordLog {
	return &RecordLog{path: path}
}

// Path returns the backing file path for the log.
func (l *RecordLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes one record as a single JSON line.
func (l *RecordLog) Append(rec BlockRecord) error {
	if l == nil {
		return errors.New("nil record log")
	}
	if rec.Path == "" {
		return errors.New("block record missing path")
	}
	if rec.Ts.IsZero() {
		rec.Ts = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	dir := filepath.Dir(l.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// ReadRecordLog loads every record from the supplied JSONL file.
func ReadRecordLog(path string) ([]BlockRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var records []BlockRecord
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec BlockRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("decode block record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

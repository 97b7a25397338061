package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"example.com/rt130gate/internal/common"
)

type logConfig struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type config struct {
	// ReferenceYear pins the year used for two-digit year windowing. Zero
	// reads the clock on every decode.
	ReferenceYear int       `yaml:"referenceYear"`
	StrictSteim   bool      `yaml:"strictSteim"`
	Concurrency   int       `yaml:"concurrency"`
	Logs          logConfig `yaml:"logs"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	path = strings.TrimSpace(path)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if cfg.Logs.Directory != "" && !filepath.IsAbs(cfg.Logs.Directory) {
			cfg.Logs.Directory = filepath.Join(filepath.Dir(path), cfg.Logs.Directory)
		}
	}
	if cfg.ReferenceYear < 0 {
		return cfg, fmt.Errorf("referenceYear must not be negative: %d", cfg.ReferenceYear)
	}
	if cfg.Logs.MaxSizeMB <= 0 {
		cfg.Logs.MaxSizeMB = 25
	}
	if cfg.Logs.MaxAgeDays <= 0 {
		cfg.Logs.MaxAgeDays = 7
	}
	if cfg.Logs.MaxBackups <= 0 {
		cfg.Logs.MaxBackups = 5
	}
	return cfg, nil
}

// currentYear is evaluated per decode so a long-running process never
// applies a stale century decision.
func (c config) currentYear() int {
	if c.ReferenceYear > 0 {
		return c.ReferenceYear
	}
	return time.Now().UTC().Year()
}

// setupLogging mirrors log output into a rotating file when a log directory
// is configured. The returned closer is nil when no file is used.
func setupLogging(cfg config) (io.Closer, error) {
	if cfg.Logs.Directory == "" {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.Logs.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Logs.Directory, "rt130ctl.log"),
		MaxSize:    cfg.Logs.MaxSizeMB,
		MaxAge:     cfg.Logs.MaxAgeDays,
		MaxBackups: cfg.Logs.MaxBackups,
		Compress:   cfg.Logs.Compress,
	}
	w := io.MultiWriter(os.Stderr, rotator)
	common.SetOutput(w)
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return rotator, nil
}

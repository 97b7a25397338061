package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"example.com/rt130gate/internal/common"
	"example.com/rt130gate/internal/report"
	"example.com/rt130gate/internal/rt130"
	"example.com/rt130gate/internal/steim"
)

type blockOutput struct {
	common.BlockRecord
	Samples []int32 `json:"samples,omitempty"`
}

func runBlock(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("block", flag.ContinueOnError)
	in := fs.String("in", "", "comma-separated data block files")
	out := fs.String("out", "", "append one JSON record per block to this file")
	summaryOut := fs.String("summary", "", "write a JSON summary")
	pdfOut := fs.String("pdf", "", "write a PDF summary")
	withSamples := fs.Bool("samples", false, "include decoded samples on stdout")
	metricsFlag := fs.Bool("metrics", false, "print decode throughput metrics")
	concurrency := fs.Int("concurrency", 0, "maximum concurrent block decodes (default: config, then CPU count)")
	cfgPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := splitList(*in)
	if len(paths) == 0 {
		return errors.New("required: --in")
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	workers := *concurrency
	if workers <= 0 {
		workers = cfg.Concurrency
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var metrics *common.Metrics
	if *metricsFlag {
		metrics = common.NewMetrics()
		metrics.Start()
	}
	decoder := rt130.NewBlockDecoder(&steim.Decoder{Strict: cfg.StrictSteim, Warnf: common.Logf})
	outputs := decodeFiles(decoder, paths, workers, metrics)
	if metrics != nil {
		metrics.Stop()
	}

	var recLog *common.RecordLog
	if *out != "" {
		recLog = common.NewRecordLog(*out)
	}
	records := make([]common.BlockRecord, 0, len(outputs))
	failed := 0
	for _, o := range outputs {
		if !o.OK() {
			failed++
			common.Logf("block %s: %s", o.Path, o.Error)
		}
		if recLog != nil {
			if err := recLog.Append(o.BlockRecord); err != nil {
				return fmt.Errorf("write records %s: %w", recLog.Path(), err)
			}
		}
		records = append(records, o.BlockRecord)
		if !*withSamples {
			o.Samples = nil
		}
		if err := writeJSON(stdout, o); err != nil {
			return err
		}
	}

	if *summaryOut != "" || *pdfOut != "" {
		sum := report.BuildSummary(records)
		if *summaryOut != "" {
			if err := report.SaveSummaryJSON(sum, *summaryOut); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
		}
		if *pdfOut != "" {
			if err := report.SaveBlockReportPDF(sum, *pdfOut); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
		}
	}
	if metrics != nil {
		fmt.Fprintln(os.Stderr, metrics.Snapshot().Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d blocks failed to decode", failed, len(outputs))
	}
	return nil
}

// decodeFiles decodes every path with at most workers in flight. Results
// keep input order.
func decodeFiles(decoder *rt130.BlockDecoder, paths []string, workers int, metrics *common.Metrics) []blockOutput {
	if workers <= 0 {
		workers = 1
	}
	results := make([]blockOutput, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = decodeFile(decoder, path, metrics)
		}(i, path)
	}
	wg.Wait()
	return results
}

func decodeFile(decoder *rt130.BlockDecoder, path string, metrics *common.Metrics) blockOutput {
	o := blockOutput{BlockRecord: common.BlockRecord{Path: path, Ts: time.Now().UTC()}}
	raw, digest, err := common.ReadFileDigest(path)
	if err != nil {
		o.Error = err.Error()
		if metrics != nil {
			metrics.AddFailure(failureKind(err), 0)
		}
		return o
	}
	o.Sha256 = digest
	o.Size = int64(len(raw))
	block, err := decoder.Decode(raw)
	if err != nil {
		o.Error = err.Error()
		if metrics != nil {
			metrics.AddFailure(failureKind(err), o.Size)
		}
		return o
	}
	o.SampleCount = block.SampleCount
	o.Format = block.Format
	o.Flags = block.Flags
	o.Min, o.Max = sampleRange(block.Samples)
	o.Samples = block.Samples
	if metrics != nil {
		metrics.AddBlock(o.Size, len(block.Samples))
	}
	return o
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, rt130.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, rt130.ErrMalformedLength):
		return "malformed_length"
	case errors.Is(err, rt130.ErrMalformedField):
		return "malformed_field"
	case errors.Is(err, steim.ErrFrameLength), errors.Is(err, steim.ErrSampleCount), errors.Is(err, steim.ErrIntegrity):
		return "steim1"
	case errors.Is(err, os.ErrNotExist):
		return "missing"
	default:
		return "other"
	}
}

func sampleRange(samples []int32) (int32, int32) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

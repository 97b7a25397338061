package report

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"example.com/rt130gate/internal/common"
)

// Summary aggregates the decode outcome of a batch of data blocks.
type Summary struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Total       int                  `json:"total"`
	Decoded     int                  `json:"decoded"`
	Failed      int                  `json:"failed"`
	Samples     int64                `json:"samples"`
	Digest      string               `json:"digest"`
	Records     []common.BlockRecord `json:"records"`
}

// Pass reports whether every block decoded.
func (s Summary) Pass() bool {
	return s.Total > 0 && s.Failed == 0
}

// BuildSummary tallies records. Digest covers the block digests in record
// order so the same batch always yields the same value.
func BuildSummary(records []common.BlockRecord) Summary {
	sum := Summary{
		GeneratedAt: time.Now().UTC(),
		Total:       len(records),
		Records:     append([]common.BlockRecord(nil), records...),
	}
	digests := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.OK() {
			sum.Decoded++
			sum.Samples += int64(rec.SampleCount)
		} else {
			sum.Failed++
		}
		digests = append(digests, rec.Sha256)
	}
	sum.Digest = common.Sha256Hex([]byte(strings.Join(digests, "\n")))
	return sum
}

func SaveSummaryJSON(sum Summary, out string) error {
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0644)
}

func LoadSummaryJSON(path string) (Summary, error) {
	var sum Summary
	b, err := os.ReadFile(path)
	if err != nil {
		return sum, err
	}
	err = json.Unmarshal(b, &sum)
	return sum, err
}

package rt130

import "errors"

var (
	ErrMalformedLength   = errors.New("malformed field length")
	ErrMalformedField    = errors.New("malformed field content")
	ErrUnsupportedFormat = errors.New("unsupported data format")
	ErrCenturyAmbiguous  = errors.New("two-digit year is ambiguous past 2050")
)

// Decompressor expands a STEIM-1 payload into sampleCount samples.
type Decompressor interface {
	DecompressSteim1(payload []byte, sampleCount int, byteSwap bool) ([]int32, error)
}

// WaveformBlock is one decoded data frame.
type WaveformBlock struct {
	SampleCount int     `json:"sampleCount"`
	Flags       uint8   `json:"flags"`
	Format      string  `json:"format"`
	Samples     []int32 `json:"samples"`
}

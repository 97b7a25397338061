package rt130

import (
	"fmt"
	"sort"
)

const (
	blockHeaderSize = 4
	steimSubHeader  = 40

	// FormatSteim1 is the only compressed data format the recorder writes.
	FormatSteim1 = "C0"
)

type formatHandler func(d Decompressor, payload []byte, sampleCount int) ([]int32, error)

var formatHandlers = map[string]formatHandler{
	FormatSteim1: decodeSteim1Payload,
}

// SupportedFormats lists the format codes DecodeBlock can expand.
func SupportedFormats() []string {
	out := make([]string, 0, len(formatHandlers))
	for code := range formatHandlers {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// BlockDecoder parses data block headers and hands the payload to a
// Decompressor. It holds no per-block state and is safe for concurrent use
// when its Decompressor is.
type BlockDecoder struct {
	decompressor Decompressor
}

// NewBlockDecoder returns a BlockDecoder backed by d.
func NewBlockDecoder(d Decompressor) *BlockDecoder {
	return &BlockDecoder{decompressor: d}
}

// Decode parses one data block:
//
//	[0:2] sample count, BCD
//	[2]   flags, not interpreted
//	[3]   format code, hex
//	[4:]  payload
func (b *BlockDecoder) Decode(raw []byte) (WaveformBlock, error) {
	if len(raw) < blockHeaderSize {
		return WaveformBlock{}, fmt.Errorf("%w: data block is %d bytes, want at least %d", ErrMalformedLength, len(raw), blockHeaderSize)
	}
	format := DecodeBCDHex(raw[3:4])
	handler, ok := formatHandlers[format]
	if !ok {
		return WaveformBlock{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	count, err := DecodeBCDInt(raw[0:2])
	if err != nil {
		return WaveformBlock{}, fmt.Errorf("sample count: %w", err)
	}
	if b == nil || b.decompressor == nil {
		return WaveformBlock{}, fmt.Errorf("format %s: no decompressor configured", format)
	}
	samples, err := handler(b.decompressor, raw[blockHeaderSize:], *count)
	if err != nil {
		return WaveformBlock{}, fmt.Errorf("format %s: %w", format, err)
	}
	return WaveformBlock{
		SampleCount: *count,
		Flags:       raw[2],
		Format:      format,
		Samples:     samples,
	}, nil
}

// The recorder writes STEIM-1 words in the opposite byte order to the one
// the decompressor reads natively, so the swap flag is always set.
func decodeSteim1Payload(d Decompressor, payload []byte, sampleCount int) ([]int32, error) {
	if len(payload) < steimSubHeader {
		return nil, fmt.Errorf("%w: payload is %d bytes, want at least %d", ErrMalformedLength, len(payload), steimSubHeader)
	}
	return d.DecompressSteim1(payload[steimSubHeader:], sampleCount, true)
}

// Package steim decodes STEIM-1 compressed integer sample frames as used by
// SEED data records and RT130 data packets.
package steim

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	FrameSize     = 64
	wordsPerFrame = 16

	nibbleNone  = 0
	nibbleByte  = 1
	nibbleHalf  = 2
	nibbleWord  = 3
	headerWords = 3
)

var (
	ErrFrameLength = errors.New("steim1 payload is not a whole number of frames")
	ErrSampleCount = errors.New("steim1 payload holds fewer samples than requested")
	ErrIntegrity   = errors.New("steim1 last sample does not match reverse integration constant")
)

// Decoder expands STEIM-1 frames. The zero value is ready to use.
type Decoder struct {
	// Strict turns a reverse integration constant mismatch into an error.
	Strict bool
	// Warnf, when set, receives non-fatal integrity warnings.
	Warnf func(format string, args ...interface{})
}

// byteOrder assumes a little-endian host: swapping means the frames were
// written big-endian.
func byteOrder(byteSwap bool) binary.ByteOrder {
	if byteSwap {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// DecompressSteim1 decodes sampleCount samples from payload.
func (d *Decoder) DecompressSteim1(payload []byte, sampleCount int, byteSwap bool) ([]int32, error) {
	if sampleCount < 0 {
		return nil, fmt.Errorf("steim1: negative sample count %d", sampleCount)
	}
	if sampleCount == 0 {
		return []int32{}, nil
	}
	if len(payload) == 0 || len(payload)%FrameSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameLength, len(payload))
	}
	order := byteOrder(byteSwap)
	out := make([]int32, 0, sampleCount)
	var x0, xn int32
	for f := 0; f*FrameSize < len(payload) && len(out) < sampleCount; f++ {
		frame := payload[f*FrameSize : (f+1)*FrameSize]
		ctrl := order.Uint32(frame[0:4])
		start := 1
		if f == 0 {
			x0 = int32(order.Uint32(frame[4:8]))
			xn = int32(order.Uint32(frame[8:12]))
			start = headerWords
		}
		for w := start; w < wordsPerFrame && len(out) < sampleCount; w++ {
			raw := frame[4*w : 4*w+4]
			var diffs [4]int32
			n := 0
			switch (ctrl >> uint(30-2*w)) & 0x3 {
			case nibbleNone:
				continue
			case nibbleByte:
				for i := 0; i < 4; i++ {
					diffs[i] = int32(int8(raw[i]))
				}
				n = 4
			case nibbleHalf:
				diffs[0] = int32(int16(order.Uint16(raw[0:2])))
				diffs[1] = int32(int16(order.Uint16(raw[2:4])))
				n = 2
			case nibbleWord:
				diffs[0] = int32(order.Uint32(raw))
				n = 1
			}
			for _, diff := range diffs[:n] {
				if len(out) >= sampleCount {
					break
				}
				// The first difference of a record refers to the previous
				// record and is replaced by X0.
				if len(out) == 0 {
					out = append(out, x0)
					continue
				}
				out = append(out, out[len(out)-1]+diff)
			}
		}
	}
	if len(out) < sampleCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(out), sampleCount)
	}
	if last := out[len(out)-1]; last != xn {
		if d != nil && d.Strict {
			return nil, fmt.Errorf("%w: last sample %d, Xn %d", ErrIntegrity, last, xn)
		}
		if d != nil && d.Warnf != nil {
			d.Warnf("steim1: last sample %d does not match Xn %d", last, xn)
		}
	}
	return out, nil
}

// Encode packs samples into STEIM-1 frames using one 32-bit difference per
// word. The output decodes exactly but is not size-optimal.
func Encode(samples []int32, byteSwap bool) []byte {
	if len(samples) == 0 {
		return nil
	}
	order := byteOrder(byteSwap)
	var out []byte
	idx := 0
	for f := 0; idx < len(samples); f++ {
		frame := make([]byte, FrameSize)
		start := 1
		if f == 0 {
			order.PutUint32(frame[4:8], uint32(samples[0]))
			order.PutUint32(frame[8:12], uint32(samples[len(samples)-1]))
			start = headerWords
		}
		var ctrl uint32
		for w := start; w < wordsPerFrame && idx < len(samples); w++ {
			var diff int32
			if idx > 0 {
				diff = samples[idx] - samples[idx-1]
			}
			order.PutUint32(frame[4*w:4*w+4], uint32(diff))
			ctrl |= nibbleWord << uint(30-2*w)
			idx++
		}
		order.PutUint32(frame[0:4], ctrl)
		out = append(out, frame...)
	}
	return out
}

package rt130

import (
	"fmt"
	"strconv"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Nibbles splits every byte into its high then low nibble.
func Nibbles(raw []byte) []uint8 {
	out := make([]uint8, 2*len(raw))
	for i, b := range raw {
		out[2*i] = (b >> 4) & 0x0F
		out[2*i+1] = b & 0x0F
	}
	return out
}

// DecodeBCDDigits returns the decimal digits packed in raw. Nibbles above 9
// are not decimal and fail with ErrMalformedField.
func DecodeBCDDigits(raw []byte) ([]uint8, error) {
	digits := Nibbles(raw)
	for i, d := range digits {
		if d > 9 {
			return nil, fmt.Errorf("%w: invalid BCD byte 0x%02X at offset %d", ErrMalformedField, raw[i/2], i/2)
		}
	}
	return digits, nil
}

// DecodeBCDString renders the BCD digits of raw as a decimal string.
func DecodeBCDString(raw []byte) (string, error) {
	digits, err := DecodeBCDDigits(raw)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteByte('0' + d)
	}
	return b.String(), nil
}

// DecodeBCDHex renders every nibble of raw as an uppercase hex character.
func DecodeBCDHex(raw []byte) string {
	var b strings.Builder
	b.Grow(2 * len(raw))
	for _, n := range Nibbles(raw) {
		b.WriteByte(hexDigits[n])
	}
	return b.String()
}

// DecodeBCDInt parses the BCD digits of raw as an integer. An empty field
// yields nil.
func DecodeBCDInt(raw []byte) (*int, error) {
	s, err := DecodeBCDString(raw)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedField, err)
	}
	return &v, nil
}

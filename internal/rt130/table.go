package rt130

import (
	"fmt"
	"strconv"
	"strings"
)

// TableFields is the number of equal-width fields in a fixed-width table.
const TableFields = 16

// DecodeTable16 splits an ASCII field into 16 equal-width strings.
func DecodeTable16(raw []byte) ([TableFields]string, error) {
	var out [TableFields]string
	s, err := DecodeASCII(raw)
	if err != nil {
		return out, err
	}
	if len(s)%TableFields != 0 {
		return out, fmt.Errorf("%w: table length %d not divisible by %d", ErrMalformedLength, len(s), TableFields)
	}
	width := len(s) / TableFields
	for i := range out {
		out[i] = s[i*width : (i+1)*width]
	}
	return out, nil
}

// DecodeTable16Int is DecodeTable16 with every field parsed as an integer.
// Blank fields are nil.
func DecodeTable16Int(raw []byte) ([TableFields]*int, error) {
	var out [TableFields]*int
	fields, err := DecodeTable16(raw)
	if err != nil {
		return out, err
	}
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !isDigits(f) {
			return [TableFields]*int{}, fmt.Errorf("%w: table field %d %q is not numeric", ErrMalformedField, i, f)
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return [TableFields]*int{}, fmt.Errorf("%w: table field %d: %v", ErrMalformedField, i, err)
		}
		out[i] = &v
	}
	return out, nil
}

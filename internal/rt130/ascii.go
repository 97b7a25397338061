package rt130

import "fmt"

// DecodeASCII converts raw to a string, rejecting bytes outside 7-bit ASCII.
func DecodeASCII(raw []byte) (string, error) {
	for i, b := range raw {
		if b > 0x7F {
			return "", fmt.Errorf("%w: non-ASCII byte 0x%02X at offset %d", ErrMalformedField, b, i)
		}
	}
	return string(raw), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

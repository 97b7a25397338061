package rt130

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	longTimeLen  = 16
	shortTimeLen = 14
	bcdTimeLen   = 7
	millisLen    = 3

	// YYYY DDD HH MM SS, milliseconds handled separately.
	longTimeLayout = "2006002150405"

	centuryPivot     = 50
	lastWindowedYear = 2050
)

// ParseLongTime decodes a 16 character YYYYDDDHHMMSSmmm field. A blank field
// yields nil.
func ParseLongTime(raw []byte) (*time.Time, error) {
	s, err := DecodeASCII(raw)
	if err != nil {
		return nil, err
	}
	return parseLongTime(s)
}

func parseLongTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if len(s) != longTimeLen {
		return nil, fmt.Errorf("%w: time field is %d characters, want %d", ErrMalformedLength, len(s), longTimeLen)
	}
	if !isDigits(s) {
		return nil, fmt.Errorf("%w: time field %q is not numeric", ErrMalformedField, s)
	}
	body, msField := s[:len(s)-millisLen], s[len(s)-millisLen:]
	ms, err := strconv.Atoi(msField)
	if err != nil {
		return nil, fmt.Errorf("%w: milliseconds %q: %v", ErrMalformedField, msField, err)
	}
	t, err := time.Parse(longTimeLayout, body)
	if err != nil {
		return nil, fmt.Errorf("%w: time field %q: %v", ErrMalformedField, s, err)
	}
	t = t.Add(time.Duration(ms) * time.Millisecond)
	return &t, nil
}

// ExpandYear maps a two-digit year onto 1950-2049. The window stops being
// meaningful once currentYear passes 2050, so that case fails with
// ErrCenturyAmbiguous instead of guessing.
func ExpandYear(currentYear, yy int) (int, error) {
	if currentYear > lastWindowedYear {
		return 0, fmt.Errorf("%w: current year %d", ErrCenturyAmbiguous, currentYear)
	}
	if yy < 0 || yy > 99 {
		return 0, fmt.Errorf("%w: two-digit year %d", ErrMalformedField, yy)
	}
	if yy < centuryPivot {
		return yy + 2000, nil
	}
	return yy + 1900, nil
}

// ParseShortTime decodes a 14 character YYDDDHHMMSSmmm field. currentYear
// should be read from the clock at decode time, not cached.
func ParseShortTime(currentYear int, raw []byte) (*time.Time, error) {
	if currentYear > lastWindowedYear {
		return nil, fmt.Errorf("%w: current year %d", ErrCenturyAmbiguous, currentYear)
	}
	s, err := DecodeASCII(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if len(s) != shortTimeLen {
		return nil, fmt.Errorf("%w: time field is %d characters, want %d", ErrMalformedLength, len(s), shortTimeLen)
	}
	if !isDigits(s[:2]) {
		return nil, fmt.Errorf("%w: year %q is not numeric", ErrMalformedField, s[:2])
	}
	yy, _ := strconv.Atoi(s[:2])
	year, err := ExpandYear(currentYear, yy)
	if err != nil {
		return nil, err
	}
	return parseLongTime(fmt.Sprintf("%04d", year) + s[2:])
}

// ParseBCDTime decodes the 7 byte packet header time: one BCD year byte
// followed by six BCD bytes of DDDHHMMSSmmm.
func ParseBCDTime(currentYear int, raw []byte) (*time.Time, error) {
	if len(raw) != bcdTimeLen {
		return nil, fmt.Errorf("%w: BCD time is %d bytes, want %d", ErrMalformedLength, len(raw), bcdTimeLen)
	}
	s, err := DecodeBCDString(raw)
	if err != nil {
		return nil, err
	}
	return ParseShortTime(currentYear, []byte(s))
}

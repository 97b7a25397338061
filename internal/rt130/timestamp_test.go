package rt130

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLongTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		blank   bool
		wantErr error
	}{
		{name: "day of year", raw: "2021032120305000", want: time.Date(2021, 2, 1, 12, 3, 5, 0, time.UTC)},
		{name: "milliseconds", raw: "2019365235959999", want: time.Date(2019, 12, 31, 23, 59, 59, 999_000_000, time.UTC)},
		{name: "leap day", raw: "2020060000000123", want: time.Date(2020, 2, 29, 0, 0, 0, 123_000_000, time.UTC)},
		{name: "blank", raw: strings.Repeat(" ", 16), blank: true},
		{name: "empty", raw: "", blank: true},
		{name: "short", raw: "202103212030500", wantErr: ErrMalformedLength},
		{name: "non digit", raw: "2021032120305X00", wantErr: ErrMalformedField},
		{name: "day 366 in common year", raw: "2021366000000000", wantErr: ErrMalformedField},
		{name: "hour out of range", raw: "2021032250000000", wantErr: ErrMalformedField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLongTime([]byte(tc.raw))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				if got != nil {
					t.Fatalf("expected nil time on error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLongTime returned error: %v", err)
			}
			if tc.blank {
				if got != nil {
					t.Fatalf("expected nil for blank field, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseLongTime returned nil")
			}
			if !got.Equal(tc.want) {
				t.Fatalf("time = %v, want %v", got, tc.want)
			}
			if got.Location() != time.UTC {
				t.Fatalf("location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestParseLongTimeNonASCII(t *testing.T) {
	raw := []byte("2021032120305000")
	raw[4] = 0xB0
	if _, err := ParseLongTime(raw); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestParseShortTime(t *testing.T) {
	tests := []struct {
		name        string
		currentYear int
		raw         string
		wantYear    int
	}{
		{name: "2000s", currentYear: 2024, raw: "21" + "0321203050" + "00", wantYear: 2021},
		{name: "1900s", currentYear: 2024, raw: "87" + "0321203050" + "00", wantYear: 1987},
		{name: "pivot", currentYear: 2024, raw: "50" + "0010000000" + "00", wantYear: 1950},
		{name: "below pivot", currentYear: 2024, raw: "49" + "0010000000" + "00", wantYear: 2049},
		{name: "last windowed year", currentYear: 2050, raw: "00" + "0010000000" + "00", wantYear: 2000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseShortTime(tc.currentYear, []byte(tc.raw))
			if err != nil {
				t.Fatalf("ParseShortTime returned error: %v", err)
			}
			if got == nil {
				t.Fatalf("ParseShortTime returned nil")
			}
			if got.Year() != tc.wantYear {
				t.Fatalf("year = %d, want %d", got.Year(), tc.wantYear)
			}
		})
	}

	got, err := ParseShortTime(2024, []byte("21032120305000"))
	if err != nil {
		t.Fatalf("ParseShortTime returned error: %v", err)
	}
	want := time.Date(2021, 2, 1, 12, 3, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("time = %v, want %v", got, want)
	}
}

func TestParseShortTimeCenturyAmbiguous(t *testing.T) {
	for _, raw := range []string{"21032120305000", "87032120305000", strings.Repeat(" ", 14), "garbage"} {
		got, err := ParseShortTime(2051, []byte(raw))
		if !errors.Is(err, ErrCenturyAmbiguous) {
			t.Fatalf("ParseShortTime(2051, %q): expected ErrCenturyAmbiguous, got %v", raw, err)
		}
		if got != nil {
			t.Fatalf("expected nil time, got %v", got)
		}
	}
}

func TestParseShortTimeMalformed(t *testing.T) {
	if got, err := ParseShortTime(2024, []byte(strings.Repeat(" ", 14))); err != nil || got != nil {
		t.Fatalf("blank short time = %v, %v; want nil, nil", got, err)
	}
	if _, err := ParseShortTime(2024, []byte("2103212030500")); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("expected ErrMalformedLength, got %v", err)
	}
	if _, err := ParseShortTime(2024, []byte("2A032120305000")); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestExpandYear(t *testing.T) {
	if y, err := ExpandYear(2024, 7); err != nil || y != 2007 {
		t.Fatalf("ExpandYear(2024, 7) = %d, %v", y, err)
	}
	if y, err := ExpandYear(2024, 99); err != nil || y != 1999 {
		t.Fatalf("ExpandYear(2024, 99) = %d, %v", y, err)
	}
	if _, err := ExpandYear(2024, 100); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
	if _, err := ExpandYear(2099, 7); !errors.Is(err, ErrCenturyAmbiguous) {
		t.Fatalf("expected ErrCenturyAmbiguous, got %v", err)
	}
}

func TestParseBCDTime(t *testing.T) {
	raw := []byte{0x21, 0x03, 0x21, 0x20, 0x30, 0x50, 0x00}
	got, err := ParseBCDTime(2024, raw)
	if err != nil {
		t.Fatalf("ParseBCDTime returned error: %v", err)
	}
	want := time.Date(2021, 2, 1, 12, 3, 5, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("time = %v, want %v", got, want)
	}
	again, err := ParseBCDTime(2024, raw)
	if err != nil || !again.Equal(*got) {
		t.Fatalf("second decode = %v, %v; want %v", again, err, got)
	}
	if _, err := ParseBCDTime(2024, raw[:6]); !errors.Is(err, ErrMalformedLength) {
		t.Fatalf("expected ErrMalformedLength, got %v", err)
	}
	bad := append([]byte(nil), raw...)
	bad[2] = 0x2C
	if _, err := ParseBCDTime(2024, bad); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

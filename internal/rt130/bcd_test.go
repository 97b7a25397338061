package rt130

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeBCDDigits(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    []uint8
		wantErr error
	}{
		{name: "two bytes", raw: []byte{0x12, 0x34}, want: []uint8{1, 2, 3, 4}},
		{name: "zeros", raw: []byte{0x00}, want: []uint8{0, 0}},
		{name: "empty", raw: nil, want: []uint8{}},
		{name: "high nibble out of range", raw: []byte{0xA1}, wantErr: ErrMalformedField},
		{name: "nine is valid", raw: []byte{0x19}, want: []uint8{1, 9}},
		{name: "second byte out of range", raw: []byte{0x19, 0x0F}, wantErr: ErrMalformedField},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeBCDDigits(tc.raw)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBCDDigits returned error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("digits = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestDecodeBCDHex(t *testing.T) {
	if got := DecodeBCDHex([]byte{0xC0}); got != "C0" {
		t.Fatalf("DecodeBCDHex(0xC0) = %q, want C0", got)
	}
	if got := DecodeBCDHex([]byte{0x09, 0xAF, 0x3E}); got != "09AF3E" {
		t.Fatalf("DecodeBCDHex = %q, want 09AF3E", got)
	}
	if got := DecodeBCDHex(nil); got != "" {
		t.Fatalf("DecodeBCDHex(nil) = %q, want empty", got)
	}
}

func TestDecodeBCDHexEveryByte(t *testing.T) {
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}
	got := DecodeBCDHex(raw)
	if len(got) != 2*len(raw) {
		t.Fatalf("len = %d, want %d", len(got), 2*len(raw))
	}
	for i, r := range got {
		if !strings.ContainsRune(hexDigits, r) {
			t.Fatalf("char %d = %q is not uppercase hex", i, r)
		}
	}
	if got[2*0xB7:2*0xB7+2] != "B7" {
		t.Fatalf("byte 0xB7 rendered as %q", got[2*0xB7:2*0xB7+2])
	}
}

func TestDecodeBCDString(t *testing.T) {
	got, err := DecodeBCDString([]byte{0x20, 0x21, 0x03})
	if err != nil {
		t.Fatalf("DecodeBCDString returned error: %v", err)
	}
	if got != "202103" {
		t.Fatalf("DecodeBCDString = %q, want 202103", got)
	}
}

func TestDecodeBCDInt(t *testing.T) {
	got, err := DecodeBCDInt([]byte{0x08, 0x92})
	if err != nil {
		t.Fatalf("DecodeBCDInt returned error: %v", err)
	}
	if got == nil || *got != 892 {
		t.Fatalf("DecodeBCDInt = %v, want 892", got)
	}

	got, err = DecodeBCDInt(nil)
	if err != nil {
		t.Fatalf("DecodeBCDInt(nil) returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("DecodeBCDInt(nil) = %d, want nil", *got)
	}

	if _, err := DecodeBCDInt([]byte{0x1F}); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("expected ErrMalformedField, got %v", err)
	}
}

func TestNibblesIdempotent(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0x42}
	a := Nibbles(raw)
	b := Nibbles(raw)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("nibble %d differs between calls: %d != %d", i, a[i], b[i])
		}
	}
	if raw[0] != 0xDE || raw[1] != 0xAD || raw[2] != 0x42 {
		t.Fatalf("input mutated: % X", raw)
	}
}

package service

import (
	"errors"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"+251912345678", "+251912345678"},
		{"251912345678", "+251912345678"},
		{"0912345678", "+251912345678"},
		{"912345678", "+251912345678"},
		{"0712345678", "+251712345678"},
		{"09 12 34 56 78", "+251912345678"},
		{"+251-912-345-678", "+251912345678"},
		{"(091) 234.5678", "+251912345678"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.input)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizePhoneRejectsInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"12345",
		"091234567",      // too short after prefix strip
		"09123456789",    // too long
		"0812345678",     // not a mobile prefix
		"09123456ab",     // letters
		"+15551234567",   // foreign number
		"+2519123456789", // too many digits
	}
	for _, input := range inputs {
		if _, err := NormalizePhone(input); !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("NormalizePhone(%q) = %v, want ErrInvalidPhone", input, err)
		}
	}
}

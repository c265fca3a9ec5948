package domain

import (
	"errors"
	"testing"
)

func TestParseTimeCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "minutes and seconds", input: "2:05", want: 125000},
		{name: "with tenths", input: "2:05.4", want: 125400},
		{name: "zero", input: "0:00.0", want: 0},
		{name: "large minutes", input: "12:30.5", want: 750500},
		{name: "no colon", input: "abc", wantErr: true},
		{name: "dash separator", input: "1-30", wantErr: true},
		{name: "two colons", input: "1:2:3", wantErr: true},
		{name: "negative minutes", input: "-1:30.0", wantErr: true},
		{name: "two decimal digits", input: "1:30.55", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimeCode(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tc.input, got)
				}
				var formatErr *FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("expected *FormatError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseTimeCode(%q): got %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatTimeCode(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want string
	}{
		{name: "zero", ms: 0, want: "0:00.0"},
		{name: "pads seconds", ms: 125350, want: "2:05.4"},
		{name: "rounds to nearest tenth", ms: 125349, want: "2:05.3"},
		{name: "whole minutes", ms: 180000, want: "3:00.0"},
		{name: "just under a minute", ms: 59999, want: "1:00.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeCode(tc.ms); got != tc.want {
				t.Fatalf("FormatTimeCode(%d): got %q, want %q", tc.ms, got, tc.want)
			}
		})
	}
}

func TestTimeCodeRoundTrip(t *testing.T) {
	// format(parse(s)) reproduces any canonical string exactly.
	canonical := []string{"0:00.0", "0:01.5", "1:00.0", "2:05.4", "10:59.9"}
	for _, s := range canonical {
		ms, err := ParseTimeCode(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := FormatTimeCode(ms); got != s {
			t.Errorf("format(parse(%q)): got %q", s, got)
		}
	}

	// parse(format(ms)) lands within 100ms of the original offset.
	for _, ms := range []int{0, 1, 49, 50, 999, 125349, 125350, 750499} {
		back, err := ParseTimeCode(FormatTimeCode(ms))
		if err != nil {
			t.Fatalf("parse(format(%d)): %v", ms, err)
		}
		diff := back - ms
		if diff < 0 {
			diff = -diff
		}
		if diff > 100 {
			t.Errorf("parse(format(%d)) = %d, off by %dms", ms, back, diff)
		}
	}
}

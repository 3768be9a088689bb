package phone

import (
	"errors"
	"testing"
)

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "national mobile", input: "98765 43210", want: "+919876543210"},
		{name: "with country code", input: "+91 98765-43210", want: "+919876543210"},
		{name: "leading zero", input: "09876543210", want: "+919876543210"},
		{name: "garbage kept", input: "  call me  ", want: "call me"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "12", "not a number"} {
		if _, err := Parse(input); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Parse(%q) expected ErrInvalid, got %v", input, err)
		}
	}
}

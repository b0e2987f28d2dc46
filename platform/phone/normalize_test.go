package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national dutch number", "06 1234 5678", "+31612345678"},
		{"already e164", "+31612345678", "+31612345678"},
		{"foreign number with prefix", "+63 917 123 4567", "+639171234567"},
		{"invalid keeps trimmed input", "  not-a-number ", "not-a-number"},
		{"too short keeps input", "123", "123"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

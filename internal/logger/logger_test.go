package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short stays intact", "hello", 10, "hello"},
		{"exact limit stays intact", "hello", 5, "hello"},
		{"long gets ellipsis", "hello world", 5, "hello..."},
		{"whitespace trimmed first", "  hi  ", 10, "hi"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"multibyte runes", "привет мир", 6, "привет..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

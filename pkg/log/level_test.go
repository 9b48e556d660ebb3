package log

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", Debug},
		{"DEBUG", Debug},
		{"info", Info},
		{"warn", Warn},
		{"warning", Warn},
		{"error", Error},
		{"fatal", Fatal},
		{" info ", Info},
		{"verbose", Info},
		{"", Info},
	}

	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if Debug.String() != "DEBUG" || Fatal.String() != "FATAL" {
		t.Errorf("unexpected level names: %s/%s", Debug, Fatal)
	}
}

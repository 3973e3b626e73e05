package hospital

import "testing"

func TestParseWaitMinutes(t *testing.T) {
	tests := []struct {
		wait string
		want int
	}{
		{"2 hr 30 min", 150},
		{"1 hr", 60},
		{"45 min", 45},
		{"0 min", 0},
		{"3 hr 5 min", 185},
		{"Closed", 0},
		{"Wait times unavailable", 0},
		{"", 0},
		{"2 HR 15 MIN", 135},
	}

	for _, tt := range tests {
		t.Run(tt.wait, func(t *testing.T) {
			if got := ParseWaitMinutes(tt.wait); got != tt.want {
				t.Errorf("ParseWaitMinutes(%q) = %d, want %d", tt.wait, got, tt.want)
			}
		})
	}
}

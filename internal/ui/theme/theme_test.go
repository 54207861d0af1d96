package theme

import "testing"

func TestScoreStyle(t *testing.T) {
	tests := []struct {
		pct  int
		want any
	}{
		{100, Success},
		{80, Success},
		{79, Accent},
		{50, Accent},
		{49, Error},
		{0, Error},
	}
	for _, tc := range tests {
		if got := ScoreStyle(tc.pct).GetForeground(); got != tc.want {
			t.Errorf("ScoreStyle(%d) foreground = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

package lowpass

import "testing"

func TestExpected(t *testing.T) {
	tests := []struct {
		bitrate int
		want    int
	}{
		{320, 20500}, {321, 20500},
		{256, 20000}, {300, 20000},
		{224, 19500},
		{192, 18500},
		{160, 17500},
		{128, 16000},
		{112, 15500},
		{96, 15000},
		{64, 14000}, {0, 14000},
	}
	for _, tt := range tests {
		if got := Expected(tt.bitrate); got != tt.want {
			t.Errorf("Expected(%d) = %d, want %d", tt.bitrate, got, tt.want)
		}
	}
}

func TestMinimumAcceptable(t *testing.T) {
	tests := []struct {
		bitrate int
		want    int
	}{
		{320, 18000}, {256, 18000},
		{224, 17000}, {192, 17000},
		{176, 16000}, {160, 16000},
		{144, 15000}, {128, 15000},
		{112, 0}, {64, 0}, {0, 0},
	}
	for _, tt := range tests {
		if got := MinimumAcceptable(tt.bitrate); got != tt.want {
			t.Errorf("MinimumAcceptable(%d) = %d, want %d", tt.bitrate, got, tt.want)
		}
	}
}

func TestIsMismatch(t *testing.T) {
	tests := []struct {
		name    string
		bitrate int
		actual  int
		want    bool
	}{
		{"320 claimed, 128 actual lowpass", 320, 16000, true},
		{"320 claimed, clean lowpass", 320, 20500, false},
		{"low tier never flags", 96, 8000, false},
		{"zero actual is absent, never flags", 320, 0, false},
		{"exactly at minimum is not a mismatch", 320, 18000, false},
		{"one below minimum is a mismatch", 320, 17999, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMismatch(tt.bitrate, tt.actual); got != tt.want {
				t.Errorf("IsMismatch(%d, %d) = %v, want %v", tt.bitrate, tt.actual, got, tt.want)
			}
		})
	}
}

func TestLikelySource(t *testing.T) {
	tests := []struct {
		actual int
		want   string
	}{
		{11000, "64kbps or lower"},
		{14000, "96kbps"},
		{16000, "128kbps"},
		{17500, "160kbps"},
		{18500, "192kbps"},
		{19000, "lower bitrate"},
	}
	for _, tt := range tests {
		if got := LikelySource(tt.actual); got != tt.want {
			t.Errorf("LikelySource(%d) = %q, want %q", tt.actual, got, tt.want)
		}
	}
}

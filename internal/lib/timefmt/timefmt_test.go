package timefmt

import (
	"testing"
	"time"
)

func TestHMS_TableTests(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{
			name: "zero duration",
			d:    0,
			want: "0:00:00",
		},
		{
			name: "under a minute",
			d:    42 * time.Second,
			want: "0:00:42",
		},
		{
			name: "exactly one hour",
			d:    time.Hour,
			want: "1:00:00",
		},
		{
			name: "hour and a half",
			d:    90 * time.Minute,
			want: "1:30:00",
		},
		{
			name: "over a day",
			d:    25*time.Hour + 3*time.Minute + 7*time.Second,
			want: "25:03:07",
		},
		{
			name: "negative clamps to zero",
			d:    -5 * time.Minute,
			want: "0:00:00",
		},
		{
			name: "sub-second truncates",
			d:    900 * time.Millisecond,
			want: "0:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HMS(tt.d); got != tt.want {
				t.Errorf("HMS(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	ts := time.Date(2025, 3, 9, 18, 5, 2, 0, time.UTC)
	if got := Display(ts); got != "09.03.2025 18:05:02" {
		t.Errorf("Display() = %q", got)
	}
}

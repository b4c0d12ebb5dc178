package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	ref := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		in     any
		want   time.Time
		wantOK bool
	}{
		{"date only", "2024-01-20", ref, true},
		{"local datetime", "2024-01-20T00:00:00", ref, true},
		{"rfc3339", "2024-01-20T00:00:00Z", ref, true},
		{"rfc3339 nano", "2024-01-20T00:00:00.000Z", ref, true},
		{"padded", "  2024-01-20 ", ref, true},
		{"time value", ref, ref, true},
		{"time pointer", &ref, ref, true},
		{"zero time", time.Time{}, time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
		{"slashes", "01/20/2024", time.Time{}, false},
		{"number", 20240120.0, time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Parse(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	asOf := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		deadline time.Time
		want     int
	}{
		{time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), 31},
		{asOf, 0},
		{asOf.Add(time.Hour), 1},
		{asOf.Add(-time.Hour), 0},
		{asOf.Add(-36 * time.Hour), -1},
		{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), -10},
	}

	for _, tt := range tests {
		if got := DaysUntil(tt.deadline, asOf); got != tt.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tt.deadline.Format(time.RFC3339), got, tt.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, 3, 5, 17, 42, 9, 11, time.UTC)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
	if got := Format(in); got != "2024-03-05" {
		t.Errorf("Format = %q", got)
	}
}

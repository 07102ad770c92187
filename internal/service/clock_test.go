package service

import (
	"testing"
	"time"
)

func TestDayWindowUsesCallerZone(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 03:00 UTC on the 19th is still the 18th in Lima (UTC-5).
	at := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	start, end := DayWindow(at, lima)

	if got := start.Format("2006-01-02 15:04"); got != "2026-10-18 00:00" {
		t.Fatalf("start = %s", got)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("window length = %v", end.Sub(start))
	}
}

func TestWeekWindowStartsOnMonday(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"sunday", time.Date(2026, 10, 18, 22, 0, 0, 0, time.UTC), "2026-10-12"},
		{"monday", time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), "2026-10-12"},
		{"wednesday", time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC), "2026-10-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindow(tt.at, time.UTC)
			if got := start.Format("2006-01-02"); got != tt.want {
				t.Fatalf("start = %s, want %s", got, tt.want)
			}
			if start.Weekday() != time.Monday {
				t.Fatalf("start weekday = %v", start.Weekday())
			}
			if got := end.Sub(start); got != 7*24*time.Hour {
				t.Fatalf("window length = %v", got)
			}
		})
	}
}

package service

import (
	"testing"
	"time"
)

func TestComputeOrderDeadline(t *testing.T) {
	signed := time.Date(2026, 1, 28, 15, 30, 0, 0, time.Local)
	deadline := ComputeOrderDeadline(signed, 7)
	want := time.Date(2026, 2, 4, 15, 30, 0, 0, time.Local)
	if !deadline.Equal(want) {
		t.Fatalf("deadline want %v got %v", want, deadline)
	}
}

func TestDaysUntil(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	cases := []struct {
		name     string
		deadline time.Time
		now      time.Time
		want     int
	}{
		{"three days left", base.AddDate(0, 0, 3), base, 3},
		{"same day", base, base, 0},
		{"overdue", base.AddDate(0, 0, -2), base, -2},
		// 時刻は切り捨てて日単位で比較する
		{"time of day ignored", base.AddDate(0, 0, 1).Add(1 * time.Hour), base.Add(23 * time.Hour), 1},
		{"late deadline early now", base.AddDate(0, 0, 2).Add(23 * time.Hour), base.Add(1 * time.Minute), 2},
	}
	for _, tc := range cases {
		if got := DaysUntil(tc.deadline, tc.now); got != tc.want {
			t.Fatalf("%s: want %d got %d", tc.name, tc.want, got)
		}
	}
}

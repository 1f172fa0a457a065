package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/drm-next/internal/constants"
)

// Redis 未接続の環境ではランダム連番にフォールバックする。
// ここでは形式のみ検証する。

func TestNumberingNextFormat(t *testing.T) {
	svc := NewNumberingService("random")
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	no := svc.Next(context.Background(), "tenant-1", constants.NumberPrefixEstimate, now)

	pattern := regexp.MustCompile(`^EST-202601-\d{3}$`)
	if !pattern.MatchString(no) {
		t.Fatalf("estimate no format mismatch: %s", no)
	}
}

func TestNumberingNextConstructionNoFormat(t *testing.T) {
	svc := NewNumberingService("random")
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local)

	no := svc.NextConstructionNo(context.Background(), "tenant-1", now)

	pattern := regexp.MustCompile(`^K2026-\d{4}$`)
	if !pattern.MatchString(no) {
		t.Fatalf("construction no format mismatch: %s", no)
	}
}

func TestRandomSequenceRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := randomSequence()
		if n < 100 || n > 999 {
			t.Fatalf("random sequence out of range: %d", n)
		}
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(1200000)
	b := NewMoney(300000)

	if got := a.Add(b).Yen(); got != 1500000 {
		t.Fatalf("Add want 1500000 got %d", got)
	}
	if got := a.Sub(b).Yen(); got != 900000 {
		t.Fatalf("Sub want 900000 got %d", got)
	}
	if !NewMoney(0).IsZero() {
		t.Fatalf("zero money should be zero")
	}
}

func TestMoneyMulFloor(t *testing.T) {
	rate := decimal.NewFromFloat(0.10)
	// 999 × 0.10 = 99.9 → 99
	if got := NewMoney(999).MulFloor(rate).Yen(); got != 99 {
		t.Fatalf("MulFloor want 99 got %d", got)
	}
	if got := NewMoney(1000).MulFloor(rate).Yen(); got != 100 {
		t.Fatalf("MulFloor want 100 got %d", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	out, err := json.Marshal(NewMoney(1500))
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(out) != "1500" {
		t.Fatalf("marshal want 1500 got %s", out)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("2500"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number error: %v", err)
	}
	if fromNumber.Yen() != 2500 {
		t.Fatalf("unmarshal number want 2500 got %d", fromNumber.Yen())
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"3500"`), &fromString); err != nil {
		t.Fatalf("unmarshal string error: %v", err)
	}
	if fromString.Yen() != 3500 {
		t.Fatalf("unmarshal string want 3500 got %d", fromString.Yen())
	}
}

func TestMoneyFromDecimalRounds(t *testing.T) {
	m := NewMoneyFromDecimal(decimal.NewFromFloat(99.9))
	if m.Yen() != 100 {
		t.Fatalf("want 100 got %d", m.Yen())
	}
}

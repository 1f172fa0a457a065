package service

import (
	"errors"
	"testing"

	"github.com/drm-next/internal/models"

	"github.com/shopspring/decimal"
)

var testTaxRate = decimal.NewFromFloat(0.10)

func TestSplitIntoOrderDrafts(t *testing.T) {
	items := []WorkItem{
		{Category: "基礎工事", Name: "べた基礎", Amount: models.NewMoney(1200000), PartnerID: "p-1", PartnerName: "山田建設"},
		{Category: "電気工事", Name: "屋内配線", Amount: models.NewMoney(600000), PartnerID: "p-2", PartnerName: "田中電気"},
		{Category: "基礎工事", Name: "地盤改良", Amount: models.NewMoney(300000), PartnerID: "p-1", PartnerName: "山田建設"},
	}

	drafts, err := SplitIntoOrderDrafts(items, testTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("drafts want 2 got %d", len(drafts))
	}

	// 项目总数在拆分前后一致
	count := 0
	for _, draft := range drafts {
		count += len(draft.Items)
	}
	if count != len(items) {
		t.Fatalf("item count want %d got %d", len(items), count)
	}

	first := drafts[0]
	if first.PartnerID != "p-1" || len(first.Items) != 2 {
		t.Fatalf("first draft mismatch: %+v", first)
	}
	if first.Subtotal.Yen() != 1500000 {
		t.Fatalf("subtotal want 1500000 got %d", first.Subtotal.Yen())
	}
	if first.TaxAmount.Yen() != 150000 {
		t.Fatalf("tax want 150000 got %d", first.TaxAmount.Yen())
	}
	if first.TotalAmount.Yen() != 1650000 {
		t.Fatalf("total want 1650000 got %d", first.TotalAmount.Yen())
	}
}

func TestSplitIntoOrderDraftsTaxFloor(t *testing.T) {
	items := []WorkItem{
		{Name: "小口工事", Amount: models.NewMoney(999), PartnerID: "p-1", PartnerName: "山田建設"},
	}

	drafts, err := SplitIntoOrderDrafts(items, testTaxRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 999 × 0.10 = 99.9 → 切り捨てで 99
	if drafts[0].TaxAmount.Yen() != 99 {
		t.Fatalf("tax want 99 got %d", drafts[0].TaxAmount.Yen())
	}
	if drafts[0].TotalAmount.Yen() != 1098 {
		t.Fatalf("total want 1098 got %d", drafts[0].TotalAmount.Yen())
	}
}

func TestSplitIntoOrderDraftsRejectsUnassigned(t *testing.T) {
	items := []WorkItem{
		{Name: "a", Amount: models.NewMoney(100), PartnerID: "p-1"},
		{Name: "b", Amount: models.NewMoney(200)},
		{Name: "c", Amount: models.NewMoney(300)},
	}

	_, err := SplitIntoOrderDrafts(items, testTaxRate)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError got %v", err)
	}
	if vErr.Field != "work_items" || vErr.Count != 2 {
		t.Fatalf("validation error mismatch: %+v", vErr)
	}
}

func TestSplitIntoOrderDraftsRejectsEmpty(t *testing.T) {
	_, err := SplitIntoOrderDrafts(nil, testTaxRate)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError got %v", err)
	}
	if vErr.Field != "work_items" {
		t.Fatalf("field want work_items got %s", vErr.Field)
	}
}

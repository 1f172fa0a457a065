package service

import (
	"testing"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
)

func TestGroupByCategory(t *testing.T) {
	items := []WorkItem{
		{Category: "基礎工事", Name: "べた基礎"},
		{Category: "大工工事", Name: "建方"},
		{Category: "基礎工事", Name: "地盤改良"},
		{Category: "", Name: "仮設足場"},
	}

	keys, groups := GroupByCategory(items)

	if len(keys) != 3 {
		t.Fatalf("keys want 3 got %d: %v", len(keys), keys)
	}
	// 首次出现顺序を保持
	if keys[0] != "基礎工事" || keys[1] != "大工工事" || keys[2] != constants.UncategorizedKey {
		t.Fatalf("unexpected key order: %v", keys)
	}
	if len(groups["基礎工事"]) != 2 {
		t.Fatalf("基礎工事 group want 2 got %d", len(groups["基礎工事"]))
	}
	if len(groups[constants.UncategorizedKey]) != 1 || groups[constants.UncategorizedKey][0].Name != "仮設足場" {
		t.Fatalf("uncategorized group mismatch: %+v", groups[constants.UncategorizedKey])
	}
}

func TestGroupByPartner(t *testing.T) {
	items := []WorkItem{
		{Name: "a", PartnerID: "p-1"},
		{Name: "b", PartnerID: "p-2"},
		{Name: "c", PartnerID: "p-1"},
		{Name: "d"},
	}

	keys, groups := GroupByPartner(items)

	if len(keys) != 3 {
		t.Fatalf("keys want 3 got %d", len(keys))
	}
	if len(groups["p-1"]) != 2 || len(groups["p-2"]) != 1 || len(groups[""]) != 1 {
		t.Fatalf("group sizes mismatch: %v", groups)
	}
}

func TestCountUnassigned(t *testing.T) {
	items := []WorkItem{
		{Name: "a", PartnerID: "p-1"},
		{Name: "b"},
		{Name: "c"},
	}
	if got := CountUnassigned(items); got != 2 {
		t.Fatalf("want 2 got %d", got)
	}
	if got := CountUnassigned(nil); got != 0 {
		t.Fatalf("empty want 0 got %d", got)
	}
}

func TestNormalizeWorkItems(t *testing.T) {
	items := []WorkItem{
		// 金额被客户端篡改过：数量×単価と一致しない
		{Name: "建方", Quantity: 2, UnitPrice: models.NewMoney(500000), Amount: models.NewMoney(1)},
		{Name: "べた基礎", Quantity: 0, UnitPrice: models.NewMoney(1200000), Amount: models.NewMoney(9999999)},
	}

	normalized := normalizeWorkItems(items)

	if normalized[0].Amount.Yen() != 1000000 {
		t.Fatalf("amount should be recomputed: want 1000000 got %d", normalized[0].Amount.Yen())
	}
	// 数量 0 は 1 に補正した上で再計算
	if normalized[1].Quantity != 1 || normalized[1].Amount.Yen() != 1200000 {
		t.Fatalf("zero quantity should normalize to 1: %+v", normalized[1])
	}
	// 入力は変更しない
	if items[0].Amount.Yen() != 1 {
		t.Fatalf("input must not be mutated: %d", items[0].Amount.Yen())
	}
}

func TestWorkItemsFromContract(t *testing.T) {
	contractItems := []models.ContractItem{
		{Category: "基礎工事", Name: "べた基礎", Quantity: 1, Unit: "式", UnitPrice: models.NewMoney(1200000), Amount: models.NewMoney(1200000), SortOrder: 0},
	}
	items := workItemsFromContract(contractItems)
	if len(items) != 1 {
		t.Fatalf("want 1 got %d", len(items))
	}
	if items[0].PartnerID != "" {
		t.Fatalf("converted item should start unassigned")
	}
	if items[0].Amount.Yen() != 1200000 || items[0].Category != "基礎工事" {
		t.Fatalf("field copy mismatch: %+v", items[0])
	}
}

package service

import (
	"testing"

	"github.com/drm-next/internal/models"
)

func assignTestPartners() []models.Partner {
	return []models.Partner{
		{ID: "p-1", Name: "山田建設", Category: "基礎工事", Specialties: models.StringList{"基礎工事"}, Rating: 3},
		{ID: "p-2", Name: "鈴木工務店", Category: "基礎工事", Specialties: models.StringList{"基礎工事", "外構工事"}, Rating: 5},
		{ID: "p-3", Name: "田中電気", Category: "電気工事", Specialties: models.StringList{"電気工事"}, Rating: 4},
	}
}

func TestAutoAssignPicksBestRated(t *testing.T) {
	items := []WorkItem{
		{Category: "基礎工事", Name: "べた基礎"},
		{Category: "電気工事", Name: "屋内配線"},
	}

	assigned := AutoAssign(items, assignTestPartners())

	if assigned[0].PartnerID != "p-2" {
		t.Fatalf("基礎工事 should go to highest rated p-2, got %s", assigned[0].PartnerID)
	}
	if assigned[1].PartnerID != "p-3" || assigned[1].PartnerName != "田中電気" {
		t.Fatalf("電気工事 want p-3 got %+v", assigned[1])
	}
}

func TestAutoAssignReusesPartnerPerCategory(t *testing.T) {
	items := []WorkItem{
		{Category: "基礎工事", Name: "べた基礎"},
		{Category: "基礎工事", Name: "地盤改良"},
	}

	assigned := AutoAssign(items, assignTestPartners())

	if assigned[0].PartnerID != assigned[1].PartnerID {
		t.Fatalf("same category must reuse the same partner: %s vs %s", assigned[0].PartnerID, assigned[1].PartnerID)
	}
}

func TestAutoAssignTieBreakFirstEncountered(t *testing.T) {
	partners := []models.Partner{
		{ID: "p-a", Name: "A社", Specialties: models.StringList{"塗装工事"}, Rating: 4},
		{ID: "p-b", Name: "B社", Specialties: models.StringList{"塗装工事"}, Rating: 4},
	}
	items := []WorkItem{{Category: "塗装工事", Name: "外壁塗装"}}

	assigned := AutoAssign(items, partners)

	if assigned[0].PartnerID != "p-a" {
		t.Fatalf("equal rating should keep first encountered, got %s", assigned[0].PartnerID)
	}
}

func TestAutoAssignLeavesUnmatchedUnassigned(t *testing.T) {
	items := []WorkItem{{Category: "解体工事", Name: "既存建物解体"}}

	assigned := AutoAssign(items, assignTestPartners())

	if assigned[0].PartnerID != "" || assigned[0].PartnerName != "" {
		t.Fatalf("unmatched item must stay unassigned: %+v", assigned[0])
	}
}

func TestAutoAssignDoesNotMutateInput(t *testing.T) {
	items := []WorkItem{{Category: "基礎工事", Name: "べた基礎"}}

	AutoAssign(items, assignTestPartners())

	if items[0].PartnerID != "" {
		t.Fatalf("input slice must not be mutated: %+v", items[0])
	}
}

package service

import (
	"testing"

	"github.com/drm-next/internal/models"
)

func TestPartnerMatchesExactSpecialty(t *testing.T) {
	partner := models.Partner{Specialties: models.StringList{"基礎工事", "外構工事"}}
	if !PartnerMatches("基礎工事", partner) {
		t.Fatalf("exact specialty should match")
	}
	if PartnerMatches("電気工事", partner) {
		t.Fatalf("unrelated category should not match")
	}
}

func TestPartnerMatchesSubstringBothWays(t *testing.T) {
	partner := models.Partner{Specialties: models.StringList{"基礎"}}
	// 分類が専門分野を包含
	if !PartnerMatches("基礎工事", partner) {
		t.Fatalf("category containing specialty should match")
	}
	// 専門分野が分類を包含
	wide := models.Partner{Specialties: models.StringList{"内装仕上工事一式"}}
	if !PartnerMatches("内装仕上工事", wide) {
		t.Fatalf("specialty containing category should match")
	}
}

func TestPartnerMatchesEmptySpecialtiesWildcard(t *testing.T) {
	partner := models.Partner{Name: "何でも屋", Specialties: models.StringList{}}
	if !PartnerMatches("解体工事", partner) {
		t.Fatalf("empty specialties should match any category")
	}
}

func TestPartnerMatchesOwnCategory(t *testing.T) {
	partner := models.Partner{Category: "塗装工事", Specialties: models.StringList{"防水工事"}}
	if !PartnerMatches("塗装工事", partner) {
		t.Fatalf("partner's own category should match even without the specialty")
	}
}

func TestMatchPartnersFilters(t *testing.T) {
	partners := []models.Partner{
		{ID: "p-1", Specialties: models.StringList{"基礎工事"}},
		{ID: "p-2", Specialties: models.StringList{"電気工事"}},
		{ID: "p-3", Specialties: models.StringList{}},
	}

	matched := MatchPartners("基礎工事", partners)

	if len(matched) != 2 {
		t.Fatalf("matched want 2 got %d", len(matched))
	}
	if matched[0].ID != "p-1" || matched[1].ID != "p-3" {
		t.Fatalf("matched order mismatch: %+v", matched)
	}
}

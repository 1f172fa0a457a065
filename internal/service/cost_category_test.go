package service

import (
	"testing"

	"github.com/drm-next/internal/constants"
)

func TestDetermineCostCategory(t *testing.T) {
	cases := []struct {
		workCategory string
		name         string
		want         string
	}{
		{"", "建材一式", constants.CostCategoryMaterial},
		{"設備工事", "給湯器", constants.CostCategoryMaterial},
		{"", "大工手間", constants.CostCategoryLabor},
		{"", "労務費", constants.CostCategoryLabor},
		{"基礎工事", "べた基礎", constants.CostCategoryOutsourcing},
		{"電気工事", "屋内配線", constants.CostCategoryOutsourcing},
		{"", "仮設足場", constants.CostCategoryExpense},
		{"", "残材運搬", constants.CostCategoryExpense},
		// どのキーワードにも当たらない場合は外注費
		{"", "その他", constants.CostCategoryOutsourcing},
	}
	for _, tc := range cases {
		if got := DetermineCostCategory(tc.workCategory, tc.name); got != tc.want {
			t.Fatalf("DetermineCostCategory(%q, %q) want %s got %s", tc.workCategory, tc.name, tc.want, got)
		}
	}
}

func TestDetermineCostCategoryCategoryWinsOverName(t *testing.T) {
	// 分類が付いている場合は項目名を見ない。
	// 基礎工事の資材調達は外注費のまま、材料費には倒れない。
	if got := DetermineCostCategory("基礎工事", "基礎用材料一式"); got != constants.CostCategoryOutsourcing {
		t.Fatalf("want outsourcing got %s", got)
	}
	if got := DetermineCostCategory("", "基礎用材料一式"); got != constants.CostCategoryMaterial {
		t.Fatalf("empty category should fall back to name, want material got %s", got)
	}
}

func TestDetermineCostCategoryFirstMatchWins(t *testing.T) {
	// 「資材運搬」は材料キーワードと経費キーワードの両方を含むが、表の先頭が勝つ
	if got := DetermineCostCategory("", "資材運搬"); got != constants.CostCategoryMaterial {
		t.Fatalf("want material got %s", got)
	}
}

package service

import (
	"testing"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
)

func TestAnalyzeVariance(t *testing.T) {
	categories := []models.BudgetCategory{
		{CostCategory: constants.CostCategoryOutsourcing, WorkCategory: "基礎工事", BudgetAmount: models.NewMoney(1000000), ActualAmount: models.NewMoney(1200000)},
		{CostCategory: constants.CostCategoryMaterial, WorkCategory: "大工工事", BudgetAmount: models.NewMoney(2000000), ActualAmount: models.NewMoney(1500000)},
		{CostCategory: constants.CostCategoryExpense, WorkCategory: "諸経費", BudgetAmount: models.NewMoney(300000), ActualAmount: models.NewMoney(300000)},
	}

	rows := AnalyzeVariance(categories)
	if len(rows) != 3 {
		t.Fatalf("rows want 3 got %d", len(rows))
	}

	over := rows[0]
	if over.Status != constants.VarianceOver || over.Variance.Yen() != 200000 {
		t.Fatalf("over row mismatch: %+v", over)
	}
	if over.VariancePercent != 20.0 {
		t.Fatalf("over percent want 20.0 got %v", over.VariancePercent)
	}

	under := rows[1]
	if under.Status != constants.VarianceUnder || under.Variance.Yen() != -500000 {
		t.Fatalf("under row mismatch: %+v", under)
	}
	if under.VariancePercent != -25.0 {
		t.Fatalf("under percent want -25.0 got %v", under.VariancePercent)
	}

	onBudget := rows[2]
	if onBudget.Status != constants.VarianceOnBudget || !onBudget.Variance.IsZero() {
		t.Fatalf("on_budget row mismatch: %+v", onBudget)
	}
}

func TestAnalyzeVarianceZeroBudget(t *testing.T) {
	categories := []models.BudgetCategory{
		{CostCategory: constants.CostCategoryLabor, WorkCategory: "追加工事", BudgetAmount: models.NewMoney(0), ActualAmount: models.NewMoney(50000)},
	}

	rows := AnalyzeVariance(categories)

	row := rows[0]
	if !row.NoBudget {
		t.Fatalf("zero budget must set NoBudget")
	}
	if row.VariancePercent != 0 {
		t.Fatalf("zero budget percent want 0 got %v", row.VariancePercent)
	}
	if row.Status != constants.VarianceOver || row.Variance.Yen() != 50000 {
		t.Fatalf("row mismatch: %+v", row)
	}
}

func TestAnalyzeVariancePercentRounding(t *testing.T) {
	categories := []models.BudgetCategory{
		{CostCategory: constants.CostCategoryMaterial, WorkCategory: "建材", BudgetAmount: models.NewMoney(300000), ActualAmount: models.NewMoney(400000)},
	}

	rows := AnalyzeVariance(categories)

	// 100000 / 300000 × 100 = 33.333…% → 小数第 2 位で丸め
	if rows[0].VariancePercent != 33.33 {
		t.Fatalf("percent want 33.33 got %v", rows[0].VariancePercent)
	}
}

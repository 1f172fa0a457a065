package service

import (
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"

	"github.com/shopspring/decimal"
)

// VarianceRow 预算差异报告行
type VarianceRow struct {
	CostCategory    string       `json:"cost_category"`
	WorkCategory    string       `json:"work_category"`
	BudgetAmount    models.Money `json:"budget_amount"`
	SpentAmount     models.Money `json:"spent_amount"`
	Variance        models.Money `json:"variance"`
	VariancePercent float64      `json:"variance_percent"`
	Status          string       `json:"status"` // over / under / on_budget
	NoBudget        bool         `json:"no_budget"`
}

// AnalyzeVariance 逐预算分类计算差异。
// variance = 实绩 − 预算；预算为 0 时百分比固定 0 并标记 no_budget，避免除零。
func AnalyzeVariance(categories []models.BudgetCategory) []VarianceRow {
	rows := make([]VarianceRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, varianceRow(category))
	}
	return rows
}

func varianceRow(category models.BudgetCategory) VarianceRow {
	variance := category.ActualAmount.Sub(category.BudgetAmount)
	row := VarianceRow{
		CostCategory: category.CostCategory,
		WorkCategory: category.WorkCategory,
		BudgetAmount: category.BudgetAmount,
		SpentAmount:  category.ActualAmount,
		Variance:     variance,
	}

	if category.BudgetAmount.IsZero() {
		row.NoBudget = true
		row.VariancePercent = 0
	} else {
		percent := variance.Decimal.Div(category.BudgetAmount.Decimal).Mul(decimal.NewFromInt(100))
		row.VariancePercent, _ = percent.Round(2).Float64()
	}

	switch {
	case variance.Decimal.IsPositive():
		row.Status = constants.VarianceOver
	case variance.Decimal.IsNegative():
		row.Status = constants.VarianceUnder
	default:
		row.Status = constants.VarianceOnBudget
	}
	return row
}

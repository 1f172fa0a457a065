package service

import (
	"bytes"
	"fmt"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"

	"github.com/xuri/excelize/v2"
)

// 导出时的原价科目表示名
var costCategoryLabels = map[string]string{
	constants.CostCategoryMaterial:    "材料費",
	constants.CostCategoryLabor:       "労務費",
	constants.CostCategoryOutsourcing: "外注費",
	constants.CostCategoryExpense:     "経費",
}

// ExportXLSX 导出工事台账为 Excel。首页为台账概要与四科目预算实绩，次页为原价明细。
func (s *LedgerService) ExportXLSX(tenantID, ledgerID string) ([]byte, string, error) {
	ledger, err := s.Get(tenantID, ledgerID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "工事台帳"
	f.SetSheetName("Sheet1", summary)
	writeSummarySheet(f, summary, ledger)

	detail := "原価明細"
	if _, err := f.NewSheet(detail); err != nil {
		return nil, "", err
	}
	writeCostEntrySheet(f, detail, ledger.CostEntries)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s_工事台帳.xlsx", ledger.ConstructionNo)
	return buf.Bytes(), filename, nil
}

func writeSummarySheet(f *excelize.File, sheet string, ledger *models.ConstructionLedger) {
	rows := [][]interface{}{
		{"工事番号", ledger.ConstructionNo},
		{"工事名", ledger.ProjectName},
		{"契約番号", ledger.ContractNo},
		{"顧客名", ledger.CustomerName},
		{"契約金額", ledger.ContractAmount.Yen()},
		{"消費税", ledger.TaxAmount.Yen()},
		{"合計", ledger.TotalAmount.Yen()},
		{"進捗率", fmt.Sprintf("%d%%", ledger.Progress)},
		{"状態", ledger.Status},
		{},
		{"科目", "実行予算", "実際原価", "差異"},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	budgets := []struct {
		category string
		budget   models.Money
		actual   models.Money
	}{
		{constants.CostCategoryMaterial, ledger.BudgetMaterial, ledger.ActualMaterial},
		{constants.CostCategoryLabor, ledger.BudgetLabor, ledger.ActualLabor},
		{constants.CostCategoryOutsourcing, ledger.BudgetOutsourcing, ledger.ActualOutsourcing},
		{constants.CostCategoryExpense, ledger.BudgetExpense, ledger.ActualExpense},
	}
	base := len(rows)
	for i, b := range budgets {
		row := base + i + 1
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), costCategoryLabels[b.category])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.budget.Yen())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.actual.Yen())
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.actual.Sub(b.budget).Yen())
	}
	totalRow := base + len(budgets) + 1
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "合計")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), ledger.BudgetTotal.Yen())
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), ledger.ActualTotal.Yen())
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), ledger.ActualTotal.Sub(ledger.BudgetTotal).Yen())
}

func writeCostEntrySheet(f *excelize.File, sheet string, entries []models.CostEntry) {
	headers := []string{"発生日", "科目", "工事分類", "内容", "金額", "協力会社", "登録者"}
	for j, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}
	for i, entry := range entries {
		row := i + 2
		label := costCategoryLabels[entry.CostCategory]
		if label == "" {
			label = entry.CostCategory
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.IncurredAt.Format("2006-01-02"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.WorkCategory)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Description)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Amount.Yen())
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), entry.PartnerName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), entry.CreatedBy)
	}
}

package service

import (
	"testing"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
)

func testEstimate() *models.Estimate {
	return &models.Estimate{
		ID:              "est-1",
		TenantID:        "tenant-1",
		EstimateNo:      "EST-202601-001",
		ProjectName:     "〇〇様邸新築工事",
		ProjectType:     "新築",
		CustomerID:      "cust-1",
		CustomerName:    "山本五郎",
		CustomerCompany: "山本商事",
		CustomerAddress: "東京都杉並区",
		CustomerPhone:   "090-0000-0000",
		CustomerEmail:   "yamamoto@example.com",
		TotalAmount:     models.NewMoney(4600000),
		TaxAmount:       models.NewMoney(460000),
		Duration:        90,
		Items: []models.EstimateItem{
			{Category: "基礎工事", Name: "べた基礎一式", Quantity: 1, Unit: "式", UnitPrice: models.NewMoney(1200000), Amount: models.NewMoney(1200000), SortOrder: 0},
			{Category: "", Name: "仮設足場", Quantity: 200, Unit: "㎡", UnitPrice: models.NewMoney(1500), Amount: models.NewMoney(300000), SortOrder: 1},
		},
	}
}

func allOnSetting() *models.WorkflowSetting {
	return &models.WorkflowSetting{
		TenantID:        "tenant-1",
		MapCustomerInfo: true,
		MapAmount:       true,
		MapDuration:     true,
		MapItems:        true,
		RequireApproval: true,
	}
}

func TestDeriveContractAllFlagsOn(t *testing.T) {
	estimate := testEstimate()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	contract, clauses, items := deriveContract(estimate, allOnSetting(), "CON-202601-001", now)

	if contract.EstimateID != "est-1" || contract.ContractNo != "CON-202601-001" {
		t.Fatalf("source references not set: %+v", contract)
	}
	if contract.Status != constants.ContractStatusDraft {
		t.Fatalf("new contract should start as draft, got %s", contract.Status)
	}
	if contract.CustomerName != "山本五郎" || contract.CustomerEmail != "yamamoto@example.com" {
		t.Fatalf("customer info not mapped: %+v", contract)
	}
	if contract.ContractAmount.Yen() != 4600000 || contract.TaxAmount.Yen() != 460000 {
		t.Fatalf("amount not mapped: %+v", contract)
	}
	if contract.TotalAmount.Yen() != 5060000 {
		t.Fatalf("total should be amount+tax, got %d", contract.TotalAmount.Yen())
	}
	if contract.StartDate == nil || contract.EndDate == nil {
		t.Fatalf("duration dates not mapped")
	}
	if !contract.EndDate.Equal(now.AddDate(0, 0, 90)) {
		t.Fatalf("end date want %v got %v", now.AddDate(0, 0, 90), contract.EndDate)
	}
	if contract.ApprovalStatus != constants.ApprovalStatusPending {
		t.Fatalf("approval status want pending got %s", contract.ApprovalStatus)
	}
	if len(clauses) != 2 || len(items) != 2 {
		t.Fatalf("clauses/items want 2/2 got %d/%d", len(clauses), len(items))
	}
}

func TestDeriveContractFlagsOff(t *testing.T) {
	estimate := testEstimate()
	setting := &models.WorkflowSetting{TenantID: "tenant-1"}
	now := time.Now()

	contract, clauses, items := deriveContract(estimate, setting, "CON-202601-002", now)

	if contract.CustomerName != "" || contract.CustomerEmail != "" {
		t.Fatalf("customer info should not be mapped: %+v", contract)
	}
	if !contract.ContractAmount.IsZero() || !contract.TotalAmount.IsZero() {
		t.Fatalf("amount should not be mapped: %+v", contract)
	}
	if contract.StartDate != nil || contract.EndDate != nil || contract.Duration != 0 {
		t.Fatalf("duration should not be mapped: %+v", contract)
	}
	if contract.ApprovalStatus != "" {
		t.Fatalf("approval should not be required, got %s", contract.ApprovalStatus)
	}
	if len(clauses) != 0 || len(items) != 0 {
		t.Fatalf("items should not be mapped, got %d/%d", len(clauses), len(items))
	}
	// 无条件字段不受开关影响
	if contract.ProjectName != "〇〇様邸新築工事" || contract.PaymentTerms != constants.DefaultPaymentTerms {
		t.Fatalf("unconditional fields missing: %+v", contract)
	}
}

func TestDeriveContractClauseFormat(t *testing.T) {
	estimate := testEstimate()
	_, clauses, _ := deriveContract(estimate, allOnSetting(), "CON-202601-003", time.Now())

	if clauses[0].Title != "第1条 基礎工事" {
		t.Fatalf("clause title want 第1条 基礎工事 got %s", clauses[0].Title)
	}
	want := "べた基礎一式（1式、単価1,200,000円）：1,200,000円"
	if clauses[0].Content != want {
		t.Fatalf("clause content want %s got %s", want, clauses[0].Content)
	}
	// 分類未設定の明細は未分類として条項化
	if clauses[1].Title != "第2条 未分類" {
		t.Fatalf("clause title want 第2条 未分類 got %s", clauses[1].Title)
	}
}

func TestFormatYen(t *testing.T) {
	cases := []struct {
		yen  int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1200000, "1,200,000"},
		{-4500, "-4,500"},
	}
	for _, tc := range cases {
		if got := formatYen(models.NewMoney(tc.yen)); got != tc.want {
			t.Fatalf("formatYen(%d) want %s got %s", tc.yen, tc.want, got)
		}
	}
}

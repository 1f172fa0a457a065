package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/queue"
	"github.com/drm-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupLedgerServiceTest(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Contract{},
		&models.ContractClause{},
		&models.ContractItem{},
		&models.Order{},
		&models.OrderWorkItem{},
		&models.ConstructionLedger{},
		&models.BudgetCategory{},
		&models.CostEntry{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewLedgerService(
		repository.NewLedgerRepository(db),
		repository.NewContractRepository(db),
		repository.NewOrderRepository(db),
		NewNumberingService("random"),
	)
	return svc, db
}

func seedLedgerContract(t *testing.T, db *gorm.DB, id string) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		ID:             id,
		TenantID:       constants.DefaultTenantID,
		EstimateID:     "est-1",
		ContractNo:     "CON-202601-" + id,
		ContractDate:   time.Now(),
		ProjectName:    "〇〇様邸新築工事",
		ProjectType:    "新築",
		ContractType:   constants.DefaultContractType,
		ContractAmount: models.NewMoney(4600000),
		TaxAmount:      models.NewMoney(460000),
		TotalAmount:    models.NewMoney(5060000),
		Status:         constants.ContractStatusSigned,
	}
	if err := db.Create(contract).Error; err != nil {
		t.Fatalf("seed contract failed: %v", err)
	}
	return contract
}

func TestLedgerCreateFromContract(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	contract := seedLedgerContract(t, db, "con-1")

	ledger, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, contract.ID, "tester")
	if err != nil {
		t.Fatalf("create ledger failed: %v", err)
	}
	if ledger.ContractID != contract.ID || ledger.ProjectName != contract.ProjectName {
		t.Fatalf("contract fields not carried: %+v", ledger)
	}
	if ledger.ContractAmount.Yen() != 4600000 || ledger.TotalAmount.Yen() != 5060000 {
		t.Fatalf("amounts not carried: %+v", ledger)
	}
	if ledger.Status != constants.LedgerStatusPlanning {
		t.Fatalf("new ledger should start as planning, got %s", ledger.Status)
	}
	if ledger.ConstructionNo == "" {
		t.Fatalf("construction no should be generated")
	}

	// 同一契约重复创建は拒否
	if _, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, contract.ID, "tester"); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate ledger want ErrConflict got %v", err)
	}
}

func TestLedgerCreateFromContractMissing(t *testing.T) {
	svc, _ := setupLedgerServiceTest(t)

	if _, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, "missing", "tester"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing contract want ErrNotFound got %v", err)
	}

	var vErr *ValidationError
	if _, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, "", "tester"); !errors.As(err, &vErr) {
		t.Fatalf("empty contract id want ValidationError got %v", err)
	}
}

func TestLedgerBudgetSyncAddSubtractSymmetry(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	contract := seedLedgerContract(t, db, "con-1")

	ledger, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, contract.ID, "tester")
	if err != nil {
		t.Fatalf("create ledger failed: %v", err)
	}

	order := &models.Order{
		ID:          "ord-1",
		TenantID:    constants.DefaultTenantID,
		OrderNo:     "ORD-202601-001",
		ContractID:  contract.ID,
		PartnerID:   "p-1",
		Subtotal:    models.NewMoney(1800000),
		TaxAmount:   models.NewMoney(180000),
		TotalAmount: models.NewMoney(1980000),
		OrderDate:   time.Now(),
		Status:      constants.OrderStatusDraft,
	}
	items := []models.OrderWorkItem{
		{Category: "基礎工事", Name: "べた基礎", Quantity: 1, Amount: models.NewMoney(1200000)},
		{Category: "", Name: "建材一式", Quantity: 1, Amount: models.NewMoney(600000)},
	}
	if err := repository.NewOrderRepository(db).Create(order, items); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	payload := queue.LedgerBudgetSyncPayload{
		TenantID:  constants.DefaultTenantID,
		OrderID:   order.ID,
		Operation: constants.BudgetOpAdd,
	}
	if err := svc.ApplyBudgetSync(payload); err != nil {
		t.Fatalf("budget add failed: %v", err)
	}

	got, err := svc.Get(constants.DefaultTenantID, ledger.ID)
	if err != nil {
		t.Fatalf("get ledger failed: %v", err)
	}
	// 基礎工事→外注費、建材→材料費
	if got.BudgetOutsourcing.Yen() != 1200000 {
		t.Fatalf("outsourcing budget want 1200000 got %d", got.BudgetOutsourcing.Yen())
	}
	if got.BudgetMaterial.Yen() != 600000 {
		t.Fatalf("material budget want 600000 got %d", got.BudgetMaterial.Yen())
	}
	if got.BudgetTotal.Yen() != 1800000 {
		t.Fatalf("budget total want 1800000 got %d", got.BudgetTotal.Yen())
	}
	if len(got.Categories) != 2 {
		t.Fatalf("budget categories want 2 got %d", len(got.Categories))
	}

	// 発注取消後の回冲で元に戻る
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", constants.OrderStatusCancelled).Error; err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	payload.Operation = constants.BudgetOpSubtract
	if err := svc.ApplyBudgetSync(payload); err != nil {
		t.Fatalf("budget subtract failed: %v", err)
	}
	got, err = svc.Get(constants.DefaultTenantID, ledger.ID)
	if err != nil {
		t.Fatalf("get ledger failed: %v", err)
	}
	if !got.BudgetOutsourcing.IsZero() || !got.BudgetMaterial.IsZero() || !got.BudgetTotal.IsZero() {
		t.Fatalf("budgets should return to zero after subtract: %+v", got)
	}
}

func TestLedgerBudgetSyncRedelivery(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	contract := seedLedgerContract(t, db, "con-1")

	ledger, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, contract.ID, "tester")
	if err != nil {
		t.Fatalf("create ledger failed: %v", err)
	}

	order := &models.Order{
		ID:          "ord-1",
		TenantID:    constants.DefaultTenantID,
		OrderNo:     "ORD-202601-001",
		ContractID:  contract.ID,
		PartnerID:   "p-1",
		Subtotal:    models.NewMoney(1000000),
		TaxAmount:   models.NewMoney(100000),
		TotalAmount: models.NewMoney(1100000),
		OrderDate:   time.Now(),
		Status:      constants.OrderStatusDraft,
	}
	items := []models.OrderWorkItem{
		{Category: "基礎工事", Name: "べた基礎", Quantity: 1, Amount: models.NewMoney(1000000)},
	}
	if err := repository.NewOrderRepository(db).Create(order, items); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	payload := queue.LedgerBudgetSyncPayload{
		TenantID:  constants.DefaultTenantID,
		OrderID:   order.ID,
		Operation: constants.BudgetOpAdd,
	}
	// 同一タスクの再投递（worker クラッシュや ack 前の再配信）でも结果は同じ
	if err := svc.ApplyBudgetSync(payload); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if err := svc.ApplyBudgetSync(payload); err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	got, err := svc.Get(constants.DefaultTenantID, ledger.ID)
	if err != nil {
		t.Fatalf("get ledger failed: %v", err)
	}
	if got.BudgetTotal.Yen() != 1000000 {
		t.Fatalf("budget total want 1000000 got %d", got.BudgetTotal.Yen())
	}
	if got.BudgetOutsourcing.Yen() != 1000000 {
		t.Fatalf("outsourcing budget want 1000000 got %d", got.BudgetOutsourcing.Yen())
	}
	if len(got.Categories) != 1 || got.Categories[0].BudgetAmount.Yen() != 1000000 {
		t.Fatalf("category row should not double: %+v", got.Categories)
	}
}

func TestLedgerBudgetSyncMissingLedgerSkips(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	contract := seedLedgerContract(t, db, "con-1")

	order := &models.Order{
		ID:         "ord-1",
		TenantID:   constants.DefaultTenantID,
		OrderNo:    "ORD-202601-001",
		ContractID: contract.ID,
		PartnerID:  "p-1",
		OrderDate:  time.Now(),
		Status:     constants.OrderStatusDraft,
	}
	if err := repository.NewOrderRepository(db).Create(order, nil); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	err := svc.ApplyBudgetSync(queue.LedgerBudgetSyncPayload{
		TenantID:  constants.DefaultTenantID,
		OrderID:   order.ID,
		Operation: constants.BudgetOpAdd,
	})
	if err != nil {
		t.Fatalf("missing ledger should be skipped, got %v", err)
	}
}

func TestLedgerAddCostEntryAutoClassify(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	contract := seedLedgerContract(t, db, "con-1")

	ledger, err := svc.CreateFromContract(context.Background(), constants.DefaultTenantID, contract.ID, "tester")
	if err != nil {
		t.Fatalf("create ledger failed: %v", err)
	}

	got, err := svc.AddCostEntry(constants.DefaultTenantID, ledger.ID, "tester", CostEntryInput{
		WorkCategory: "大工工事",
		Description:  "大工手間",
		Amount:       models.NewMoney(350000),
	})
	if err != nil {
		t.Fatalf("add cost entry failed: %v", err)
	}
	if got.ActualLabor.Yen() != 350000 {
		t.Fatalf("labor actual want 350000 got %d", got.ActualLabor.Yen())
	}
	if got.ActualTotal.Yen() != 350000 {
		t.Fatalf("actual total want 350000 got %d", got.ActualTotal.Yen())
	}
	if len(got.CostEntries) != 1 || got.CostEntries[0].CostCategory != constants.CostCategoryLabor {
		t.Fatalf("cost entry not classified as labor: %+v", got.CostEntries)
	}

	rows, err := svc.Variance(constants.DefaultTenantID, ledger.ID)
	if err != nil {
		t.Fatalf("variance failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("variance rows want 1 got %d", len(rows))
	}
	if !rows[0].NoBudget || rows[0].SpentAmount.Yen() != 350000 {
		t.Fatalf("variance row mismatch: %+v", rows[0])
	}
}

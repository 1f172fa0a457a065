package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEstimateRepositoryTest(t *testing.T) (*GormEstimateRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:estimate_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Estimate{},
		&models.EstimateItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewEstimateRepository(db), db
}

func TestEstimateRepositoryCreateAndGet(t *testing.T) {
	repo, _ := setupEstimateRepositoryTest(t)

	estimate := &models.Estimate{
		ID:          "est-1",
		TenantID:    constants.DefaultTenantID,
		EstimateNo:  "EST-202601-001",
		ProjectName: "〇〇様邸新築工事",
		TotalAmount: models.NewMoney(4600000),
		TaxAmount:   models.NewMoney(460000),
		Status:      constants.EstimateStatusDraft,
	}
	items := []models.EstimateItem{
		{Category: "電気工事", Name: "屋内配線", Quantity: 40, Unit: "箇所", UnitPrice: models.NewMoney(15000), Amount: models.NewMoney(600000), SortOrder: 1},
		{Category: "基礎工事", Name: "べた基礎", Quantity: 1, Unit: "式", UnitPrice: models.NewMoney(1200000), Amount: models.NewMoney(1200000), SortOrder: 0},
	}
	if err := repo.Create(estimate, items); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID(constants.DefaultTenantID, "est-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatalf("estimate should exist")
	}
	if got.TotalAmount.Yen() != 4600000 {
		t.Fatalf("total want 4600000 got %d", got.TotalAmount.Yen())
	}
	if len(got.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(got.Items))
	}
	// 明细按 sort_order 排序
	if got.Items[0].Name != "べた基礎" {
		t.Fatalf("items should be ordered by sort_order, got %s first", got.Items[0].Name)
	}
}

func TestEstimateRepositoryTenantScope(t *testing.T) {
	repo, _ := setupEstimateRepositoryTest(t)

	estimate := &models.Estimate{
		ID:          "est-1",
		TenantID:    "tenant-a",
		EstimateNo:  "EST-202601-001",
		ProjectName: "A邸",
		Status:      constants.EstimateStatusDraft,
	}
	if err := repo.Create(estimate, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByID("tenant-b", "est-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("other tenant must not see the estimate")
	}
}

func TestEstimateRepositoryGetMissingReturnsNil(t *testing.T) {
	repo, _ := setupEstimateRepositoryTest(t)

	got, err := repo.GetByID(constants.DefaultTenantID, "missing")
	if err != nil {
		t.Fatalf("missing record should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("missing record should be nil")
	}
}

func TestEstimateRepositoryListFilterAndStatus(t *testing.T) {
	repo, _ := setupEstimateRepositoryTest(t)

	seeds := []models.Estimate{
		{ID: "est-1", TenantID: constants.DefaultTenantID, EstimateNo: "EST-202601-001", ProjectName: "A邸新築", Status: constants.EstimateStatusDraft},
		{ID: "est-2", TenantID: constants.DefaultTenantID, EstimateNo: "EST-202601-002", ProjectName: "B邸改修", Status: constants.EstimateStatusConverted},
		{ID: "est-3", TenantID: "other", EstimateNo: "EST-202601-003", ProjectName: "C邸新築", Status: constants.EstimateStatusDraft},
	}
	for i := range seeds {
		if err := repo.Create(&seeds[i], nil); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	list, total, err := repo.List(EstimateListFilter{TenantID: constants.DefaultTenantID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("tenant list want 2 got total=%d len=%d", total, len(list))
	}

	list, total, err = repo.List(EstimateListFilter{TenantID: constants.DefaultTenantID, Status: constants.EstimateStatusConverted, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 1 || list[0].ID != "est-2" {
		t.Fatalf("status filter mismatch: total=%d", total)
	}

	list, total, err = repo.List(EstimateListFilter{TenantID: constants.DefaultTenantID, Search: "改修", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 || list[0].ID != "est-2" {
		t.Fatalf("search filter mismatch: total=%d", total)
	}
}

func TestEstimateRepositoryReplaceItems(t *testing.T) {
	repo, db := setupEstimateRepositoryTest(t)

	estimate := &models.Estimate{
		ID:         "est-1",
		TenantID:   constants.DefaultTenantID,
		EstimateNo: "EST-202601-001",
		Status:     constants.EstimateStatusDraft,
	}
	items := []models.EstimateItem{
		{Name: "旧明細", Quantity: 1, Amount: models.NewMoney(100)},
	}
	if err := repo.Create(estimate, items); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	replacement := []models.EstimateItem{
		{Name: "新明細1", Quantity: 1, Amount: models.NewMoney(200), SortOrder: 0},
		{Name: "新明細2", Quantity: 2, Amount: models.NewMoney(400), SortOrder: 1},
	}
	if err := repo.ReplaceItems("est-1", replacement); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.EstimateItem{}).Where("estimate_id = ?", "est-1").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("items after replace want 2 got %d", count)
	}

	got, err := repo.GetByID(constants.DefaultTenantID, "est-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Items[0].Name != "新明細1" {
		t.Fatalf("replaced items mismatch: %+v", got.Items)
	}
}

func TestEstimateRepositoryDeleteIsSoft(t *testing.T) {
	repo, db := setupEstimateRepositoryTest(t)

	estimate := &models.Estimate{
		ID:         "est-1",
		TenantID:   constants.DefaultTenantID,
		EstimateNo: "EST-202601-001",
		Status:     constants.EstimateStatusDraft,
	}
	if err := repo.Create(estimate, nil); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(constants.DefaultTenantID, "est-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := repo.GetByID(constants.DefaultTenantID, "est-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("deleted estimate should be invisible")
	}

	var count int64
	if err := db.Unscoped().Model(&models.Estimate{}).Where("id = ?", "est-1").Count(&count).Error; err != nil {
		t.Fatalf("unscoped count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("soft-deleted row should remain, got %d", count)
	}
}

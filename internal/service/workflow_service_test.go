package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWorkflowServiceTest(t *testing.T) *WorkflowService {
	t.Helper()
	dsn := fmt.Sprintf("file:workflow_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.WorkflowSetting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	defaults := config.WorkflowConfig{
		MapCustomerInfo:  true,
		MapAmount:        true,
		MapDuration:      true,
		MapEstimateItems: true,
		RequireApproval:  true,
	}
	return NewWorkflowService(repository.NewWorkflowRepository(db), defaults)
}

func TestWorkflowGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := setupWorkflowServiceTest(t)

	setting, err := svc.Get(context.Background(), constants.DefaultTenantID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !setting.MapCustomerInfo || !setting.MapAmount || !setting.MapDuration || !setting.MapItems {
		t.Fatalf("mapping flags should default on: %+v", setting)
	}
	if setting.DefaultContractTemplate != constants.DefaultContractType {
		t.Fatalf("template want %s got %s", constants.DefaultContractType, setting.DefaultContractTemplate)
	}
	if setting.DefaultPaymentTerms != constants.DefaultPaymentTerms {
		t.Fatalf("payment terms should default, got %q", setting.DefaultPaymentTerms)
	}
}

func TestWorkflowUpdateThenGet(t *testing.T) {
	svc := setupWorkflowServiceTest(t)

	if err := svc.Update(context.Background(), &models.WorkflowSetting{}); err == nil {
		t.Fatalf("empty tenant id should be rejected")
	}

	setting := &models.WorkflowSetting{
		TenantID:            constants.DefaultTenantID,
		MapCustomerInfo:     true,
		MapAmount:           false,
		DefaultPaymentTerms: "月末締め翌々月末払い",
	}
	if err := svc.Update(context.Background(), setting); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.Get(context.Background(), constants.DefaultTenantID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.MapAmount {
		t.Fatalf("map_amount should stay off after save")
	}
	if got.DefaultPaymentTerms != "月末締め翌々月末払い" {
		t.Fatalf("payment terms not persisted: %q", got.DefaultPaymentTerms)
	}
	if got.DefaultContractTemplate != constants.DefaultContractType {
		t.Fatalf("empty template should fall back to %s", constants.DefaultContractType)
	}
}

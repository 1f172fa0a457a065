package service

import (
	"context"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/queue"
	"github.com/drm-next/internal/repository"

	"github.com/google/uuid"
)

// LedgerService 工事台账服务。实行预算与实际原价的归集都在此。
type LedgerService struct {
	ledgerRepo   repository.LedgerRepository
	contractRepo repository.ContractRepository
	orderRepo    repository.OrderRepository
	numbering    *NumberingService
}

// NewLedgerService 创建工事台账服务
func NewLedgerService(ledgerRepo repository.LedgerRepository, contractRepo repository.ContractRepository, orderRepo repository.OrderRepository, numbering *NumberingService) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		contractRepo: contractRepo,
		orderRepo:    orderRepo,
		numbering:    numbering,
	}
}

// CreateFromContract 由契约创建工事台账。同一契约只允许一份台账。
func (s *LedgerService) CreateFromContract(ctx context.Context, tenantID, contractID, createdBy string) (*models.ConstructionLedger, error) {
	if contractID == "" {
		return nil, NewValidationError("contract_id", "契约ID不能为空", 0)
	}
	contract, err := s.contractRepo.GetByID(tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}

	existing, err := s.ledgerRepo.GetByContractID(tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	now := time.Now()
	ledger := &models.ConstructionLedger{
		ID:                 uuid.NewString(),
		TenantID:           tenantID,
		ConstructionNo:     s.numbering.NextConstructionNo(ctx, tenantID, now),
		ProjectName:        contract.ProjectName,
		ConstructionType:   contract.ProjectType,
		ContractID:         contract.ID,
		ContractNo:         contract.ContractNo,
		EstimateID:         contract.EstimateID,
		CustomerName:       contract.CustomerName,
		ContractAmount:     contract.ContractAmount,
		TaxAmount:          contract.TaxAmount,
		TotalAmount:        contract.TotalAmount,
		ScheduledStartDate: contract.StartDate,
		ScheduledEndDate:   contract.EndDate,
		ScheduledDays:      contract.Duration,
		Status:             constants.LedgerStatusPlanning,
		Manager:            contract.Manager,
		CreatedBy:          createdBy,
	}

	if err := s.ledgerRepo.Create(ledger, nil); err != nil {
		return nil, err
	}
	logger.Infow("ledger_created_from_contract",
		"tenant_id", tenantID,
		"contract_id", contractID,
		"ledger_id", ledger.ID,
		"construction_no", ledger.ConstructionNo,
	)
	return s.ledgerRepo.GetByID(tenantID, ledger.ID)
}

// Get 获取台账
func (s *LedgerService) Get(tenantID, id string) (*models.ConstructionLedger, error) {
	ledger, err := s.ledgerRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, ErrNotFound
	}
	return ledger, nil
}

// List 台账列表
func (s *LedgerService) List(filter repository.LedgerListFilter) ([]models.ConstructionLedger, int64, error) {
	return s.ledgerRepo.List(filter)
}

// UpdateStatus 更新台账状态与进捗
func (s *LedgerService) UpdateStatus(tenantID, id, status string, progress int) (*models.ConstructionLedger, error) {
	ledger, err := s.ledgerRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, ErrNotFound
	}
	if status != "" {
		ledger.Status = status
	}
	if progress >= 0 && progress <= 100 {
		ledger.Progress = progress
	}
	if err := s.ledgerRepo.Update(ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// CostEntryInput 原价记录输入
type CostEntryInput struct {
	CostCategory string       `json:"cost_category"`
	WorkCategory string       `json:"work_category"`
	Description  string       `json:"description"`
	Amount       models.Money `json:"amount"`
	PartnerName  string       `json:"partner_name"`
	IncurredAt   *time.Time   `json:"incurred_at"`
}

// AddCostEntry 记录实际原价并累加到台账与预算分类
func (s *LedgerService) AddCostEntry(tenantID, ledgerID, createdBy string, input CostEntryInput) (*models.ConstructionLedger, error) {
	ledger, err := s.ledgerRepo.GetByID(tenantID, ledgerID)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, ErrNotFound
	}

	costCategory := input.CostCategory
	if costCategory == "" {
		costCategory = DetermineCostCategory(input.WorkCategory, input.Description)
	}
	incurredAt := time.Now()
	if input.IncurredAt != nil {
		incurredAt = *input.IncurredAt
	}

	entry := &models.CostEntry{
		LedgerID:     ledger.ID,
		CostCategory: costCategory,
		WorkCategory: input.WorkCategory,
		Description:  input.Description,
		Amount:       input.Amount,
		SourceType:   "manual",
		PartnerName:  input.PartnerName,
		IncurredAt:   incurredAt,
		CreatedBy:    createdBy,
	}
	if err := s.ledgerRepo.AddCostEntry(entry); err != nil {
		return nil, err
	}

	applyActual(ledger, costCategory, input.Amount)
	if err := s.ledgerRepo.Update(ledger); err != nil {
		return nil, err
	}
	if err := s.bumpCategoryActual(ledger.ID, costCategory, input.WorkCategory, input.Amount); err != nil {
		return nil, err
	}
	return s.ledgerRepo.GetByID(tenantID, ledgerID)
}

// ApplyBudgetSync 预算同步（worker 消费 ledger:budget_sync 任务时调用）。
// 实行预算不做增量累加，而是由契约下全部未取消発注书整体重算：
// asynq 至少投递一次，任务重复或中途失败重试时结果保持一致。
// 台账不存在时跳过（记日志不报错）；数据读取失败返回错误交给重试。
func (s *LedgerService) ApplyBudgetSync(payload queue.LedgerBudgetSyncPayload) error {
	order, err := s.orderRepo.GetByID(payload.TenantID, payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("budget_sync_order_missing", "tenant_id", payload.TenantID, "order_id", payload.OrderID)
		return nil
	}

	ledger, err := s.ledgerRepo.GetByContractID(payload.TenantID, order.ContractID)
	if err != nil {
		return err
	}
	if ledger == nil {
		logger.Infow("budget_sync_ledger_missing",
			"tenant_id", payload.TenantID,
			"contract_id", order.ContractID,
			"order_id", order.ID,
		)
		return nil
	}

	orders, err := s.orderRepo.ListByContract(payload.TenantID, order.ContractID)
	if err != nil {
		return err
	}

	categories := recomputeBudget(ledger, orders)
	if err := s.ledgerRepo.ReplaceBudget(ledger, categories); err != nil {
		return err
	}
	logger.Infow("budget_sync_applied",
		"tenant_id", payload.TenantID,
		"ledger_id", ledger.ID,
		"order_id", order.ID,
		"operation", payload.Operation,
	)
	return nil
}

// recomputeBudget 清零后按原价科目重新归集实行预算。
// 已有预算分类行保留实际原价、只重置预算额，缺失的行补建。
func recomputeBudget(ledger *models.ConstructionLedger, orders []models.Order) []models.BudgetCategory {
	ledger.BudgetMaterial = models.NewMoney(0)
	ledger.BudgetLabor = models.NewMoney(0)
	ledger.BudgetOutsourcing = models.NewMoney(0)
	ledger.BudgetExpense = models.NewMoney(0)
	ledger.BudgetTotal = models.NewMoney(0)

	type rowKey struct {
		costCategory string
		workCategory string
	}
	index := make(map[rowKey]int, len(ledger.Categories))
	rows := make([]models.BudgetCategory, 0, len(ledger.Categories))
	for _, category := range ledger.Categories {
		category.BudgetAmount = models.NewMoney(0)
		index[rowKey{category.CostCategory, category.WorkCategory}] = len(rows)
		rows = append(rows, category)
	}

	for _, order := range orders {
		if order.Status == constants.OrderStatusCancelled {
			continue
		}
		for _, item := range order.WorkItems {
			costCategory := DetermineCostCategory(item.Category, item.Name)
			applyBudget(ledger, costCategory, item.Amount)

			key := rowKey{costCategory, categoryKey(item.Category)}
			pos, ok := index[key]
			if !ok {
				pos = len(rows)
				index[key] = pos
				rows = append(rows, models.BudgetCategory{
					LedgerID:     ledger.ID,
					CostCategory: key.costCategory,
					WorkCategory: key.workCategory,
				})
			}
			rows[pos].BudgetAmount = rows[pos].BudgetAmount.Add(item.Amount)
		}
	}
	return rows
}

// Variance 生成预算差异报告
func (s *LedgerService) Variance(tenantID, ledgerID string) ([]VarianceRow, error) {
	ledger, err := s.ledgerRepo.GetByID(tenantID, ledgerID)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, ErrNotFound
	}
	return AnalyzeVariance(ledger.Categories), nil
}

func (s *LedgerService) bumpCategoryActual(ledgerID, costCategory, workCategory string, amount models.Money) error {
	key := categoryKey(workCategory)
	category, err := s.ledgerRepo.FindCategory(ledgerID, costCategory, key)
	if err != nil {
		return err
	}
	if category == nil {
		category = &models.BudgetCategory{
			LedgerID:     ledgerID,
			CostCategory: costCategory,
			WorkCategory: key,
		}
	}
	category.ActualAmount = category.ActualAmount.Add(amount)
	return s.ledgerRepo.SaveCategory(category)
}

func applyBudget(ledger *models.ConstructionLedger, costCategory string, amount models.Money) {
	switch costCategory {
	case constants.CostCategoryMaterial:
		ledger.BudgetMaterial = ledger.BudgetMaterial.Add(amount)
	case constants.CostCategoryLabor:
		ledger.BudgetLabor = ledger.BudgetLabor.Add(amount)
	case constants.CostCategoryExpense:
		ledger.BudgetExpense = ledger.BudgetExpense.Add(amount)
	default:
		ledger.BudgetOutsourcing = ledger.BudgetOutsourcing.Add(amount)
	}
	ledger.BudgetTotal = ledger.BudgetTotal.Add(amount)
}

func applyActual(ledger *models.ConstructionLedger, costCategory string, amount models.Money) {
	switch costCategory {
	case constants.CostCategoryMaterial:
		ledger.ActualMaterial = ledger.ActualMaterial.Add(amount)
	case constants.CostCategoryLabor:
		ledger.ActualLabor = ledger.ActualLabor.Add(amount)
	case constants.CostCategoryExpense:
		ledger.ActualExpense = ledger.ActualExpense.Add(amount)
	default:
		ledger.ActualOutsourcing = ledger.ActualOutsourcing.Add(amount)
	}
	ledger.ActualTotal = ledger.ActualTotal.Add(amount)
}

package service

import (
	"context"
	"time"

	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/queue"
	"github.com/drm-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService 発注服务。契约工事项目的分组・匹配・自动分配・拆分发行都在此。
type OrderService struct {
	orderRepo    repository.OrderRepository
	contractRepo repository.ContractRepository
	partnerRepo  repository.PartnerRepository
	queueClient  *queue.Client
	numbering    *NumberingService
	deadlineDays int
	taxRate      decimal.Decimal
}

// NewOrderService 创建発注服务
func NewOrderService(orderRepo repository.OrderRepository, contractRepo repository.ContractRepository, partnerRepo repository.PartnerRepository, queueClient *queue.Client, numbering *NumberingService, cfg config.OrderConfig) *OrderService {
	deadlineDays := cfg.DeadlineDays
	if deadlineDays <= 0 {
		deadlineDays = 7
	}
	taxRate := cfg.TaxRate
	if taxRate <= 0 {
		taxRate = 0.10
	}
	return &OrderService{
		orderRepo:    orderRepo,
		contractRepo: contractRepo,
		partnerRepo:  partnerRepo,
		queueClient:  queueClient,
		numbering:    numbering,
		deadlineDays: deadlineDays,
		taxRate:      decimal.NewFromFloat(taxRate),
	}
}

// CategoryPlan 発注计划中的一个工事分类
type CategoryPlan struct {
	Category   string           `json:"category"`
	Items      []WorkItem       `json:"items"`
	Candidates []models.Partner `json:"candidates"`
	Proposed   *models.Partner  `json:"proposed,omitempty"`
}

// OrderPlan 発注计划（分组＋候选＋自动分配提案）
type OrderPlan struct {
	ContractID string         `json:"contract_id"`
	Categories []CategoryPlan `json:"categories"`
	Items      []WorkItem     `json:"items"`
	Unassigned int            `json:"unassigned"`
}

// BuildOrderPlan 生成契约的発注计划。
// 把契约保留的见积明细按分类分组，给出每个分类的候选协力会社与自动分配提案。
func (s *OrderService) BuildOrderPlan(tenantID, contractID string) (*OrderPlan, error) {
	contract, err := s.contractRepo.GetByID(tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}
	if len(contract.Items) == 0 {
		return nil, NewValidationError("items", "契约没有可発注的工事项目", 0)
	}

	partners, err := s.partnerRepo.ListActive(tenantID)
	if err != nil {
		return nil, err
	}

	items := workItemsFromContract(contract.Items)
	assigned := AutoAssign(items, partners)

	keys, groups := GroupByCategory(assigned)
	categories := make([]CategoryPlan, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		plan := CategoryPlan{
			Category:   key,
			Items:      group,
			Candidates: MatchPartners(group[0].Category, partners),
		}
		if group[0].PartnerID != "" {
			for i := range partners {
				if partners[i].ID == group[0].PartnerID {
					plan.Proposed = &partners[i]
					break
				}
			}
		}
		categories = append(categories, plan)
	}

	return &OrderPlan{
		ContractID: contractID,
		Categories: categories,
		Items:      assigned,
		Unassigned: CountUnassigned(assigned),
	}, nil
}

// CreatedOrderRef 已创建発注书的引用
type CreatedOrderRef struct {
	OrderID     string       `json:"order_id"`
	OrderNo     string       `json:"order_no"`
	PartnerID   string       `json:"partner_id"`
	PartnerName string       `json:"partner_name"`
	TotalAmount models.Money `json:"total_amount"`
}

// SplitResult 拆分发行结果。持久化逐单执行，失败时报告已成功的部分。
type SplitResult struct {
	Created     []CreatedOrderRef `json:"created"`
	FailedIndex int               `json:"failed_index"` // 无失败时为 -1
	Error       string            `json:"error,omitempty"`
}

// SplitAndCreate 按协力会社拆分并发行発注书。
// 存在未分配项目时整体拒绝；持久化逐单进行，无跨单事务，
// 中途失败时已创建的単据保留并在结果中报告。
func (s *OrderService) SplitAndCreate(ctx context.Context, tenantID, contractID, createdBy string, items []WorkItem) (*SplitResult, error) {
	contract, err := s.contractRepo.GetByID(tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}

	drafts, err := SplitIntoOrderDrafts(normalizeWorkItems(items), s.taxRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &SplitResult{Created: make([]CreatedOrderRef, 0, len(drafts)), FailedIndex: -1}
	for i, draft := range drafts {
		order := s.buildOrder(ctx, contract, draft, createdBy, now)
		workItems := make([]models.OrderWorkItem, 0, len(draft.Items))
		for j, item := range draft.Items {
			workItems = append(workItems, models.OrderWorkItem{
				Category:  item.Category,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Unit:      item.Unit,
				UnitPrice: item.UnitPrice,
				Amount:    item.Amount,
				Notes:     item.Notes,
				SortOrder: j,
			})
		}

		if err := s.orderRepo.Create(order, workItems); err != nil {
			logger.Errorw("order_create_failed",
				"tenant_id", tenantID,
				"contract_id", contractID,
				"partner_id", draft.PartnerID,
				"index", i,
				"error", err,
			)
			result.FailedIndex = i
			result.Error = err.Error()
			return result, nil
		}

		result.Created = append(result.Created, CreatedOrderRef{
			OrderID:     order.ID,
			OrderNo:     order.OrderNo,
			PartnerID:   order.PartnerID,
			PartnerName: order.PartnerName,
			TotalAmount: order.TotalAmount,
		})

		if err := s.partnerRepo.RecordTransaction(tenantID, draft.PartnerID, order.TotalAmount, now); err != nil {
			logger.Warnw("partner_transaction_record_failed", "partner_id", draft.PartnerID, "error", err)
		}
		s.enqueueBudgetSync(tenantID, order.ID, constants.BudgetOpAdd)
	}

	logger.Infow("orders_split_created",
		"tenant_id", tenantID,
		"contract_id", contractID,
		"order_count", len(result.Created),
	)
	return result, nil
}

func (s *OrderService) buildOrder(ctx context.Context, contract *models.Contract, draft OrderDraft, createdBy string, now time.Time) *models.Order {
	partnerCompany := draft.PartnerName
	partnerName := draft.PartnerName
	if partner, err := s.partnerRepo.GetByID(contract.TenantID, draft.PartnerID); err == nil && partner != nil {
		partnerCompany = partner.Name
		if partner.RepresentativeName != "" {
			partnerName = partner.RepresentativeName
		}
	}

	order := &models.Order{
		ID:             uuid.NewString(),
		TenantID:       contract.TenantID,
		OrderNo:        s.numbering.Next(ctx, contract.TenantID, constants.NumberPrefixOrder, now),
		ContractID:     contract.ID,
		ContractNo:     contract.ContractNo,
		ProjectName:    contract.ProjectName,
		PartnerID:      draft.PartnerID,
		PartnerName:    partnerName,
		PartnerCompany: partnerCompany,
		Subtotal:       draft.Subtotal,
		TaxAmount:      draft.TaxAmount,
		TotalAmount:    draft.TotalAmount,
		OrderDate:      now,
		StartDate:      contract.StartDate,
		EndDate:        contract.EndDate,
		PaymentTerms:   contract.PaymentTerms,
		Status:         constants.OrderStatusDraft,
		Manager:        createdBy,
		CreatedBy:      createdBy,
	}
	if contract.StartDate != nil && contract.EndDate != nil {
		order.Duration = DaysUntil(*contract.EndDate, *contract.StartDate)
	}
	if contract.SignedAt != nil {
		signed := *contract.SignedAt
		deadline := ComputeOrderDeadline(signed, s.deadlineDays)
		order.ContractSignedDate = &signed
		order.OrderDeadline = &deadline
	}
	return order
}

// Get 获取発注书。期限字段每次读取时重算。
func (s *OrderService) Get(tenantID, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	s.refreshDeadline(order, time.Now())
	return order, nil
}

// List 発注书列表。期限字段每次读取时重算。
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range orders {
		s.refreshDeadline(&orders[i], now)
	}
	return orders, total, nil
}

// ListByContract 获取契约下的発注书
func (s *OrderService) ListByContract(tenantID, contractID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByContract(tenantID, contractID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range orders {
		s.refreshDeadline(&orders[i], now)
	}
	return orders, nil
}

// UpdateStatus 更新発注书状态。取消时回冲台账预算。
func (s *OrderService) UpdateStatus(tenantID, id, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status == status {
		return order, nil
	}
	if order.Status == constants.OrderStatusCancelled || order.Status == constants.OrderStatusCompleted {
		return nil, ErrConflict
	}

	updates := map[string]interface{}{}
	if status == constants.OrderStatusApproved {
		now := time.Now()
		updates["approved_at"] = now
		updates["approval_status"] = constants.ApprovalStatusApproved
	}
	if err := s.orderRepo.UpdateStatus(tenantID, id, status, updates); err != nil {
		return nil, err
	}

	if status == constants.OrderStatusCancelled {
		s.enqueueBudgetSync(tenantID, id, constants.BudgetOpSubtract)
	}

	return s.Get(tenantID, id)
}

// ScanDeadlines 扫描期限临近/超期的発注书（worker 定时调用）。
// 返回超期与临近告警的件数。
func (s *OrderService) ScanDeadlines(now time.Time, alertDays int) (int, int, error) {
	orders, err := s.orderRepo.ListPendingWithDeadline(now, alertDays)
	if err != nil {
		return 0, 0, err
	}

	overdueIDs := make([]string, 0)
	approaching := 0
	for i := range orders {
		s.refreshDeadline(&orders[i], now)
		if orders[i].DaysUntilDeadline <= 0 {
			if !orders[i].IsOverdue {
				overdueIDs = append(overdueIDs, orders[i].ID)
			}
			s.enqueueDeadlineAlert(orders[i], "overdue")
			continue
		}
		approaching++
		s.enqueueDeadlineAlert(orders[i], "approaching")
	}

	if len(overdueIDs) > 0 {
		if err := s.orderRepo.MarkOverdue(overdueIDs); err != nil {
			return 0, 0, err
		}
	}
	return len(overdueIDs), approaching, nil
}

func (s *OrderService) refreshDeadline(order *models.Order, now time.Time) {
	if order.OrderDeadline == nil {
		order.DaysUntilDeadline = 0
		return
	}
	order.DaysUntilDeadline = DaysUntil(*order.OrderDeadline, now)
	if order.DaysUntilDeadline <= 0 {
		order.IsOverdue = true
	}
}

func (s *OrderService) enqueueBudgetSync(tenantID, orderID, operation string) {
	err := s.queueClient.EnqueueLedgerBudgetSync(queue.LedgerBudgetSyncPayload{
		TenantID:  tenantID,
		OrderID:   orderID,
		Operation: operation,
	})
	if err != nil {
		logger.Warnw("ledger_budget_sync_enqueue_failed", "order_id", orderID, "operation", operation, "error", err)
	}
}

func (s *OrderService) enqueueDeadlineAlert(order models.Order, alertType string) {
	err := s.queueClient.EnqueueOrderDeadlineAlert(queue.OrderDeadlineAlertPayload{
		TenantID:  order.TenantID,
		OrderID:   order.ID,
		AlertType: alertType,
		DaysLeft:  order.DaysUntilDeadline,
	})
	if err != nil {
		logger.Warnw("order_deadline_alert_enqueue_failed", "order_id", order.ID, "error", err)
	}
}

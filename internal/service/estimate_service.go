package service

import (
	"context"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimateService 见积服务
type EstimateService struct {
	repo      repository.EstimateRepository
	numbering *NumberingService
	taxRate   decimal.Decimal
}

// NewEstimateService 创建见积服务
func NewEstimateService(repo repository.EstimateRepository, numbering *NumberingService, taxRate float64) *EstimateService {
	return &EstimateService{
		repo:      repo,
		numbering: numbering,
		taxRate:   decimal.NewFromFloat(taxRate),
	}
}

// EstimateItemInput 见积明细输入
type EstimateItemInput struct {
	Category  string       `json:"category"`
	Name      string       `json:"name" binding:"required"`
	Quantity  int          `json:"quantity"`
	Unit      string       `json:"unit"`
	UnitPrice models.Money `json:"unit_price"`
	Notes     string       `json:"notes"`
}

// CreateEstimateInput 创建见积输入
type CreateEstimateInput struct {
	ProjectName     string              `json:"project_name" binding:"required"`
	ProjectType     string              `json:"project_type"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerCompany string              `json:"customer_company"`
	CustomerAddress string              `json:"customer_address"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email"`
	Duration        int                 `json:"duration"`
	Notes           string              `json:"notes"`
	Items           []EstimateItemInput `json:"items"`
}

// Create 创建见积。明细金额恒等于数量×单价，税额按税率向下取整。
func (s *EstimateService) Create(ctx context.Context, tenantID, createdBy string, input CreateEstimateInput) (*models.Estimate, error) {
	now := time.Now()
	items, total := buildEstimateItems(input.Items)

	estimate := &models.Estimate{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		EstimateNo:      s.numbering.Next(ctx, tenantID, constants.NumberPrefixEstimate, now),
		ProjectName:     input.ProjectName,
		ProjectType:     input.ProjectType,
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		CustomerCompany: input.CustomerCompany,
		CustomerAddress: input.CustomerAddress,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		TotalAmount:     total,
		TaxAmount:       total.MulFloor(s.taxRate),
		Duration:        input.Duration,
		Status:          constants.EstimateStatusDraft,
		Notes:           input.Notes,
		CreatedBy:       createdBy,
	}

	if err := s.repo.Create(estimate, items); err != nil {
		return nil, err
	}
	return s.repo.GetByID(tenantID, estimate.ID)
}

// Get 获取见积
func (s *EstimateService) Get(tenantID, id string) (*models.Estimate, error) {
	estimate, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, ErrNotFound
	}
	return estimate, nil
}

// List 见积列表
func (s *EstimateService) List(filter repository.EstimateListFilter) ([]models.Estimate, int64, error) {
	return s.repo.List(filter)
}

// Update 更新见积（明细整体替换，金额重算）
func (s *EstimateService) Update(tenantID, id string, input CreateEstimateInput) (*models.Estimate, error) {
	estimate, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, ErrNotFound
	}
	if estimate.Status == constants.EstimateStatusConverted {
		return nil, ErrConflict
	}

	items, total := buildEstimateItems(input.Items)
	estimate.ProjectName = input.ProjectName
	estimate.ProjectType = input.ProjectType
	estimate.CustomerID = input.CustomerID
	estimate.CustomerName = input.CustomerName
	estimate.CustomerCompany = input.CustomerCompany
	estimate.CustomerAddress = input.CustomerAddress
	estimate.CustomerPhone = input.CustomerPhone
	estimate.CustomerEmail = input.CustomerEmail
	estimate.Duration = input.Duration
	estimate.Notes = input.Notes
	estimate.TotalAmount = total
	estimate.TaxAmount = total.MulFloor(s.taxRate)
	estimate.Items = nil

	if err := s.repo.Update(estimate); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceItems(estimate.ID, items); err != nil {
		return nil, err
	}
	return s.repo.GetByID(tenantID, id)
}

// UpdateStatus 更新见积状态
func (s *EstimateService) UpdateStatus(tenantID, id, status string) error {
	estimate, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if estimate == nil {
		return ErrNotFound
	}
	return s.repo.UpdateStatus(tenantID, id, status)
}

// Delete 删除见积
func (s *EstimateService) Delete(tenantID, id string) error {
	estimate, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if estimate == nil {
		return ErrNotFound
	}
	return s.repo.Delete(tenantID, id)
}

func buildEstimateItems(inputs []EstimateItemInput) ([]models.EstimateItem, models.Money) {
	items := make([]models.EstimateItem, 0, len(inputs))
	total := models.NewMoney(0)
	for i, input := range inputs {
		quantity := input.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		amount := models.NewMoneyFromDecimal(input.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
		total = total.Add(amount)
		items = append(items, models.EstimateItem{
			Category:  input.Category,
			Name:      input.Name,
			Quantity:  quantity,
			Unit:      input.Unit,
			UnitPrice: input.UnitPrice,
			Amount:    amount,
			Notes:     input.Notes,
			SortOrder: i,
		})
	}
	return items, total
}

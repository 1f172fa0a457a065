package service

import (
	"context"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"

	"github.com/google/uuid"
)

// contractTransitions 契约状态迁移表。仅允许表中列出的边。
var contractTransitions = map[string][]string{
	constants.ContractStatusDraft:           {constants.ContractStatusPendingApproval, constants.ContractStatusApproved, constants.ContractStatusCancelled},
	constants.ContractStatusPendingApproval: {constants.ContractStatusApproved, constants.ContractStatusDraft, constants.ContractStatusCancelled},
	constants.ContractStatusApproved:        {constants.ContractStatusSigned, constants.ContractStatusCancelled},
	constants.ContractStatusSigned:          {constants.ContractStatusInProgress, constants.ContractStatusCancelled},
	constants.ContractStatusInProgress:      {constants.ContractStatusCompleted, constants.ContractStatusCancelled},
}

// ContractService 契约服务
type ContractService struct {
	contractRepo    repository.ContractRepository
	estimateRepo    repository.EstimateRepository
	workflowService *WorkflowService
	numbering       *NumberingService
}

// NewContractService 创建契约服务
func NewContractService(contractRepo repository.ContractRepository, estimateRepo repository.EstimateRepository, workflowService *WorkflowService, numbering *NumberingService) *ContractService {
	return &ContractService{
		contractRepo:    contractRepo,
		estimateRepo:    estimateRepo,
		workflowService: workflowService,
		numbering:       numbering,
	}
}

// CreateFromEstimate 由见积派生契约（Field Mapper）。
// 见积 ID 缺失报校验错误，见积不存在报 ErrNotFound。派生后见积标记为已转换。
func (s *ContractService) CreateFromEstimate(ctx context.Context, tenantID, estimateID, createdBy string) (*models.Contract, error) {
	if estimateID == "" {
		return nil, NewValidationError("estimate_id", "见积ID不能为空", 0)
	}

	estimate, err := s.estimateRepo.GetByID(tenantID, estimateID)
	if err != nil {
		return nil, err
	}
	if estimate == nil {
		return nil, ErrNotFound
	}

	setting, err := s.workflowService.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contractNo := s.numbering.Next(ctx, tenantID, constants.NumberPrefixContract, now)
	contract, clauses, items := deriveContract(estimate, setting, contractNo, now)
	contract.ID = uuid.NewString()
	contract.CreatedBy = createdBy
	contract.Manager = createdBy

	if err := s.contractRepo.Create(contract, clauses, items); err != nil {
		return nil, err
	}

	if err := s.estimateRepo.UpdateStatus(tenantID, estimateID, constants.EstimateStatusConverted); err != nil {
		logger.Warnw("estimate_mark_converted_failed", "tenant_id", tenantID, "estimate_id", estimateID, "error", err)
	}

	logger.Infow("contract_derived_from_estimate",
		"tenant_id", tenantID,
		"estimate_id", estimateID,
		"contract_id", contract.ID,
		"contract_no", contract.ContractNo,
	)
	return s.contractRepo.GetByID(tenantID, contract.ID)
}

// Get 获取契约
func (s *ContractService) Get(tenantID, id string) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}
	return contract, nil
}

// List 契约列表
func (s *ContractService) List(filter repository.ContractListFilter) ([]models.Contract, int64, error) {
	return s.contractRepo.List(filter)
}

// UpdateStatus 契约状态迁移（仅允许合法边）
func (s *ContractService) UpdateStatus(tenantID, id, status string) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}
	if !transitionAllowed(contract.Status, status) {
		return nil, ErrConflict
	}

	updates := map[string]interface{}{}
	if status == constants.ContractStatusCompleted {
		now := time.Now()
		updates["completed_at"] = now
	}
	if err := s.contractRepo.UpdateStatus(tenantID, id, status, updates); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(tenantID, id)
}

// Sign 契约签订。记录签订日并迁移到 signed。
func (s *ContractService) Sign(tenantID, id string, signedAt time.Time) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}
	if !transitionAllowed(contract.Status, constants.ContractStatusSigned) {
		return nil, ErrConflict
	}
	if signedAt.IsZero() {
		signedAt = time.Now()
	}

	err = s.contractRepo.UpdateStatus(tenantID, id, constants.ContractStatusSigned, map[string]interface{}{
		"signed_at": signedAt,
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("contract_signed", "tenant_id", tenantID, "contract_id", id, "signed_at", signedAt)
	return s.contractRepo.GetByID(tenantID, id)
}

// UpdateApproval 更新审批状态
func (s *ContractService) UpdateApproval(tenantID, id, approvalStatus string) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, ErrNotFound
	}

	contract.ApprovalStatus = approvalStatus
	if approvalStatus == constants.ApprovalStatusApproved && contract.Status == constants.ContractStatusPendingApproval {
		contract.Status = constants.ContractStatusApproved
	}
	if err := s.contractRepo.Update(contract); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(tenantID, id)
}

func transitionAllowed(from, to string) bool {
	for _, next := range contractTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

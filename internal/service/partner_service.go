package service

import (
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
	"github.com/drm-next/internal/repository"

	"github.com/google/uuid"
)

// PartnerService 协力会社服务
type PartnerService struct {
	repo repository.PartnerRepository
}

// NewPartnerService 创建协力会社服务
func NewPartnerService(repo repository.PartnerRepository) *PartnerService {
	return &PartnerService{repo: repo}
}

// PartnerInput 协力会社输入
type PartnerInput struct {
	Code               string   `json:"code"`
	Name               string   `json:"name" binding:"required"`
	NameKana           string   `json:"name_kana"`
	Category           string   `json:"category"`
	Specialties        []string `json:"specialties"`
	Rating             int      `json:"rating"`
	Status             string   `json:"status"`
	RepresentativeName string   `json:"representative_name"`
	ContactPerson      string   `json:"contact_person"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	PostalCode         string   `json:"postal_code"`
	Address            string   `json:"address"`
	PaymentTerms       string   `json:"payment_terms"`
	Notes              string   `json:"notes"`
}

// Create 创建协力会社
func (s *PartnerService) Create(tenantID, createdBy string, input PartnerInput) (*models.Partner, error) {
	rating := input.Rating
	if rating < 1 || rating > 5 {
		rating = 3
	}
	status := input.Status
	if status == "" {
		status = constants.PartnerStatusActive
	}

	partner := &models.Partner{
		ID:                 uuid.NewString(),
		TenantID:           tenantID,
		Code:               input.Code,
		Name:               input.Name,
		NameKana:           input.NameKana,
		Category:           input.Category,
		Specialties:        models.StringList(input.Specialties),
		Rating:             rating,
		Status:             status,
		RepresentativeName: input.RepresentativeName,
		ContactPerson:      input.ContactPerson,
		Email:              input.Email,
		Phone:              input.Phone,
		PostalCode:         input.PostalCode,
		Address:            input.Address,
		PaymentTerms:       input.PaymentTerms,
		Notes:              input.Notes,
		CreatedBy:          createdBy,
	}
	if err := s.repo.Create(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Get 获取协力会社
func (s *PartnerService) Get(tenantID, id string) (*models.Partner, error) {
	partner, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	return partner, nil
}

// List 协力会社列表
func (s *PartnerService) List(filter repository.PartnerListFilter) ([]models.Partner, int64, error) {
	return s.repo.List(filter)
}

// Update 更新协力会社
func (s *PartnerService) Update(tenantID, id string, input PartnerInput) (*models.Partner, error) {
	partner, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}

	partner.Code = input.Code
	partner.Name = input.Name
	partner.NameKana = input.NameKana
	partner.Category = input.Category
	partner.Specialties = models.StringList(input.Specialties)
	if input.Rating >= 1 && input.Rating <= 5 {
		partner.Rating = input.Rating
	}
	if input.Status != "" {
		partner.Status = input.Status
	}
	partner.RepresentativeName = input.RepresentativeName
	partner.ContactPerson = input.ContactPerson
	partner.Email = input.Email
	partner.Phone = input.Phone
	partner.PostalCode = input.PostalCode
	partner.Address = input.Address
	partner.PaymentTerms = input.PaymentTerms
	partner.Notes = input.Notes

	if err := s.repo.Update(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Match 按工事分类返回候选协力会社
func (s *PartnerService) Match(tenantID, category string) ([]models.Partner, error) {
	partners, err := s.repo.ListActive(tenantID)
	if err != nil {
		return nil, err
	}
	return MatchPartners(category, partners), nil
}

// Delete 删除协力会社
func (s *PartnerService) Delete(tenantID, id string) error {
	partner, err := s.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if partner == nil {
		return ErrNotFound
	}
	return s.repo.Delete(tenantID, id)
}

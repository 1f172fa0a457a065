package service

import (
	"github.com/drm-next/internal/models"

	"github.com/shopspring/decimal"
)

// OrderDraft 按协力会社拆分出的発注书草案
type OrderDraft struct {
	PartnerID   string       `json:"partner_id"`
	PartnerName string       `json:"partner_name"`
	Items       []WorkItem   `json:"items"`
	Subtotal    models.Money `json:"subtotal"`
	TaxAmount   models.Money `json:"tax_amount"`
	TotalAmount models.Money `json:"total_amount"`
}

// SplitIntoOrderDrafts 把已分配协力会社的工事项目拆分为発注书草案。
// 前置条件为全部项目已分配；存在未分配项目时整体拒绝并报告件数。
// subtotal = Σ amount，tax = floor(subtotal × 税率)，total = subtotal + tax。
func SplitIntoOrderDrafts(items []WorkItem, taxRate decimal.Decimal) ([]OrderDraft, error) {
	if len(items) == 0 {
		return nil, NewValidationError("work_items", "工事项目为空", 0)
	}
	if unassigned := CountUnassigned(items); unassigned > 0 {
		return nil, NewValidationError("work_items", "存在未分配协力会社的工事项目", unassigned)
	}

	partnerIDs, groups := GroupByPartner(items)
	drafts := make([]OrderDraft, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		group := groups[partnerID]
		subtotal := models.NewMoney(0)
		for _, item := range group {
			subtotal = subtotal.Add(item.Amount)
		}
		tax := subtotal.MulFloor(taxRate)
		drafts = append(drafts, OrderDraft{
			PartnerID:   partnerID,
			PartnerName: group[0].PartnerName,
			Items:       group,
			Subtotal:    subtotal,
			TaxAmount:   tax,
			TotalAmount: subtotal.Add(tax),
		})
	}
	return drafts, nil
}

package service

import (
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"

	"github.com/shopspring/decimal"
)

// WorkItem 発注作业中的工事项目（分配协力会社前后都用此结构流转）
type WorkItem struct {
	Category    string       `json:"category"`
	Name        string       `json:"name"`
	Quantity    int          `json:"quantity"`
	Unit        string       `json:"unit"`
	UnitPrice   models.Money `json:"unit_price"`
	Amount      models.Money `json:"amount"`
	Notes       string       `json:"notes,omitempty"`
	SortOrder   int          `json:"sort_order"`
	PartnerID   string       `json:"partner_id,omitempty"`
	PartnerName string       `json:"partner_name,omitempty"`
}

// categoryKey 分组键。未填写分类的项目归入「未分類」。
func categoryKey(category string) string {
	if category == "" {
		return constants.UncategorizedKey
	}
	return category
}

// GroupByCategory 按工事分类分组。返回首次出现顺序的键列表与分组结果，不改动输入。
func GroupByCategory(items []WorkItem) ([]string, map[string][]WorkItem) {
	keys := make([]string, 0)
	groups := make(map[string][]WorkItem)
	for _, item := range items {
		key := categoryKey(item.Category)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], item)
	}
	return keys, groups
}

// GroupByPartner 按协力会社分组。未分配的项目归入空键。
func GroupByPartner(items []WorkItem) ([]string, map[string][]WorkItem) {
	keys := make([]string, 0)
	groups := make(map[string][]WorkItem)
	for _, item := range items {
		key := item.PartnerID
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], item)
	}
	return keys, groups
}

// CountUnassigned 统计未分配协力会社的项目数
func CountUnassigned(items []WorkItem) int {
	count := 0
	for _, item := range items {
		if item.PartnerID == "" {
			count++
		}
	}
	return count
}

// normalizeWorkItems 重算金额（数量×単価）。金额不单独编辑，客户端传来的值不作数。
func normalizeWorkItems(items []WorkItem) []WorkItem {
	result := make([]WorkItem, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		item.Amount = models.NewMoneyFromDecimal(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		result[i] = item
	}
	return result
}

// workItemsFromContract 把契约保留的见积明细转换为発注作业项目
func workItemsFromContract(items []models.ContractItem) []WorkItem {
	result := make([]WorkItem, 0, len(items))
	for _, item := range items {
		result = append(result, WorkItem{
			Category:  item.Category,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
			Notes:     item.Notes,
			SortOrder: item.SortOrder,
		})
	}
	return result
}

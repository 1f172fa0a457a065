package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/models"
)

// deriveContract 见积→契约的字段映射（Field Mapper）。
// 无条件设置来源见积引用、契约编号、契约日、工程信息、契约类型、draft 状态与
// 默认支付条件；其余字段按租户设置的开关各自独立复制。不负责持久化。
func deriveContract(estimate *models.Estimate, setting *models.WorkflowSetting, contractNo string, now time.Time) (*models.Contract, []models.ContractClause, []models.ContractItem) {
	contractType := setting.DefaultContractTemplate
	if contractType == "" {
		contractType = constants.DefaultContractType
	}
	paymentTerms := setting.DefaultPaymentTerms
	if paymentTerms == "" {
		paymentTerms = constants.DefaultPaymentTerms
	}

	contract := &models.Contract{
		TenantID:     estimate.TenantID,
		EstimateID:   estimate.ID,
		EstimateNo:   estimate.EstimateNo,
		ContractNo:   contractNo,
		ContractDate: now,
		ProjectName:  estimate.ProjectName,
		ProjectType:  estimate.ProjectType,
		ContractType: contractType,
		PaymentTerms: paymentTerms,
		Status:       constants.ContractStatusDraft,
	}

	if setting.MapCustomerInfo {
		contract.CustomerID = estimate.CustomerID
		contract.CustomerName = estimate.CustomerName
		contract.CustomerCompany = estimate.CustomerCompany
		contract.CustomerAddress = estimate.CustomerAddress
		contract.CustomerPhone = estimate.CustomerPhone
		contract.CustomerEmail = estimate.CustomerEmail
	}

	if setting.MapAmount {
		contract.ContractAmount = estimate.TotalAmount
		contract.TaxAmount = estimate.TaxAmount
		contract.TotalAmount = estimate.TotalAmount.Add(estimate.TaxAmount)
	}

	if setting.MapDuration {
		start := now
		end := now.AddDate(0, 0, estimate.Duration)
		contract.StartDate = &start
		contract.EndDate = &end
		contract.Duration = estimate.Duration
	}

	if setting.RequireApproval {
		contract.ApprovalStatus = constants.ApprovalStatusPending
		contract.ApprovalFlowID = setting.ApprovalFlowID
	}

	var clauses []models.ContractClause
	var items []models.ContractItem
	if setting.MapItems {
		clauses = make([]models.ContractClause, 0, len(estimate.Items))
		items = make([]models.ContractItem, 0, len(estimate.Items))
		for i, item := range estimate.Items {
			clauses = append(clauses, models.ContractClause{
				Title:     fmt.Sprintf("第%d条 %s", i+1, categoryKey(item.Category)),
				Content:   formatClauseContent(item),
				SortOrder: i,
			})
			items = append(items, models.ContractItem{
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
	}

	return contract, clauses, items
}

// formatClauseContent 条项正文（数量・单价・金额的定型句）
func formatClauseContent(item models.EstimateItem) string {
	return fmt.Sprintf("%s（%d%s、単価%s円）：%s円",
		item.Name, item.Quantity, item.Unit,
		formatYen(item.UnitPrice), formatYen(item.Amount))
}

// formatYen 整数円的千位分隔表示
func formatYen(m models.Money) string {
	s := m.String()
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

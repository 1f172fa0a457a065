package service

import (
	"strings"

	"github.com/drm-next/internal/models"
)

// MatchPartners 按工事分类筛选可承接的协力会社。
// 包含规则：专门分野为空（视为不限）、分类与专门分野互为子串（双向模糊包含）、
// 或协力会社自身的业种分类与工事分类完全一致。
func MatchPartners(category string, partners []models.Partner) []models.Partner {
	matched := make([]models.Partner, 0)
	for _, partner := range partners {
		if PartnerMatches(category, partner) {
			matched = append(matched, partner)
		}
	}
	return matched
}

// PartnerMatches 判断单个协力会社是否匹配工事分类
func PartnerMatches(category string, partner models.Partner) bool {
	if len(partner.Specialties) == 0 {
		return true
	}
	if partner.Category != "" && partner.Category == category {
		return true
	}
	for _, specialty := range partner.Specialties {
		if specialty == "" {
			continue
		}
		if strings.Contains(specialty, category) || strings.Contains(category, specialty) {
			return true
		}
	}
	return false
}

package service

import (
	"github.com/drm-next/internal/models"
)

// AutoAssign 自动分配协力会社。
// 按项目首次出现的分类顺序贪心处理：同一分类在一次分配中固定复用同一协力会社；
// 新出现的分类从匹配结果中取评价最高者（同分取先出现者）；
// 无匹配时保持未分配，不报错。返回新切片，不改动输入。
func AutoAssign(items []WorkItem, partners []models.Partner) []WorkItem {
	assigned := make([]WorkItem, len(items))
	copy(assigned, items)

	resolved := make(map[string]*models.Partner)
	for i := range assigned {
		key := categoryKey(assigned[i].Category)
		partner, seen := resolved[key]
		if !seen {
			partner = pickBestRated(assigned[i].Category, partners)
			resolved[key] = partner
		}
		if partner != nil {
			assigned[i].PartnerID = partner.ID
			assigned[i].PartnerName = partner.Name
		}
	}
	return assigned
}

func pickBestRated(category string, partners []models.Partner) *models.Partner {
	var best *models.Partner
	for i := range partners {
		if !PartnerMatches(category, partners[i]) {
			continue
		}
		if best == nil || partners[i].Rating > best.Rating {
			best = &partners[i]
		}
	}
	return best
}

package service

import (
	"strings"

	"github.com/drm-next/internal/constants"
)

// 原价科目判定关键字表。先命中者优先，均不命中时归入外注费。
var costCategoryKeywords = []struct {
	category string
	keywords []string
}{
	{constants.CostCategoryMaterial, []string{"材料", "資材", "設備", "器具", "建材"}},
	{constants.CostCategoryLabor, []string{"大工", "職人", "作業員", "労務"}},
	{constants.CostCategoryOutsourcing, []string{"工事", "施工", "基礎", "屋根", "内装", "外装", "電気", "配管", "塗装"}},
	{constants.CostCategoryExpense, []string{"運搬", "諸経費", "管理", "仮設", "廃棄"}},
}

// DetermineCostCategory 根据工事分类判定原价科目。分类未填写时退回项目名。
func DetermineCostCategory(workCategory, name string) string {
	text := workCategory
	if text == "" {
		text = name
	}
	for _, entry := range costCategoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.category
			}
		}
	}
	return constants.CostCategoryOutsourcing
}

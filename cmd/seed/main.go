package main

import (
	"fmt"

	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/constants"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}

	tenantID := constants.DefaultTenantID

	// 协力会社
	partners := []models.Partner{
		{
			Code:               "P-001",
			Name:               "山田建設株式会社",
			NameKana:           "ヤマダケンセツ",
			Category:           "基礎工事",
			Specialties:        models.StringList{"基礎工事", "外構工事"},
			Rating:             5,
			RepresentativeName: "山田太郎",
			Phone:              "03-1234-5678",
			Address:            "東京都新宿区西新宿1-1-1",
			PaymentTerms:       "月末締め翌月末払い",
		},
		{
			Code:               "P-002",
			Name:               "鈴木工務店",
			NameKana:           "スズキコウムテン",
			Category:           "大工工事",
			Specialties:        models.StringList{"大工工事", "内装工事"},
			Rating:             4,
			RepresentativeName: "鈴木一郎",
			Phone:              "03-2345-6789",
			Address:            "東京都世田谷区三軒茶屋2-2-2",
			PaymentTerms:       "月末締め翌月末払い",
		},
		{
			Code:               "P-003",
			Name:               "田中電気工業",
			NameKana:           "タナカデンキコウギョウ",
			Category:           "電気工事",
			Specialties:        models.StringList{"電気工事", "空調設備"},
			Rating:             4,
			RepresentativeName: "田中次郎",
			Phone:              "03-3456-7890",
			Address:            "東京都品川区大崎3-3-3",
			PaymentTerms:       "月末締め翌々月10日払い",
		},
		{
			Code:               "P-004",
			Name:               "佐藤設備",
			NameKana:           "サトウセツビ",
			Category:           "配管工事",
			Specialties:        models.StringList{"配管工事", "給排水設備"},
			Rating:             3,
			RepresentativeName: "佐藤三郎",
			Phone:              "03-4567-8901",
			Address:            "東京都大田区蒲田4-4-4",
			PaymentTerms:       "月末締め翌月末払い",
		},
		{
			Code:     "P-005",
			Name:     "高橋塗装",
			NameKana: "タカハシトソウ",
			Category: "塗装工事",
			// 得意分野未登録：全分類にマッチするワイルドカード扱い
			Specialties:        models.StringList{},
			Rating:             3,
			RepresentativeName: "高橋四郎",
			Phone:              "03-5678-9012",
			Address:            "東京都足立区北千住5-5-5",
			PaymentTerms:       "月末締め翌月末払い",
		},
	}
	for i := range partners {
		partners[i].ID = uuid.NewString()
		partners[i].TenantID = tenantID
		partners[i].Status = constants.PartnerStatusActive
		partners[i].CreatedBy = "seed"
		if err := models.DB.Create(&partners[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed partner %s: %v", partners[i].Name, err)
		}
	}

	// 见积（明细 3 行）
	taxRate := decimal.NewFromFloat(cfg.Order.TaxRate)
	items := []models.EstimateItem{
		{
			Category:  "基礎工事",
			Name:      "べた基礎一式",
			Quantity:  1,
			Unit:      "式",
			UnitPrice: models.NewMoney(1200000),
			Amount:    models.NewMoney(1200000),
			SortOrder: 0,
		},
		{
			Category:  "大工工事",
			Name:      "構造材加工・建方",
			Quantity:  1,
			Unit:      "式",
			UnitPrice: models.NewMoney(2800000),
			Amount:    models.NewMoney(2800000),
			SortOrder: 1,
		},
		{
			Category:  "電気工事",
			Name:      "屋内配線工事",
			Quantity:  40,
			Unit:      "箇所",
			UnitPrice: models.NewMoney(15000),
			Amount:    models.NewMoney(600000),
			SortOrder: 2,
		},
	}
	total := models.NewMoney(0)
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	estimate := models.Estimate{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		EstimateNo:      "EST-SEED-001",
		ProjectName:     "〇〇様邸新築工事",
		ProjectType:     "新築",
		CustomerName:    "山本五郎",
		CustomerAddress: "東京都杉並区荻窪6-6-6",
		CustomerPhone:   "090-1234-5678",
		TotalAmount:     total,
		TaxAmount:       total.MulFloor(taxRate),
		Duration:        90,
		Status:          constants.EstimateStatusDraft,
		CreatedBy:       "seed",
	}
	if err := models.DB.Create(&estimate).Error; err != nil {
		stdLog.Fatalf("Failed to seed estimate: %v", err)
	}
	for i := range items {
		items[i].EstimateID = estimate.ID
		if err := models.DB.Create(&items[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed estimate item: %v", err)
		}
	}

	fmt.Println("Seed completed:")
	fmt.Printf("  partners: %d\n", len(partners))
	fmt.Printf("  estimate: %s (%s)\n", estimate.EstimateNo, estimate.ProjectName)
}

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/drm-next/internal/cache"
	"github.com/drm-next/internal/logger"
)

// NumberingService 单据编号服务。
// 格式 {PREFIX}-{yyyymm}-{3位连番}，连番按租户×前缀×月份在 Redis 上单调递增；
// Redis 不可用时退化为随机 3 位数。
type NumberingService struct {
	strategy string
}

// NewNumberingService 创建编号服务
func NewNumberingService(strategy string) *NumberingService {
	return &NumberingService{strategy: strategy}
}

// Next 生成下一个单据编号
func (s *NumberingService) Next(ctx context.Context, tenantID, prefix string, now time.Time) string {
	month := now.Format("200601")
	seq := s.nextSequence(ctx, tenantID, prefix, month)
	return fmt.Sprintf("%s-%s-%03d", prefix, month, seq)
}

// NextConstructionNo 生成工事编号（K{yyyy}-{4位连番}）
func (s *NumberingService) NextConstructionNo(ctx context.Context, tenantID string, now time.Time) string {
	year := now.Format("2006")
	seq := s.nextSequence(ctx, tenantID, "K", year)
	return fmt.Sprintf("K%s-%04d", year, seq)
}

func (s *NumberingService) nextSequence(ctx context.Context, tenantID, prefix, period string) int64 {
	if s.strategy != "random" && cache.Enabled() {
		key := fmt.Sprintf("seq:%s:%s:%s", tenantID, prefix, period)
		// 序列键保留 40 天，跨月后自然过期
		n, err := cache.Incr(ctx, key, 40*24*time.Hour)
		if err == nil && n > 0 {
			return n
		}
		if err != nil {
			logger.Warnw("numbering_sequence_fallback_random", "tenant_id", tenantID, "prefix", prefix, "error", err)
		}
	}
	return randomSequence()
}

func randomSequence() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return time.Now().UnixNano()%900 + 100
	}
	return n.Int64() + 100
}

package worker

import (
	"context"
	"errors"
	"time"

	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/logger"
	"github.com/drm-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	scanInterval time.Duration
	alertDays    int
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, orderCfg config.OrderConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	scanInterval := time.Duration(orderCfg.DeadlineScanCron) * time.Second
	if scanInterval <= 0 {
		scanInterval = time.Minute
	}
	alertDays := orderCfg.DeadlineAlertDays
	if alertDays <= 0 {
		alertDays = 2
	}
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		scanInterval: scanInterval,
		alertDays:    alertDays,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.OrderService != nil {
		go s.runDeadlineScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runDeadlineScanLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.OrderService == nil {
		return
	}
	runOnce := func() {
		overdue, approaching, err := s.consumer.OrderService.ScanDeadlines(time.Now(), s.alertDays)
		if err != nil {
			logger.Warnw("worker_deadline_scan_failed", "error", err)
			return
		}
		if overdue > 0 || approaching > 0 {
			logger.Infow("worker_deadline_scan_done", "newly_overdue", overdue, "approaching", approaching)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

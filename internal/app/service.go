package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service 受 Runner 管理的长驻服务。API 与 worker 都实现此接口，
// 同一进程内以相同的生命周期启动与收敛。
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并行启动一组服务，任一退出或收到信号时整体收敛
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 按选项运行。配置了 Signals 时监听系统信号触发优雅停机。
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务并阻塞，直到 ctx 取消或任一服务退出。
// 随后在 shutdownTimeout 内依次停止其余服务。
func (r *Runner) Run(ctx context.Context, shutdownTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exited := make(chan error, len(r.services))
	for _, service := range r.services {
		go func(service Service) {
			if log != nil {
				log.Infow("service_start", "service", service.Name())
			}
			exited <- service.Start(ctx)
			if log != nil {
				log.Infow("service_exit", "service", service.Name())
			}
		}(service)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-exited:
		runErr = err
	}
	cancel()

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	for _, service := range r.services {
		if err := service.Stop(stopCtx); err != nil {
			if log != nil {
				log.Errorw("service_stop_failed", "service", service.Name(), "error", err)
			}
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

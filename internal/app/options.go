package app

import (
	"os"
	"time"

	"github.com/drm-next/internal/config"
	"github.com/drm-next/internal/logger"

	"go.uber.org/zap"
)

// 启动模式。all 在同一进程跑 API 与 worker，api / worker 各自单独跑。
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions 补齐缺省：全局日志器、10 秒停机窗口、all 模式
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}

package business

import "github.com/drm-next/internal/provider"

// Handler 业务接口处理器入口
// 见积・契约・発注・协力会社・工事台帐等日常业务 API 都挂在这里。
type Handler struct {
	*provider.Container
}

// New 创建业务处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

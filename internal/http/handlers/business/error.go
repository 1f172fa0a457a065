package business

import (
	"errors"

	handlershared "github.com/drm-next/internal/http/handlers/shared"
	"github.com/drm-next/internal/http/response"
	"github.com/drm-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// respondServiceError 把服务层共通错误映射为接口响应。
// ValidationError 带回字段与件数，便于前端定位。
func respondServiceError(c *gin.Context, err error, notFoundKey, conflictKey string) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, notFoundKey, nil)
	case errors.Is(err, service.ErrConflict):
		respondError(c, response.CodeConflict, conflictKey, nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	case errors.As(err, &validationErr):
		response.ErrorWithData(c, response.CodeBadRequest, validationErr.Message, gin.H{
			"field": validationErr.Field,
			"count": validationErr.Count,
		})
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

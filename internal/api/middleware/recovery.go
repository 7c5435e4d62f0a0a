package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issue-tracker/internal/pkg/logger"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

// RecoveryMiddleware 捕获 handler panic, 记录日志并返回统一的 500 响应
// 内部细节只进日志, 不出现在响应里
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("handler panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		utils.Error(c, pkgErrors.ErrInternal)
		c.Abort()
	})
}

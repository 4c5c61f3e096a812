package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/context"
	"github.com/yeisme/keepsake/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入请求上下文.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager != nil {
			c.Request = c.Request.WithContext(context.WithStorageManager(c.Request.Context(), manager))
		}

		c.Next()
	}
}

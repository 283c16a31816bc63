package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-role-system/internal/domain"
	"user-role-system/internal/service"
	resp "user-role-system/internal/transport/http/response"
)

const keyCaller = "caller"

// Auth 解析 Bearer token 并加载当前用户。
// token 无效 / 过期 / 用户已删 → 401；requireRole 不满足 → 403
func Auth(svc *service.AuthService, requireRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		caller, err := svc.Resolve(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.FromErr(domain.ErrUnauthorized))
			return
		}
		if requireRole != "" && caller.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(keyCaller, caller)
		c.Next()
	}
}

// Caller 取当前登录用户，仅在 Auth 之后的 handler 里可用
func Caller(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyCaller); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

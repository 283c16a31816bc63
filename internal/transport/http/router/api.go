package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-role-system/internal/core/auth"
	"user-role-system/internal/core/cache"
	"user-role-system/internal/repo"
	"user-role-system/internal/service"
	"user-role-system/internal/transport/http/handler"
	mdw "user-role-system/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：注册 / 登录 / 资料自助 + 管理操作（服务层按角色裁决）
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, c *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(), // 浏览器前端直连
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	users := repo.NewUserRepo(db)
	authSvc := service.NewAuthService(users, jwter, l)
	userSvc := service.NewUserService(users, c, l)

	ah := handler.NewAuthHandler(authSvc)
	uh := handler.NewUserHandler(userSvc)

	api := r.Group("/api/v1")
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)

	// 鉴权分组：角色裁决在 service 层（本人/admin 规则无法靠分组表达）
	authed := api.Group("", mdw.Auth(authSvc, ""))
	authed.GET("/me", ah.Me)
	authed.GET("/users", uh.List)
	authed.GET("/users/:id", uh.Get)
	authed.PUT("/users/:id", uh.Update)
	authed.PUT("/users/:id/role", uh.UpdateRole)
	authed.DELETE("/users/:id", uh.Delete)
	authed.POST("/users/:id/salary", uh.SetSalary)

	return r
}

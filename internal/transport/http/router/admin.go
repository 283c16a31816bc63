package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-role-system/internal/core/auth"
	"user-role-system/internal/core/cache"
	"user-role-system/internal/domain"
	"user-role-system/internal/repo"
	"user-role-system/internal/service"
	"user-role-system/internal/transport/http/handler"
	mdw "user-role-system/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：整组强制 admin 角色
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, c *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	authSvc := service.NewAuthService(users, jwter, l)
	userSvc := service.NewUserService(users, c, l)
	uh := handler.NewUserHandler(userSvc)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.Auth(authSvc, domain.RoleAdmin))

	admin.GET("/users", uh.Search)
	admin.GET("/users/:id", uh.Get)
	admin.PUT("/users/:id", uh.Update)
	admin.PUT("/users/:id/role", uh.UpdateRole)
	admin.DELETE("/users/:id", uh.Delete)
	admin.POST("/users/:id/salary", uh.SetSalary)

	return r
}

// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/internal/middleware"
	"github.com/haierkeys/collab-note-service/internal/routers/api_router"
	"github.com/haierkeys/collab-note-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
)

// NewRouter 创建对外 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		historyHandler := api_router.NewHistoryHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 服务端版本号接口（无需认证）
		api.GET("/version", versionHandler.ServerVersion)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.GET("/user/info", userHandler.UserInfo)

			auth.GET("/note/:noteId", noteHandler.Get)
			auth.POST("/note", noteHandler.CreateOrUpdate)
			auth.DELETE("/note/:noteId", noteHandler.Delete)
			auth.GET("/note/:noteId/revisions", noteHandler.Revisions)

			auth.GET("/history", historyHandler.List)
			auth.POST("/history", historyHandler.Replace)
			auth.POST("/history/:noteId", historyHandler.SetPinned)
			auth.DELETE("/history", historyHandler.DeleteAll)
			auth.DELETE("/history/:noteId", historyHandler.Delete)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

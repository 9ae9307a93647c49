package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Xushengqwer/go-common/core"
	commonMiddleware "github.com/Xushengqwer/go-common/middleware"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/controller"
	"github.com/Xushengqwer/blog_service/pkg/middleware"
	"github.com/Xushengqwer/blog_service/utils"
)

// Controllers 需要注册到 /api 分组下的全部控制器
type Controllers struct {
	Article *controller.ArticleController
	Comment *controller.CommentController
	Auth    *controller.AuthController
	User    *controller.UserController
	Post    *controller.PostController
}

// SetupRouter 配置 Gin 引擎、全局中间件和路由
func SetupRouter(
	logger *core.ZapLogger,
	cfg *config.BlogConfig,
	tokens *utils.TokenManager,
	ctrls Controllers,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	router := gin.New()

	// 顺序：追踪 -> panic 恢复 -> 访问日志(需要 TraceID) -> 超时
	router.Use(otelgin.Middleware(constant.ServiceName))
	router.Use(commonMiddleware.ErrorHandlingMiddleware(logger))
	router.Use(commonMiddleware.RequestLoggerMiddleware(logger.Logger()))
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(commonMiddleware.RequestTimeoutMiddleware(logger, requestTimeout))

	api := router.Group("/api")
	requireSession := middleware.RequireSession(tokens)

	ctrls.Article.RegisterRoutes(api)
	ctrls.Comment.RegisterRoutes(api, requireSession)
	ctrls.Auth.RegisterRoutes(api)
	ctrls.User.RegisterRoutes(api)
	ctrls.Post.RegisterRoutes(api, requireSession)
	logger.Info("所有控制器路由已注册到 /api 分组")

	// 访问 /swagger/index.html 查看接口文档
	swaggerURL := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	logger.Info("Gin 路由器设置完成")
	return router
}

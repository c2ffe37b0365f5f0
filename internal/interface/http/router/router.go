package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-inventory/docs" // 注册Swagger文档
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-inventory/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-inventory/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-inventory/pkg/metrics"
	"github.com/xiebiao/bookstore-inventory/pkg/response"
)

// NewRouter 创建Gin引擎并注册全部路由
//
// 中间件顺序：
// Recovery → Logger → Tracing → Metrics → RateLimit(可选)
// 被限流的请求同样会被记录日志和指标
func NewRouter(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(logger.Named("access")),
		middleware.Tracing("http"),
		middleware.Metrics(m),
	)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger文档：http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// 写操作
		api.POST("/add-new-book", bookHandler.RegisterBook)
		api.PUT("/add-book/:id/:quantityToAdd", bookHandler.Restock)
		api.PUT("/books/:id", bookHandler.UpdateBook)
		api.PUT("/sell-book/:id", bookHandler.SellBook)
		api.PUT("/sell-books", bookHandler.SellBooks)

		// 查询
		api.GET("/book/:id", bookHandler.GetBook)
		api.GET("/book-list", bookHandler.ListBooks)
		api.GET("/number-of-books/:id", bookHandler.GetStockCount)
		api.GET("/books", bookHandler.SearchBooks)
		api.GET("/number-of-books", bookHandler.CountSold)
	}

	return r
}

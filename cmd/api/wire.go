//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码（wire_gen.go）
// 3. 修改Provider后运行 `wire gen ./cmd/api` 重新生成
//
// 依赖链：
// *gin.Engine → *handler.BookHandler → *inventory.Service
// *inventory.Service → book.Repository / book.Transactor / inventory.Cache / inventory.EventPublisher
// 存储、缓存、事件发布按配置选择实现（见providers.go）

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-inventory/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-inventory/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：存储驱动、图书缓存、事件发布、指标
var infrastructureSet = wire.NewSet(
	provideStorage,
	provideRepository,
	provideTransactor,
	provideCache,
	provideEvents,
	provideMetrics,
	provideGatherer,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewCategoryTable, // 分类表（进程内只有一份）
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	inventory.NewService,
)

// interfaceSet 接口层依赖
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	router.NewRouter,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和cleanup（关闭数据库、Redis、MQ连接）
func InitializeApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}

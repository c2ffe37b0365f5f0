package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-inventory/internal/application/inventory"
	"github.com/xiebiao/bookstore-inventory/internal/domain/book"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-inventory/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-inventory/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-inventory/pkg/metrics"
	"github.com/xiebiao/bookstore-inventory/pkg/mq"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 教学说明：
// 存储、缓存、事件发布都有"按配置二选一"的逻辑，
// Wire无法根据配置值选择构造函数，所以写成自定义Provider。
// 返回的cleanup由Wire按创建的逆序串起来，main退出时统一调用。

// storage 仓储与事务管理器总是来自同一个存储驱动
type storage struct {
	repo book.Repository
	tx   book.Transactor
}

// provideStorage 按storage.driver创建存储
// mysql：GORM连接 + 行锁；memory：进程内存储（单实例、重启丢失）
func provideStorage(cfg *config.Config, categories *book.CategoryTable, logger *zap.Logger) (*storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logger.Warn("使用内存存储，数据在进程退出后丢失")
		store := memory.NewStore()
		return &storage{repo: store, tx: store}, func() {}, nil

	case config.StorageMySQL:
		db, err := mysql.NewDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return &storage{
			repo: mysql.NewBookRepository(db, categories),
			tx:   mysql.NewTxManager(db),
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("无效的存储驱动: %q", cfg.Storage.Driver)
	}
}

func provideRepository(s *storage) book.Repository { return s.repo }

func provideTransactor(s *storage) book.Transactor { return s.tx }

// provideCache 启用Redis时使用图书缓存，否则不缓存
func provideCache(cfg *config.Config, categories *book.CategoryTable, logger *zap.Logger) (inventory.Cache, func(), error) {
	if !cfg.Redis.Enabled {
		return inventory.NopCache{}, func() {}, nil
	}

	client, err := redis.NewClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { client.Close() }
	return redis.NewBookCache(client, categories, cfg.Redis.CacheTTL), cleanup, nil
}

// provideEvents 启用MQ时发布库存事件（经熔断器），否则丢弃
func provideEvents(cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (inventory.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return inventory.NopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("关闭MQ连接失败", zap.Error(err))
		}
	}
	breaker := circuitbreaker.New("mq", circuitbreaker.Config{
		Timeout:     cfg.MQ.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.MQ.BreakerFailures),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return messaging.NewEventPublisher(publisher, breaker, m), cleanup, nil
}

// provideMetrics 指标注册到默认Registry，/metrics同时导出Go运行时指标
func provideMetrics() *metrics.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

func provideGatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}

// Package metrics 基于Prometheus的指标收集
//
// 指标分两组：
//   - HTTP指标：请求数、耗时、处理中请求数（由中间件记录）
//   - 库存指标：各操作结果计数、按分类的售出册数、批量售出条目数
//
// 设计说明：
//  1. 所有指标挂在*Metrics上，通过New(reg)注册到指定Registry
//     测试中每个用例使用独立的prometheus.NewRegistry()，不会重复注册
//  2. *Metrics为nil时所有记录方法为空操作，服务层不需要判空
//  3. 标签只使用有限取值（操作名、结果、分类名），不使用图书ID
//
// 常见指标命名规范：
//   - Counter以_total结尾
//   - Histogram以单位结尾（_seconds）
//   - Gauge使用现在时态
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 操作结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics 进程内全部指标
type Metrics struct {
	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// InventoryOperationsTotal 库存操作总数
	// 标签：operation（register/restock/update/sell/sell_batch）、result（success/failure）
	InventoryOperationsTotal *prometheus.CounterVec

	// InventoryOperationDuration 库存写操作耗时
	InventoryOperationDuration *prometheus.HistogramVec

	// BooksSoldTotal 累计售出册数
	// 标签：category（分类名）
	BooksSoldTotal *prometheus.CounterVec

	// BatchEntriesTotal 批量售出条目数
	// 标签：result（success/failure）
	BatchEntriesTotal *prometheus.CounterVec

	// CacheRequestsTotal 图书缓存访问
	// 标签：result（hit/miss）
	CacheRequestsTotal *prometheus.CounterVec

	// MessagesPublishedTotal 库存事件发布总数
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
}

// New 创建并注册全部指标
//
// 生产环境传入prometheus.DefaultRegisterer，/metrics使用promhttp.Handler()暴露
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInProgress: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		),
		InventoryOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_operations_total",
				Help: "库存操作总数",
			},
			[]string{"operation", "result"},
		),
		InventoryOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "inventory_operation_duration_seconds",
				Help: "库存写操作耗时（秒）",
				// 写操作包含一次行锁等待，桶比HTTP更细
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
		BooksSoldTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "books_sold_total",
				Help: "累计售出册数",
			},
			[]string{"category"},
		),
		BatchEntriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sell_batch_entries_total",
				Help: "批量售出条目数",
			},
			[]string{"result"},
		),
		CacheRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "book_cache_requests_total",
				Help: "图书缓存访问次数",
			},
			[]string{"result"},
		),
		MessagesPublishedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key"},
		),
	}
}

// ObserveHTTP 记录一次HTTP请求
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RequestStarted 处理中请求数+1，返回的函数用于-1
func (m *Metrics) RequestStarted() func() {
	if m == nil {
		return func() {}
	}
	m.HTTPRequestsInProgress.Inc()
	return m.HTTPRequestsInProgress.Dec
}

// ObserveOperation 记录一次库存操作的结果与耗时
func (m *Metrics) ObserveOperation(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.InventoryOperationsTotal.WithLabelValues(operation, resultOf(err)).Inc()
	m.InventoryOperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// AddSold 累加某分类的售出册数
func (m *Metrics) AddSold(category string, quantity int) {
	if m == nil || quantity <= 0 {
		return
	}
	m.BooksSoldTotal.WithLabelValues(category).Add(float64(quantity))
}

// ObserveBatchEntry 记录批量售出中单个条目的结果
func (m *Metrics) ObserveBatchEntry(err error) {
	if m == nil {
		return
	}
	m.BatchEntriesTotal.WithLabelValues(resultOf(err)).Inc()
}

// ObserveCache 记录一次缓存命中或未命中
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequestsTotal.WithLabelValues(result).Inc()
}

// ObservePublish 记录一次事件发布
func (m *Metrics) ObservePublish(exchange, routingKey string) {
	if m == nil {
		return
	}
	m.MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

func resultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

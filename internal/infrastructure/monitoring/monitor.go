package monitoring

import (
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Metrics 指标收集器
type Metrics struct {
	// HTTP 请求计数
	RequestsTotal   uint64
	RequestsSuccess uint64
	RequestsFailed  uint64

	// 仓储操作计数
	DBOpsTotal  uint64
	DBOpsFailed uint64

	// 训练服务注册计数
	TrainerRegistrations uint64
	TrainerFailures      uint64

	// 延迟 (纳秒)
	RequestLatencySum   uint64
	RequestLatencyCount uint64

	// 错误
	ErrorsTotal uint64

	// 启动时间
	StartTime time.Time
}

// Monitor 性能监控器
type Monitor struct {
	metrics *Metrics
	logger  *zap.Logger
}

// NewMonitor 创建监控器
func NewMonitor(logger *zap.Logger) *Monitor {
	return &Monitor{
		metrics: &Metrics{
			StartTime: time.Now(),
		},
		logger: logger,
	}
}

// 计数方法
func (m *Monitor) IncRequestTotal()    { atomic.AddUint64(&m.metrics.RequestsTotal, 1) }
func (m *Monitor) IncRequestSuccess()  { atomic.AddUint64(&m.metrics.RequestsSuccess, 1) }
func (m *Monitor) IncRequestFailed()   { atomic.AddUint64(&m.metrics.RequestsFailed, 1) }
func (m *Monitor) IncDBOp()            { atomic.AddUint64(&m.metrics.DBOpsTotal, 1) }
func (m *Monitor) IncDBOpFailed()      { atomic.AddUint64(&m.metrics.DBOpsFailed, 1) }
func (m *Monitor) IncTrainerRegister() { atomic.AddUint64(&m.metrics.TrainerRegistrations, 1) }
func (m *Monitor) IncTrainerFailure()  { atomic.AddUint64(&m.metrics.TrainerFailures, 1) }
func (m *Monitor) IncError()           { atomic.AddUint64(&m.metrics.ErrorsTotal, 1) }

func (m *Monitor) RecordRequestLatency(d time.Duration) {
	atomic.AddUint64(&m.metrics.RequestLatencySum, uint64(d.Nanoseconds()))
	atomic.AddUint64(&m.metrics.RequestLatencyCount, 1)
}

// GetStats 获取当前统计
func (m *Monitor) GetStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	uptime := time.Since(m.metrics.StartTime)
	reqTotal := atomic.LoadUint64(&m.metrics.RequestsTotal)

	avgLatency := float64(0)
	if count := atomic.LoadUint64(&m.metrics.RequestLatencyCount); count > 0 {
		avgLatency = float64(atomic.LoadUint64(&m.metrics.RequestLatencySum)) / float64(count) / 1e6 // ms
	}

	return map[string]interface{}{
		"uptime_seconds":        uptime.Seconds(),
		"requests_total":        reqTotal,
		"requests_success":      atomic.LoadUint64(&m.metrics.RequestsSuccess),
		"requests_failed":       atomic.LoadUint64(&m.metrics.RequestsFailed),
		"db_ops_total":          atomic.LoadUint64(&m.metrics.DBOpsTotal),
		"db_ops_failed":         atomic.LoadUint64(&m.metrics.DBOpsFailed),
		"trainer_registrations": atomic.LoadUint64(&m.metrics.TrainerRegistrations),
		"trainer_failures":      atomic.LoadUint64(&m.metrics.TrainerFailures),
		"errors_total":          atomic.LoadUint64(&m.metrics.ErrorsTotal),
		"avg_latency_ms":        avgLatency,
		"memory_mb":             float64(memStats.Alloc) / 1024 / 1024,
		"goroutines":            runtime.NumGoroutine(),
		"rps":                   float64(reqTotal) / uptime.Seconds(),
	}
}

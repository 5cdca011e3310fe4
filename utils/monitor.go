package utils

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// ToolMetrics aggregates timings for one pipeline operation.
type ToolMetrics struct {
	Calls     int64   `json:"calls"`
	TotalMs   float64 `json:"totalMs"`
	AverageMs float64 `json:"averageMs"`
	SlowCalls int64   `json:"slowCalls"`
	Failures  int64   `json:"failures"`
}

// MonitorSnapshot is a point-in-time copy of the monitor's counters.
type MonitorSnapshot struct {
	TotalRequests     int64                  `json:"totalRequests"`
	AverageResponseMs float64                `json:"averageResponseMs"`
	SlowRequests      int64                  `json:"slowRequests"`
	Tools             map[string]ToolMetrics `json:"tools"`
}

// VoiceMonitor tracks per-operation latency against a voice-appropriate
// slowness threshold and periodically reports via the logger. A spoken
// interface goes dead air past ~100ms, so slow operations are worth a warn
// even when they succeed.
type VoiceMonitor struct {
	mu            sync.Mutex
	total         int64
	totalMs       float64
	slow          int64
	tools         map[string]*ToolMetrics
	slowThreshold time.Duration
	log           *zap.Logger
	stopCh        chan struct{}
}

// NewVoiceMonitor creates a monitor and starts its periodic report loop.
func NewVoiceMonitor(slowThreshold time.Duration, reportInterval time.Duration, log *zap.Logger) *VoiceMonitor {
	m := &VoiceMonitor{
		tools:         make(map[string]*ToolMetrics),
		slowThreshold: slowThreshold,
		log:           log,
		stopCh:        make(chan struct{}),
	}
	if reportInterval > 0 {
		go m.reportLoop(reportInterval)
	}
	return m
}

// Observe records one completed operation.
func (m *VoiceMonitor) Observe(tool string, elapsed time.Duration, success bool) {
	ms := float64(elapsed) / float64(time.Millisecond)
	slow := elapsed > m.slowThreshold

	m.mu.Lock()
	m.total++
	m.totalMs += ms
	if slow {
		m.slow++
	}
	tm, ok := m.tools[tool]
	if !ok {
		tm = &ToolMetrics{}
		m.tools[tool] = tm
	}
	tm.Calls++
	tm.TotalMs += ms
	tm.AverageMs = tm.TotalMs / float64(tm.Calls)
	if slow {
		tm.SlowCalls++
	}
	if !success {
		tm.Failures++
	}
	m.mu.Unlock()

	if slow {
		m.log.Warn("slow voice response",
			zap.String("tool", tool),
			zap.Float64("responseTimeMs", ms),
			zap.Duration("threshold", m.slowThreshold),
		)
	}
}

// Snapshot copies the current counters.
func (m *VoiceMonitor) Snapshot() MonitorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MonitorSnapshot{
		TotalRequests: m.total,
		SlowRequests:  m.slow,
		Tools:         make(map[string]ToolMetrics, len(m.tools)),
	}
	if m.total > 0 {
		snap.AverageResponseMs = m.totalMs / float64(m.total)
	}
	for name, tm := range m.tools {
		snap.Tools[name] = *tm
	}
	return snap
}

// Stop terminates the report loop.
func (m *VoiceMonitor) Stop() {
	close(m.stopCh)
}

func (m *VoiceMonitor) reportLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := m.Snapshot()
			if snap.TotalRequests == 0 {
				continue
			}
			m.log.Info("voice performance metrics",
				zap.Int64("totalRequests", snap.TotalRequests),
				zap.Float64("averageResponseMs", snap.AverageResponseMs),
				zap.Int64("slowRequests", snap.SlowRequests),
			)
		case <-m.stopCh:
			return
		}
	}
}

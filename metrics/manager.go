package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "locsync"

// Manager keeps its collectors in a private registry so that a run can be
// dumped to a node exporter textfile without the default Go collectors.
type Manager struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	stageLatency  *prometheus.HistogramVec
	lastRunStatus prometheus.Gauge
	lastRunTime   prometheus.Gauge
}

func NewManager() *Manager {
	m := &Manager{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Sync runs by result",
		}, []string{"result"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Stage failures by stage and kind",
		}, []string{"stage", "kind"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		lastRunStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last sync run succeeded, 0 otherwise",
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last sync run finished",
		}),
	}

	m.registry.MustRegister(m.runs, m.failures, m.stageLatency, m.lastRunStatus, m.lastRunTime)
	return m
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) LastRunStatus() prometheus.Gauge {
	return m.lastRunStatus
}

func (m *Manager) ObserveStage(stage string, start time.Time) {
	m.stageLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Manager) Fail(stage string, kind string) {
	m.failures.WithLabelValues(stage, kind).Inc()
}

func (m *Manager) Result(success bool) {
	result := "failure"
	status := 0.0
	if success {
		result = "success"
		status = 1
	}
	m.runs.WithLabelValues(result).Inc()
	m.lastRunStatus.Set(status)
	m.lastRunTime.SetToCurrentTime()
}

// Save writes every collected metric to path in the prometheus text format.
func (m *Manager) Save(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

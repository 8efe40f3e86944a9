package api

import (
	"time"

	log "github.com/sirupsen/logrus"
)

type actionMetrics struct {
	logger           *log.Logger
	action           string
	start            time.Time
	upstreamDuration time.Duration
	tasksCached      int
	errorStage       string
}

func newActionMetrics(logger *log.Logger, action string) *actionMetrics {
	return &actionMetrics{
		logger: logger,
		action: action,
		start:  time.Now(),
	}
}

func (m *actionMetrics) ObserveUpstream(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.upstreamDuration += duration
}

func (m *actionMetrics) SetTasksCached(count int) {
	if count < 0 {
		count = 0
	}
	m.tasksCached = count
}

func (m *actionMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *actionMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	fields := log.Fields{
		"action":       m.action,
		"status":       status,
		"total_ms":     durationToMillis(time.Since(m.start)),
		"tasks_cached": m.tasksCached,
	}
	if m.upstreamDuration > 0 {
		fields["upstream_ms"] = durationToMillis(m.upstreamDuration)
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}

	m.logger.WithFields(fields).Info("ui.action.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

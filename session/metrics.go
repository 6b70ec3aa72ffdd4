package session

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName       = "boardcore/session"
	dispatchSpanName = "board.dispatch"
)

// dispatchMetrics accumulates per-dispatch observability: timing for the
// reduce and automation stages, rule counts and the change/save outcome.
// One span and one structured log line per dispatch.
type dispatchMetrics struct {
	logger             *log.Logger
	span               trace.Span
	start              time.Time
	action             string
	reduceDuration     time.Duration
	automationDuration time.Duration
	rulesEvaluated     int
	actionsFired       int
	changed            bool
	saveScheduled      bool
	errorStage         string
}

func newDispatchMetrics(ctx context.Context, logger *log.Logger, action string) (*dispatchMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, dispatchSpanName,
		trace.WithAttributes(attribute.String("board.action", action)))
	return &dispatchMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
		action: action,
	}, spanCtx
}

func (m *dispatchMetrics) ObserveReduce(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.reduceDuration = duration
}

func (m *dispatchMetrics) ObserveAutomation(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.automationDuration = duration
}

func (m *dispatchMetrics) AddRulesEvaluated(count int) {
	if count > 0 {
		m.rulesEvaluated += count
	}
}

func (m *dispatchMetrics) AddActionsFired(count int) {
	if count > 0 {
		m.actionsFired += count
	}
}

func (m *dispatchMetrics) SetChanged(changed bool) {
	m.changed = changed
}

func (m *dispatchMetrics) SetSaveScheduled(scheduled bool) {
	m.saveScheduled = scheduled
}

func (m *dispatchMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *dispatchMetrics) Log(err error) {
	if m == nil {
		return
	}
	total := time.Since(m.start)

	if m.span != nil {
		m.span.SetAttributes(
			attribute.Bool("board.changed", m.changed),
			attribute.Bool("board.save_scheduled", m.saveScheduled),
			attribute.Int("board.rules_evaluated", m.rulesEvaluated),
			attribute.Int("board.actions_fired", m.actionsFired),
			attribute.Float64("board.total_ms", durationToMillis(total)),
		)
		if m.errorStage != "" {
			m.span.SetAttributes(attribute.String("board.error_stage", m.errorStage))
		}
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}
	fields := log.Fields{
		"action":         m.action,
		"changed":        m.changed,
		"save_scheduled": m.saveScheduled,
		"total_ms":       durationToMillis(total),
	}
	if m.reduceDuration > 0 {
		fields["reduce_ms"] = durationToMillis(m.reduceDuration)
	}
	if m.automationDuration > 0 {
		fields["automation_ms"] = durationToMillis(m.automationDuration)
	}
	if m.rulesEvaluated > 0 {
		fields["rules_evaluated"] = m.rulesEvaluated
	}
	if m.actionsFired > 0 {
		fields["actions_fired"] = m.actionsFired
	}
	if m.errorStage != "" {
		fields["error_stage"] = m.errorStage
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.logger.WithFields(fields).Debug("board.dispatch.metrics")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

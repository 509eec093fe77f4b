package service

import (
	"context"
	"time"

	"github.com/alexanderramin/dasha/internal/logger"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	log *logger.Logger
}

// NewLogUseCaseObserver reports use-case events through l.
func NewLogUseCaseObserver(l *logger.Logger) UseCaseObserver {
	if l == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{log: l}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	kv := make([]any, 0, 8+len(event.Fields)*2)
	kv = append(kv,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	if event.Err != nil {
		kv = append(kv, "error", event.Err.Error())
		o.log.Error("service_use_case", kv...)
		return
	}
	o.log.Info("service_use_case", kv...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe reports one use case when the returned func runs. Callers defer it
// with a pointer to their named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any, errp *error) func() {
	startedAt := time.Now()
	return func() {
		err := *errp
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}

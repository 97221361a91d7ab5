package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/repository"
)

// Outcome classifies how a use case ended. Rejected covers failures the
// user caused and can fix (bad input, wrong role, stale state); Failed is
// everything else.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeFailed   Outcome = "failed"
)

// UseCaseEvent is one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   Outcome
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs use cases as text records to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

// ObserveUseCase writes one service_use_case record: INFO when the call
// succeeded, WARN when it was rejected, ERROR when it failed.
func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]slog.Attr, 0, 4+len(event.Fields))
	attrs = append(attrs,
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.String("outcome", string(event.Outcome)),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	level := slog.LevelInfo
	switch event.Outcome {
	case OutcomeRejected:
		level = slog.LevelWarn
	case OutcomeFailed:
		level = slog.LevelError
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, form.ErrValidationFailed),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrConflict):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// startUseCase returns the completion hook for one use case. Callers
// defer it with their named error result.
func startUseCase(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err error) {
	startedAt := time.Now().UTC()
	return func(err error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Outcome:   classify(err),
			Err:       err,
			Fields:    fields,
		})
	}
}

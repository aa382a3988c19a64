package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/yaranai/yaranai/internal/domain"
)

// Use case names reported in UseCaseEvent.UseCase.
const (
	UseCaseListItems  = "items.list"
	UseCaseAddItem    = "items.add"
	UseCaseUpdateItem = "items.update"
	UseCaseDeleteItem = "items.delete"
	UseCaseSetIncome  = "income.set"
)

// UseCaseEvent describes one completed item or income use case. Fields
// that do not apply to the use case stay zero.
type UseCaseEvent struct {
	UseCase    string
	ItemID     int64
	IncomeType domain.IncomeType
	// ItemCount is the number of items a list call returned.
	ItemCount int
	Duration  time.Duration
	Err       error
}

func (e UseCaseEvent) Failed() bool { return e.Err != nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs one line per use case to w. A nil w gives a
// no-op observer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.UseCase),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	switch event.UseCase {
	case UseCaseListItems:
		if !event.Failed() {
			attrs = append(attrs, slog.Int("items", event.ItemCount))
		}
	case UseCaseUpdateItem, UseCaseDeleteItem:
		attrs = append(attrs, slog.Int64("item_id", event.ItemID))
	case UseCaseSetIncome:
		attrs = append(attrs, slog.String("income_type", string(event.IncomeType)))
	}

	if event.Failed() {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		o.logger.LogAttrs(ctx, slog.LevelError, "use case failed", attrs...)
		return
	}
	o.logger.LogAttrs(ctx, slog.LevelInfo, "use case done", attrs...)
}

// observe runs fn, then reports event with its duration and error filled
// in. fn may set result fields such as ItemCount.
func observe(ctx context.Context, obs UseCaseObserver, event UseCaseEvent, fn func(*UseCaseEvent) error) error {
	start := time.Now()
	event.Err = fn(&event)
	event.Duration = time.Since(start)
	obs.ObserveUseCase(ctx, event)
	return event.Err
}

package service

import (
	"context"
	"sync"
	"testing"

	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/fakeapi"
)

// recordingObserver captures use-case events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) Events() []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]UseCaseEvent(nil), o.events...)
}

func newTestServices(t *testing.T) (*fakeapi.Server, ItemService, IncomeService, *recordingObserver) {
	t.Helper()
	srv := fakeapi.New()
	client := api.NewClient(fakeapi.Start(t, srv))
	obs := &recordingObserver{}
	return srv, NewItemService(client, obs), NewIncomeService(client, obs), obs
}

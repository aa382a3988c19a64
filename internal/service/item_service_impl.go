package service

import (
	"context"

	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/domain"
)

type itemService struct {
	client   api.Client
	observer UseCaseObserver
}

// NewItemService creates an ItemService backed by the API client.
func NewItemService(client api.Client, observers ...UseCaseObserver) ItemService {
	return &itemService{client: client, observer: firstObserver(observers)}
}

func (s *itemService) List(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	err := observe(ctx, s.observer, UseCaseEvent{UseCase: UseCaseListItems}, func(ev *UseCaseEvent) error {
		var err error
		items, err = s.client.ListItems(ctx)
		ev.ItemCount = len(items)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *itemService) Add(ctx context.Context, title, description string) error {
	p, err := domain.NewItemPayload(title, description)
	if err != nil {
		return err
	}
	return observe(ctx, s.observer, UseCaseEvent{UseCase: UseCaseAddItem}, func(*UseCaseEvent) error {
		return s.client.CreateItem(ctx, p)
	})
}

func (s *itemService) Update(ctx context.Context, id int64, p domain.ItemPayload) (domain.Item, error) {
	var item domain.Item
	err := observe(ctx, s.observer, UseCaseEvent{UseCase: UseCaseUpdateItem, ItemID: id}, func(*UseCaseEvent) error {
		var err error
		item, err = s.client.UpdateItem(ctx, id, p)
		return err
	})
	return item, err
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	return observe(ctx, s.observer, UseCaseEvent{UseCase: UseCaseDeleteItem, ItemID: id}, func(*UseCaseEvent) error {
		return s.client.DeleteItem(ctx, id)
	})
}

func firstObserver(observers []UseCaseObserver) UseCaseObserver {
	for _, o := range observers {
		if o != nil {
			return o
		}
	}
	return NoopUseCaseObserver{}
}

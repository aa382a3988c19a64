package service

import (
	"context"

	"github.com/yaranai/yaranai/internal/domain"
)

// ItemService covers the item flows of the main screen.
type ItemService interface {
	// List returns items in server order.
	List(ctx context.Context) ([]domain.Item, error)

	// Add creates an item. A blank title returns domain.ErrEmptyTitle
	// without contacting the server.
	Add(ctx context.Context, title, description string) error

	// Update sends the full payload and returns the server representation.
	Update(ctx context.Context, id int64, p domain.ItemPayload) (domain.Item, error)

	// Delete removes an item.
	Delete(ctx context.Context, id int64) error
}

// IncomeService submits income settings.
type IncomeService interface {
	// SetIncome validates rawAmount locally and returns the derived
	// hourly rate. Invalid amounts return domain.ErrInvalidAmount without
	// contacting the server.
	SetIncome(ctx context.Context, incomeType domain.IncomeType, rawAmount string) (float64, error)
}

package testutil

import (
	"sync/atomic"

	"github.com/yaranai/yaranai/internal/domain"
)

var testItemIDCounter atomic.Int64

// Item options
type ItemOption func(*domain.Item)

func WithItemID(id int64) ItemOption {
	return func(it *domain.Item) {
		it.ID = id
	}
}

func WithDescription(d string) ItemOption {
	return func(it *domain.Item) {
		it.Description = &d
	}
}

func WithHoursPerDay(h float64) ItemOption {
	return func(it *domain.Item) {
		it.HoursPerDay = &h
	}
}

// NewTestItem returns an item with a fresh positive ID unless WithItemID is given.
func NewTestItem(title string, opts ...ItemOption) domain.Item {
	it := domain.Item{
		ID:    testItemIDCounter.Add(1),
		Title: title,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

func StringPtr(s string) *string { return &s }

func FloatPtr(f float64) *float64 { return &f }

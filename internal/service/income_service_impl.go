package service

import (
	"context"
	"fmt"

	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/domain"
)

type incomeService struct {
	client   api.Client
	observer UseCaseObserver
}

// NewIncomeService creates an IncomeService backed by the API client.
func NewIncomeService(client api.Client, observers ...UseCaseObserver) IncomeService {
	return &incomeService{client: client, observer: firstObserver(observers)}
}

func (s *incomeService) SetIncome(ctx context.Context, incomeType domain.IncomeType, rawAmount string) (float64, error) {
	if !incomeType.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidIncomeType, incomeType)
	}
	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return 0, err
	}

	var rate float64
	event := UseCaseEvent{UseCase: UseCaseSetIncome, IncomeType: incomeType}
	err = observe(ctx, s.observer, event, func(*UseCaseEvent) error {
		res, err := s.client.SetIncome(ctx, domain.IncomeSetting{IncomeType: incomeType, Amount: amount})
		if err != nil {
			return err
		}
		rate = res.HourlyRate
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rate, nil
}

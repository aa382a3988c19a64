package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yaranai/yaranai/internal/api"
	"github.com/yaranai/yaranai/internal/domain"
)

func TestIncomeService_RejectsInvalidAmountLocally(t *testing.T) {
	srv, _, income, _ := newTestServices(t)

	for _, raw := range []string{"-5", "abc", "", "  "} {
		_, err := income.SetIncome(context.Background(), domain.IncomeHourly, raw)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount=%q", raw)
	}

	assert.Empty(t, srv.Calls())
}

func TestIncomeService_RejectsUnknownType(t *testing.T) {
	srv, _, income, _ := newTestServices(t)

	_, err := income.SetIncome(context.Background(), domain.IncomeType("weekly"), "100")

	assert.ErrorIs(t, err, domain.ErrInvalidIncomeType)
	assert.Empty(t, srv.Calls())
}

func TestIncomeService_SendsSanitizedAmount(t *testing.T) {
	srv, _, income, _ := newTestServices(t)
	srv.SetRate(func(s domain.IncomeSetting) float64 { return 1234.9 })

	raw := domain.SanitizeAmount("5,000.50")
	require.Equal(t, "5000.50", raw)

	rate, err := income.SetIncome(context.Background(), domain.IncomeHourly, raw)

	require.NoError(t, err)
	assert.InDelta(t, 1234.9, rate, 1e-9)
	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"income_type":"hourly","amount":5000.5}`, string(calls[0].Body))
}

func TestIncomeService_ServerFailure(t *testing.T) {
	srv, _, income, obs := newTestServices(t)
	srv.Fail(http.MethodPost, "/income-settings", http.StatusInternalServerError)

	_, err := income.SetIncome(context.Background(), domain.IncomeAnnual, "5000000")

	assert.ErrorIs(t, err, api.ErrRequestFailed)
	events := obs.Events()
	require.Len(t, events, 1)
	assert.Equal(t, UseCaseSetIncome, events[0].UseCase)
	assert.Equal(t, domain.IncomeAnnual, events[0].IncomeType)
	assert.True(t, events[0].Failed())
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{UseCase: UseCaseDeleteItem, ItemID: 7, Err: errors.New("boom")})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{UseCase: UseCaseListItems, ItemCount: 2})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{UseCase: UseCaseSetIncome, IncomeType: domain.IncomeMonthly})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "level=ERROR")
	assert.Contains(t, lines[0], `msg="use case failed"`)
	assert.Contains(t, lines[0], "use_case=items.delete")
	assert.Contains(t, lines[0], "item_id=7")
	assert.Contains(t, lines[0], "error=boom")
	assert.Contains(t, lines[1], "items=2")
	assert.NotContains(t, lines[1], "item_id")
	assert.Contains(t, lines[2], "income_type=monthly")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

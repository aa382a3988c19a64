package cli

import "github.com/yaranai/yaranai/internal/domain"

// itemsLoadedMsg carries the result of a list fetch.
type itemsLoadedMsg struct {
	items []domain.Item
	err   error
}

// itemAddedMsg reports the outcome of a create call.
type itemAddedMsg struct{ err error }

// itemDeletedMsg reports the outcome of a delete call for id.
type itemDeletedMsg struct {
	id  int64
	err error
}

// rowIdleMsg fires after a row's debounce window. Stale seqs are ignored.
type rowIdleMsg struct {
	id  int64
	seq int
}

// rowSaveMsg asks the screen to persist a row's edit.
type rowSaveMsg struct {
	id      int64
	payload domain.ItemPayload
}

// itemUpdatedMsg carries the server representation after an update.
type itemUpdatedMsg struct {
	id   int64
	item domain.Item
	err  error
}

// incomeSubmitMsg asks the screen to persist the modal's income setting.
type incomeSubmitMsg struct {
	incomeType domain.IncomeType
	amount     string
}

// incomeSavedMsg carries the derived hourly rate for a submitted setting.
type incomeSavedMsg struct {
	incomeType domain.IncomeType
	amount     string
	rate       float64
	err        error
}

package domain

import "strings"

// EditOutcome describes what committing an inline edit should do.
type EditOutcome int

const (
	// EditRevert discards the working copy (blank title).
	EditRevert EditOutcome = iota
	// EditUnchanged leaves edit mode without a request.
	EditUnchanged
	// EditSave sends Payload to the server.
	EditSave
)

// EditDecision is the result of DecideEdit.
type EditDecision struct {
	Outcome EditOutcome
	Payload ItemPayload
}

// DecideEdit compares working copies of title and description against the
// item as last known from the server.
func DecideEdit(item Item, title, description string) EditDecision {
	t := strings.TrimSpace(title)
	if t == "" {
		return EditDecision{Outcome: EditRevert}
	}
	desc := NormalizeDescription(description)
	if t == strings.TrimSpace(item.Title) && equalOptional(desc, NormalizeDescription(item.DescriptionText())) {
		return EditDecision{Outcome: EditUnchanged}
	}
	return EditDecision{
		Outcome: EditSave,
		Payload: ItemPayload{Title: t, Description: desc},
	}
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package domain

import (
	"errors"
	"math"
	"strings"
)

// ErrEmptyTitle is returned when an item title is blank after trimming.
var ErrEmptyTitle = errors.New("title is required")

// Item is a single "thing I will not do today".
// IDs are assigned by the server; HoursPerDay is a server-side estimate.
type Item struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	HoursPerDay *float64 `json:"hours_per_day,omitempty"`
}

// ItemPayload is the body sent when creating or updating an item.
// Description is sent as JSON null when blank.
type ItemPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// DescriptionText returns the description or "" when absent.
func (i *Item) DescriptionText() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}

// RoundedHours returns hours per day rounded to one decimal place.
// ok is false when the server has not estimated the item yet.
func (i *Item) RoundedHours() (hours float64, ok bool) {
	if i.HoursPerDay == nil {
		return 0, false
	}
	r := math.Round(*i.HoursPerDay*10) / 10
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// ValidateTitle trims s and rejects it when nothing remains.
func ValidateTitle(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}

// NormalizeDescription trims s; blank descriptions become nil.
func NormalizeDescription(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// NewItemPayload validates the title and normalizes the description.
func NewItemPayload(title, description string) (ItemPayload, error) {
	t, err := ValidateTitle(title)
	if err != nil {
		return ItemPayload{}, err
	}
	return ItemPayload{Title: t, Description: NormalizeDescription(description)}, nil
}

// RemoveItem returns items without the entry whose ID is id.
// Order is preserved.
func RemoveItem(items []Item, id int64) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// ReplaceItem returns items with the entry whose ID is id swapped for updated.
func ReplaceItem(items []Item, id int64, updated Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == id {
			out[i] = updated
			continue
		}
		out[i] = it
	}
	return out
}

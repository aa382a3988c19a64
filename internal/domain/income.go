package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount indicates an income amount that is not a finite number >= 0.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidIncomeType indicates an unknown income type.
	ErrInvalidIncomeType = errors.New("invalid income type")
)

// IncomeType is the kind of compensation figure the user enters.
type IncomeType string

const (
	IncomeAnnual  IncomeType = "annual"
	IncomeMonthly IncomeType = "monthly"
	IncomeHourly  IncomeType = "hourly"
)

// IncomeTypes lists the income kinds in display order.
var IncomeTypes = []IncomeType{IncomeAnnual, IncomeMonthly, IncomeHourly}

// Valid reports whether t is one of the known income types.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeAnnual, IncomeMonthly, IncomeHourly:
		return true
	}
	return false
}

// Label returns the option label shown in selectors.
func (t IncomeType) Label() string {
	switch t {
	case IncomeAnnual:
		return "Annual"
	case IncomeMonthly:
		return "Monthly"
	case IncomeHourly:
		return "Hourly"
	default:
		return string(t)
	}
}

// AmountLabel returns the caption for the amount field of this type.
func (t IncomeType) AmountLabel() string {
	switch t {
	case IncomeAnnual:
		return "Amount per year"
	case IncomeMonthly:
		return "Amount per month"
	default:
		return "Hourly wage"
	}
}

// ParseIncomeType parses a case-insensitive income type name.
func ParseIncomeType(s string) (IncomeType, error) {
	t := IncomeType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q (want annual, monthly or hourly)", ErrInvalidIncomeType, s)
	}
	return t, nil
}

// IncomeSetting is the body of POST /income-settings.
type IncomeSetting struct {
	IncomeType IncomeType `json:"income_type"`
	Amount     float64    `json:"amount"`
}

// IncomeResult is the server's answer to an income submission.
type IncomeResult struct {
	HourlyRate float64 `json:"hourly_rate"`
}

// ParseAmount converts a raw amount string to a number.
// The result is finite and non-negative, otherwise ErrInvalidAmount.
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return v, nil
}

// SanitizeAmount keeps only digits and decimal points. When several points
// survive, the first one is kept and every digit after it joins one
// fractional part: "1.2.3" becomes "1.23".
func SanitizeAmount(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	idx := strings.IndexByte(cleaned, '.')
	if idx < 0 {
		return cleaned
	}
	return cleaned[:idx+1] + strings.ReplaceAll(cleaned[idx+1:], ".", "")
}

// FormatAmountDisplay inserts thousands separators into the integer part of
// an already sanitized amount. The fractional part is left as typed.
func FormatAmountDisplay(raw string) string {
	if raw == "" {
		return ""
	}
	intPart, frac, hasFrac := strings.Cut(raw, ".")
	grouped := groupThousands(intPart)
	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DailySavings is the money a user keeps per day by not doing an item.
type DailySavings struct {
	HourlyRate        float64
	HoursSavedPerDay  float64
	AmountSavedPerDay float64
}

// SavingsAt computes the daily savings preview for the item at hourlyRate.
// ok is false when the item has no hours estimate.
func (i *Item) SavingsAt(hourlyRate float64) (DailySavings, bool) {
	hours, ok := i.RoundedHours()
	if !ok {
		return DailySavings{}, false
	}
	return DailySavings{
		HourlyRate:        hourlyRate,
		HoursSavedPerDay:  hours,
		AmountSavedPerDay: hours * hourlyRate,
	}, true
}

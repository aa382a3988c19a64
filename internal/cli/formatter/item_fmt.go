package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaranai/yaranai/internal/domain"
)

// EmptyListMessage is shown when no items are registered.
const EmptyListMessage = "Nothing registered yet."

// FormatItemList renders items as a table for the list command. A non-nil
// rate adds a column with the yen saved per day at that hourly wage.
func FormatItemList(items []domain.Item, rate *float64) string {
	var b strings.Builder
	b.WriteString(Header("Things I will not do"))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(Dim(EmptyListMessage))
		b.WriteString("\n")
		return b.String()
	}

	withSavings := rate != nil
	headers := []string{"ID", "TITLE", "DESCRIPTION", "SAVES"}
	if withSavings {
		headers = append(headers, "PER DAY")
	}

	rows := make([][]string, 0, len(items))
	for i := range items {
		it := &items[i]
		saves := "—"
		if h, ok := it.RoundedHours(); ok {
			saves = FormatHours(h) + "h/day"
		}
		row := []string{
			Dim(strconv.FormatInt(it.ID, 10)),
			Bold(it.Title),
			Truncate(it.DescriptionText(), 40),
			saves,
		}
		if withSavings {
			perDay := "—"
			if sv, ok := it.SavingsAt(*rate); ok {
				perDay = Yen(sv.AmountSavedPerDay)
			}
			row = append(row, perDay)
		}
		rows = append(rows, row)
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim(fmt.Sprintf("%d item(s)", len(items))))
	b.WriteString("\n")
	return b.String()
}

// FormatItemDetail renders one item on a single line for command output.
func FormatItemDetail(it domain.Item) string {
	line := fmt.Sprintf("#%d %s", it.ID, Bold(it.Title))
	if d := it.DescriptionText(); d != "" {
		line += " " + Dim("— "+d)
	}
	if s := HoursSaved(&it); s != "" {
		line += " " + StyleGreen.Render("("+s+")")
	}
	return line
}

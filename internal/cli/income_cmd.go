package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
)

func newIncomeCmd(app *App) *cobra.Command {
	var typeStr, amount string

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Set your income and show the derived hourly wage",
		Example: `  yaranai income --type annual --amount 5,000,000
  yaranai income --type hourly --amount 1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			incomeType := domain.IncomeHourly
			if typeStr != "" {
				t, err := domain.ParseIncomeType(typeStr)
				if err != nil {
					return err
				}
				incomeType = t
			}

			if amount == "" && app.interactive() {
				if err := newIncomeForm(&incomeType, &amount).Run(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(amount) == "" {
				return fmt.Errorf("--amount is required")
			}

			// Grouping commas are accepted; anything else is left for
			// validation to reject.
			raw := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")

			var rate float64
			err := withSpinner(app, cmd, "Saving...", func() error {
				var err error
				rate, err = app.Income.SetIncome(context.Background(), incomeType, raw)
				return err
			})
			if err != nil {
				return err
			}

			body := formatter.Dim(incomeType.Label()+" "+domain.FormatAmountDisplay(raw)+" →") + "\n" +
				"Your hourly wage " + formatter.StyleWage.Render(formatter.HourlyRate(&rate))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Income", body))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "", "Income type: annual, monthly or hourly (default hourly)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 5,000,000")

	return cmd
}

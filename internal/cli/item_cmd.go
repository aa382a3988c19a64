package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yaranai/yaranai/internal/cli/formatter"
	"github.com/yaranai/yaranai/internal/domain"
)

// withSpinner runs fn behind a stderr spinner when attached to a terminal.
func withSpinner(app *App, cmd *cobra.Command, message string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
	defer stop()
	return fn()
}

// flagOr returns value when the flag was set on the command line, fallback
// otherwise. An explicitly empty flag still wins.
func flagOr(fs *pflag.FlagSet, name, value, fallback string) string {
	if fs.Changed(name) {
		return value
	}
	return fallback
}

func parseItemID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item ID %q", s)
	}
	return id, nil
}

func findItem(ctx context.Context, app *App, id int64) (domain.Item, error) {
	items, err := app.Items.List(ctx)
	if err != nil {
		return domain.Item{}, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Item{}, fmt.Errorf("item #%d not found", id)
}

// runList prints the items. A non-nil wage adds a per-day savings column.
func runList(cmd *cobra.Command, app *App, wage *float64) error {
	var items []domain.Item
	err := withSpinner(app, cmd, "Loading...", func() error {
		var err error
		items, err = app.Items.List(context.Background())
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemList(items, wage))
	return nil
}

func newListCmd(app *App) *cobra.Command {
	var wage string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("wage") {
				return runList(cmd, app, nil)
			}
			rate, err := domain.ParseAmount(strings.ReplaceAll(wage, ",", ""))
			if err != nil {
				return err
			}
			return runList(cmd, app, &rate)
		},
	}

	cmd.Flags().StringVar(&wage, "wage", "", "Hourly wage used to show yen saved per day, e.g. 1,500")

	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register something you will stop doing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" && app.interactive() {
				if err := newAddItemForm(&title, &description).Run(); err != nil {
					return err
				}
			}

			err := withSpinner(app, cmd, "Saving...", func() error {
				return app.Items.Add(context.Background(), title, description)
			})
			if errors.Is(err, domain.ErrEmptyTitle) {
				return fmt.Errorf("--title is required")
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Added "+formatter.Bold(title)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "What you will stop doing")
	cmd.Flags().StringVar(&description, "description", "", "Optional details")

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an item's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			item, err := findItem(ctx, app, id)
			if err != nil {
				return err
			}

			newTitle := flagOr(cmd.Flags(), "title", title, item.Title)
			newDesc := flagOr(cmd.Flags(), "description", description, item.DescriptionText())

			decision := domain.DecideEdit(item, newTitle, newDesc)
			switch decision.Outcome {
			case domain.EditRevert:
				return domain.ErrEmptyTitle
			case domain.EditUnchanged:
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing to change."))
				return nil
			}

			var updated domain.Item
			err = withSpinner(app, cmd, "Updating...", func() error {
				var err error
				updated, err = app.Items.Update(ctx, id, decision.Payload)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated "+formatter.FormatItemDetail(updated)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description (empty clears it)")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			err = withSpinner(app, cmd, "Deleting...", func() error {
				return app.Items.Delete(context.Background(), id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted #%d", id)))
			return nil
		},
	}
}

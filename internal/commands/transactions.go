package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/ledger"
	"github.com/olex-green/family-budget/internal/model"
)

func newTransactionsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and edit ledger transactions",
	}

	cmd.AddCommand(newTransactionsListCommand(configPath))
	cmd.AddCommand(newTransactionsAddCommand(configPath))
	cmd.AddCommand(newTransactionsSetCategoryCommand(configPath))

	return cmd
}

func newTransactionsListCommand(configPath *string) *cobra.Command {
	var month string
	var category string
	var uncategorized bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active year's transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			session, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			l := session.Ledger()

			var monthFilter int
			if month != "" {
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				monthFilter = int(m)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDate\tAmount\tCategory\tDescription")
			count := 0
			for _, t := range l.Transactions {
				if t.Date.Year() != l.ActiveYear {
					continue
				}
				if monthFilter != 0 && int(t.Date.Month()) != monthFilter {
					continue
				}
				if category != "" && t.Category != model.Category(category) {
					continue
				}
				if uncategorized && t.Category != model.Uncategorized {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date, t.Amount.StringFixed(2), t.Category, t.Description)
				count++
			}
			w.Flush()
			cmd.Printf("\n%d transactions\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only show this month")
	cmd.Flags().StringVar(&category, "category", "", "only show this category")
	cmd.Flags().BoolVar(&uncategorized, "uncategorized", false, "only show uncategorized transactions")

	return cmd
}

func newTransactionsAddCommand(configPath *string) *cobra.Command {
	var date string
	var amount string
	var description string
	var category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			session, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			d, err := model.ParseDate(date)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			a, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			txn, err := session.AddTransaction(d, a, description, model.Category(category))
			if err != nil {
				return err
			}
			cmd.Printf("Added %s: %s %s (%s)\n", txn.ID, txn.Date, txn.Amount.StringFixed(2), txn.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, negative for expenses (required)")
	cmd.Flags().StringVar(&description, "description", "", "transaction description")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTransactionsSetCategoryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-category <id> <category>",
		Short: "Change one transaction's category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			session, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			category := model.Category(args[1])
			found, err := session.UpdateTransaction(args[0], ledger.TransactionPatch{Category: &category})
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no transaction with id %q", args[0])
			}
			cmd.Printf("Set %s to %s\n", args[0], category)
			return nil
		},
	}
}

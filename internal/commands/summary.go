package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/report"
)

func newSummaryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the active year's totals, monthly breakdown, and projection",
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
			s := report.Summarize(l)
			p := report.Project(l, session.Now())

			cmd.Printf("Year %d\n\n", l.ActiveYear)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Initial capital\t%s\n", l.InitialCapital.StringFixed(2))
			fmt.Fprintf(w, "Total income\t%s\n", s.TotalIncome.StringFixed(2))
			fmt.Fprintf(w, "Total expenses\t%s\n", s.TotalExpense.StringFixed(2))
			fmt.Fprintf(w, "Net savings\t%s\n", s.NetSavings.StringFixed(2))
			fmt.Fprintf(w, "Current balance\t%s\n", s.CurrentBalance.StringFixed(2))
			if p.ActiveMonths > 0 {
				fmt.Fprintf(w, "Avg monthly savings\t%s\t(%d active months)\n", p.AvgMonthlySavings.StringFixed(2), p.ActiveMonths)
				fmt.Fprintf(w, "Projected year end\t%s\t(%d months ahead)\n", p.ProjectedYearEnd.StringFixed(2), p.RemainingMonths)
			}
			w.Flush()

			if monthly := report.MonthlyTotals(l); len(monthly) > 0 {
				cmd.Println("\nBy month")
				w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "Month\tIncome\tExpenses\tNet")
				for _, m := range monthly {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						m.Month, m.Income.StringFixed(2), m.Expense.StringFixed(2), m.Net.StringFixed(2))
				}
				w.Flush()
			}

			if byCategory := report.ExpensesByCategory(l); len(byCategory) > 0 {
				cmd.Println("\nExpenses by category")
				w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, c := range byCategory {
					fmt.Fprintf(w, "%s\t%s\n", c.Category, c.Total.StringFixed(2))
				}
				w.Flush()
			}
			return nil
		},
	}
}

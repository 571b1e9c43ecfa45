package commands

import (
	"github.com/spf13/cobra"
)

func newClearMonthCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-month <month>",
		Short: "Delete every transaction in one month of the active year",
		Long: "Delete every transaction dated in the given month of the active " +
			"year, typically before re-importing a corrected statement.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			session, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			removed, err := session.PurgeMonth(month)
			if err != nil {
				return err
			}
			if removed == 0 {
				cmd.Printf("No transactions in %s %d\n", month, session.Ledger().ActiveYear)
				return nil
			}
			cmd.Printf("Removed %d transactions from %s %d\n", removed, month, session.Ledger().ActiveYear)
			return nil
		},
	}
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSettingsCommands(configPath *string) []*cobra.Command {
	setCapital := &cobra.Command{
		Use:   "set-capital <amount>",
		Short: "Set the opening balance for the active year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capital, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
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

			if err := session.SetInitialCapital(capital); err != nil {
				return err
			}
			cmd.Printf("Initial capital set to %s\n", capital.StringFixed(2))
			return nil
		},
	}

	setYear := &cobra.Command{
		Use:   "set-year <year>",
		Short: "Switch the calendar year the ledger tracks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing year: %w", err)
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

			if err := session.SetActiveYear(year); err != nil {
				return err
			}
			cmd.Printf("Active year set to %d\n", year)
			return nil
		},
	}

	return []*cobra.Command{setCapital, setYear}
}

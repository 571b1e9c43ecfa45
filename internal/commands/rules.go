package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/model"
)

func newRulesCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage keyword categorization rules",
	}

	cmd.AddCommand(newRulesListCommand(configPath))
	cmd.AddCommand(newRulesAddCommand(configPath))
	cmd.AddCommand(newRulesDeleteCommand(configPath))

	return cmd
}

func newRulesListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules in match order",
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

			rules := session.Ledger().CategoryRules
			if len(rules) == 0 {
				cmd.Println("No rules defined")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKeyword\tCategory\tType")
			for _, r := range rules {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Keyword, r.Category, r.Type)
			}
			return w.Flush()
		},
	}
}

func newRulesAddCommand(configPath *string) *cobra.Command {
	var ruleType string

	cmd := &cobra.Command{
		Use:   "add <keyword> <category>",
		Short: "Add a rule and apply it to uncategorized transactions",
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

			rule := model.CategoryRule{
				Keyword:  args[0],
				Category: model.Category(args[1]),
				Type:     model.RuleType(ruleType),
			}
			updated, err := session.AddRule(rule)
			if err != nil {
				return err
			}
			cmd.Printf("Added rule %q -> %s; categorized %d existing transactions\n", args[0], args[1], updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleType, "type", string(model.RuleAny), "rule type: any, income, or expense")

	return cmd
}

func newRulesDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule (already-categorized transactions keep their category)",
		Args:  cobra.ExactArgs(1),
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

			found, err := session.DeleteRule(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no rule with id %q", args[0])
			}
			cmd.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthflow/internal/triage"
)

func newValidateCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog [path]",
		Short: "Validate a symptom rule catalog without starting the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			catalog, err := triage.LoadCatalog(path)
			if err != nil {
				return err
			}

			byCategory := make(map[triage.Category]int)
			for _, rule := range catalog.Rules() {
				byCategory[rule.Category]++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog OK: %d rules", catalog.Len())
			for _, cat := range []triage.Category{triage.CategoryRed, triage.CategoryUrgent, triage.CategoryPrimary, triage.CategoryPharmacy} {
				fmt.Fprintf(cmd.OutOrStdout(), " %s=%d", cat, byCategory[cat])
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

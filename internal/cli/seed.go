package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthflow/internal/hospital"
)

func newSeedCoordinatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-coordinates",
		Short: "Write the built-in facility coordinate table to the configured path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			dir := hospital.NewDirectory()
			for name, c := range hospital.SeedCoordinates {
				dir.Set(name, c)
			}
			if err := dir.SaveTo(cfg.CoordinatesPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d facility coordinates to %s\n",
				len(hospital.SeedCoordinates), cfg.CoordinatesPath)
			return nil
		},
	}
}

package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"healthflow/internal/config"
)

var cfgPath string

// NewRootCommand wires the operational subcommands that run outside the
// HTTP server: the facility updater, catalog validation and coordinate
// seeding.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "healthflow",
		Short:        "Operational tooling for the triage and wait-time services",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")

	root.AddCommand(
		newUpdateFacilitiesCommand(),
		newValidateCatalogCommand(),
		newSeedCoordinatesCommand(),
	)
	return root
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	_ = godotenv.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	path := cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	return cfg, logger, err
}

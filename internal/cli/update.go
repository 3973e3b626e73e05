package cli

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"healthflow/internal/hospital"
)

func newUpdateFacilitiesCommand() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "update-facilities",
		Short: "Fetch the wait-time feed and refresh the stored facility snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			dir, err := hospital.LoadDirectory(cfg.CoordinatesPath)
			if err != nil {
				return err
			}

			var store *hospital.Store
			if cfg.RedisURL != "" {
				opts, err := redis.ParseURL(cfg.RedisURL)
				if err != nil {
					return err
				}
				store = hospital.NewStore(redis.NewClient(opts))
			} else {
				logger.Warn("REDIS_URL is not set, refreshed snapshots will not be stored")
			}

			feed := hospital.NewFeedClient(cfg.FeedURL, 10*time.Second)
			updater := hospital.NewUpdater(feed, dir, store, cfg.UpdateInterval, logger)

			if once {
				return updater.RefreshOnce(cmd.Context())
			}
			return updater.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "refresh a single time and exit")
	return cmd
}

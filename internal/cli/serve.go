package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/internal/server"
	"github.com/daschober/planesketch/pkg/session"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	var (
		addr        string
		redisAddr   string
		redisDB     int
		sessionTTL  time.Duration
		sweepPeriod time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editing host",
		Long: `Run the HTTP editing host.

The server exposes a JSON API for live editing sessions: create a
session, add entities, patch attributes (numeric fields accept
expression strings), delete with cascade, and render the session's
dependency graph as SVG.

Sessions are stored in memory by default. With --redis, sessions are
stored in Redis so multiple instances can share them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var store session.Store
			if redisAddr != "" {
				var err error
				store, err = session.NewRedisStore(cmd.Context(), session.RedisConfig{
					Addr: redisAddr,
					DB:   redisDB,
				})
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				logger.Info("using redis session store", "addr", redisAddr)
				// Redis expires sessions natively.
				sweepPeriod = 0
			} else {
				store = session.NewMemoryStore()
				logger.Debug("using in-memory session store")
			}

			srv := server.New(server.Config{
				Addr:            addr,
				SessionTTL:      sessionTTL,
				CleanupInterval: sweepPeriod,
			}, store, logger)

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared session storage (e.g. localhost:6379)")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", session.DefaultTTL, "idle session lifetime")
	cmd.Flags().DurationVar(&sweepPeriod, "sweep", 10*time.Minute, "expired-session sweep interval (memory store only)")

	return cmd
}

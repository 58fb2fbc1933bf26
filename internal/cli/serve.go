package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maciej-vess/business-food-truck/internal/api"
	"github.com/maciej-vess/business-food-truck/internal/catalog"
	"github.com/maciej-vess/business-food-truck/internal/config"
	"github.com/maciej-vess/business-food-truck/internal/entropy"
	"github.com/maciej-vess/business-food-truck/internal/game"
	"github.com/maciej-vess/business-food-truck/internal/ledger"
)

// NewServeCommand runs the HTTP game server.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Server.AdminKey == "" {
				slog.Warn("no admin key set, reset endpoint disabled (set FOODBIZ_SERVER_ADMIN_KEY)")
			}

			server, err := api.NewServer(cfg.Server.Port, cfg.Server.AdminKey, sessionFactory(cfg))
			if err != nil {
				return err
			}
			server.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			slog.Info("received signal, shutting down", "signal", sig)
			return nil
		},
	}
}

// sessionFactory builds new sessions per the configured setup; the
// server reuses it on reset.
func sessionFactory(cfg *config.Config) api.SessionFactory {
	return func() (*game.Session, *ledger.DB, error) {
		ldb, err := ledger.Open(cfg.Session.LedgerPath)
		if err != nil {
			return nil, nil, err
		}

		opts := game.Options{
			MaxDays:    cfg.Session.MaxDays,
			ReportSpan: cfg.Session.ReportSpan,
			Recorder:   ldb,
		}

		if cfg.Session.Weather != "" {
			w, ok := catalog.ParseWeather(cfg.Session.Weather)
			if !ok {
				ldb.Close()
				return nil, nil, fmt.Errorf("unknown weather %q", cfg.Session.Weather)
			}
			opts.Weather = &w
		} else if cfg.Session.Seed != 0 {
			opts.Entropy = entropy.NewSeeded(cfg.Session.Seed)
		}

		session := game.New(opts)
		slog.Info("session started",
			"session", session.ID(),
			"weather", session.Weather(),
			"max_days", cfg.Session.MaxDays,
		)
		return session, ldb, nil
	}
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/liftlog/internal/config"
	"github.com/misterclayt0n/liftlog/internal/logging"
	"github.com/misterclayt0n/liftlog/internal/session"
	"github.com/misterclayt0n/liftlog/internal/stats"
	"github.com/misterclayt0n/liftlog/internal/storage"
	"github.com/misterclayt0n/liftlog/internal/timer"
)

// app is what every command runs against. It is built once per invocation in
// the root pre-run hook.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	loc      *time.Location
	clock    timer.Clock
	store    *storage.Storage
	sessions *session.Manager
	stats    *stats.Service
}

var (
	configPath string
	env        *app
)

var rootCmd = &cobra.Command{
	Use:           "liftlog",
	Short:         "CLI workout tracker: routines, live sessions, history and stats",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
}

func Execute() error {
	defer teardown()
	return rootCmd.ExecuteContext(context.Background())
}

func setup(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("Failed to load config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.SetupParams{
		LogFileName:   cfg.Log.File,
		LogToStderr:   cfg.Log.ToStderr,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	clock := timer.SystemClock{}
	st, err := storage.Open(ctx, cfg.DB.ConnectionString,
		storage.WithClock(clock),
		storage.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("Failed to open database: %w", err)
	}

	env = &app{
		cfg:   cfg,
		log:   logger,
		loc:   loc,
		clock: clock,
		store: st,
		sessions: session.NewManager(st, st, st, st,
			session.WithClock(clock),
			session.WithLocation(loc),
			session.WithLogger(logger),
		),
		stats: stats.NewService(st, clock, loc),
	}
	return nil
}

func teardown() {
	if env == nil {
		return
	}
	if err := env.store.Close(); err != nil {
		env.log.WithError(err).Warn("closing database")
	}
	env = nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ~/.config/liftlog/config.toml)")
}

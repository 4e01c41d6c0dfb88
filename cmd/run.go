package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/logger"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/settings"
	"github.com/abhisek/quizdeck/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefs, err := settings.Load(ctx, st.SettingsRepo(), log)
	if err != nil {
		return err
	}

	env := &screen.Env{
		Loader:   bank.NewDefaultLoader(cfg.DataDir, log),
		Settings: prefs,
		PageSize: cfg.PageSize,
		Logger:   log,
	}

	svc, err := newExplainer(ctx, cfg, st, log)
	if err != nil {
		log.Info("explanations unavailable", zap.Error(err))
	} else {
		env.Explainer = svc
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("db", dbPath),
		zap.Int("page_size", cfg.PageSize),
		zap.Bool("explanations", env.Explainer != nil))

	return app.Run(app.Options{Env: env})
}

package main

import (
	"fmt"
	"os"
	"time"

	"scratchpad/internal"
	"scratchpad/internal/config"
	"scratchpad/internal/logging"
	"scratchpad/internal/notify"
	"scratchpad/internal/service"
	"scratchpad/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	config string
	db     string
	log    string
	level  string
}

var rootCmd = &cobra.Command{
	Use:   "scratchpad",
	Short: "A terminal scratch pad with a background stopwatch and a scrolling wave view",
	Long: `scratchpad hosts two small demos in one terminal UI:

- a stopwatch service that mirrors its state into a status notification
- a pair of procedurally generated waveforms that scroll on a fixed tick`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.config, "config", "c", "",
		"Config file (default ~/.scratchpad/config.yaml)")
	rootCmd.Flags().StringVar(&flags.db, "db", "",
		"SQLite database for stopwatch history (overrides database.path)")
	rootCmd.Flags().StringVarP(&flags.log, "log", "l", "",
		"Write logs to this file (overrides log.path, empty disables)")
	rootCmd.Flags().StringVar(&flags.level, "log-level", "",
		"Log level: debug, info, warn, error (overrides log.level)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager(flags.config)
	if err != nil {
		return err
	}
	cfg := manager.GetConfig()
	if flags.db != "" {
		cfg.Database.Path = flags.db
	}
	if flags.log != "" {
		cfg.Log.Path = flags.log
	}
	if flags.level != "" {
		cfg.Log.Level = flags.level
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	repo, err := session.NewRepository(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	tray := notify.NewTray()
	svc := service.New(service.Options{
		Notifier: tray,
		Recorder: repo,
		Logger:   logger,
	})

	m := internal.NewModel(internal.Options{
		Service:  svc,
		Tray:     tray,
		Sessions: repo,
		Wave:     cfg.Wave,
		Logger:   logger,
	})
	defer m.Close()

	logger.Info("starting", zap.String("config", manager.Path()), zap.String("database", cfg.Database.Path))

	p := tea.NewProgram(m, tea.WithAltScreen())

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Send(internal.MsgTick{})
			}
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

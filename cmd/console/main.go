// console is the interactive operator terminal for the box office: it lists
// events and sponsors, creates and deletes events, books and verifies
// tickets, and shows bookings per event. It talks to the server over its
// JSON API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"boxoffice/internal/clock"
	"boxoffice/internal/dialog"
	"boxoffice/internal/gateway"
	"boxoffice/internal/notify"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/tui"
	"boxoffice/internal/viewstate"
	"boxoffice/internal/workflow"
	"boxoffice/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	// The config file has to be read before the other flags are applied, so
	// --config is picked out ahead of the full parse.
	configPath := os.Getenv("CONSOLE_CONFIG")
	args := os.Args[1:]
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			configPath = args[i+1]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		}
	}
	cfg, err := config.LoadConsole(configPath)
	if err != nil {
		return err
	}

	flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
	flagSet.String("config", configPath, "path to a YAML console config file")
	cfg.AddFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log := logger.NewWithWriter(logFile, cfg.LogLevel)
	logger.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := gateway.NewClient(cfg.ServerURL, cfg.RequestTimeout, gateway.WithLogger(log))
	if cfg.Username != "" {
		loginCtx, loginCancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		err := client.Login(loginCtx, cfg.Username, cfg.Password)
		loginCancel()
		if err != nil {
			return fmt.Errorf("operator login: %w", err)
		}
		log.LogAuthSuccess(ctx, cfg.Username, "password")
	}

	store := viewstate.NewStore()
	dialogs := dialog.NewStack()
	notes := notify.NewQueue(clock.NewSystem(), notify.WithLifetime(cfg.NoticeLifetime))
	orch := workflow.New(client, store, dialogs, notes,
		workflow.WithTimeout(cfg.RequestTimeout),
		workflow.WithLogger(log),
	)

	model := tui.NewModel(ctx, orch, store, dialogs, notes, tui.WithLogger(log))
	log.Info("Console starting", "server", cfg.ServerURL)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

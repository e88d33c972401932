// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"todo/internal/app"
	"todo/internal/backend/rest"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/output"
	"todo/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create app factory
	factory := func(ctx context.Context, cfg *config.Config, out, errOut io.Writer) (*app.App, error) {
		log := newLogger(cfg, errOut)

		client, err := rest.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := cfg.EnsureDir(); err != nil {
			return nil, err
		}
		return app.New(store.NewFileStore(cfg.Dir), client, app.Options{
			Notifier: output.NewNotifier(out, errOut, cfg.Quiet),
			Log:      log,
		}), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}

// newLogger logs errors to w, or everything with --debug. Failures the
// user must see are already printed as notifications.
func newLogger(cfg *config.Config, w io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: !cfg.Debug})
	log.SetLevel(logrus.ErrorLevel)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log).WithField("api_url", cfg.APIURL)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bassista/go_sitework/internal/app"
	"github.com/bassista/go_sitework/internal/config"
	"github.com/bassista/go_sitework/internal/logger"
	"github.com/bassista/go_sitework/internal/service"
	"github.com/spf13/cobra"
)

// env is what every command runs against.
type env struct {
	ctx context.Context
	app *app.App
	svc *service.Service
	out io.Writer
}

// print writes v as indented JSON.
func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printState writes the current state of the named store.
func (e *env) printState(name string) error {
	store, ok := e.app.Stores.Get(name)
	if !ok {
		return fmt.Errorf("unknown store %q", name)
	}
	view, err := store.View()
	if err != nil {
		return err
	}
	return e.print(view)
}

// bootstrap loads the configuration and restores the stores from disk.
func bootstrap() (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if err := logger.SetLevel(cfg.Misc.LogLevel); err != nil {
		logger.WithComponent("main").Warnf("invalid log level '%s': %v", cfg.Misc.LogLevel, err)
	}
	return app.Bootstrap(cfg)
}

// run adapts fn into a cobra RunE. The stores are flushed to disk after every
// command, whether it failed or not. Only store data is written; loading and
// error flags start fresh on the next run.
func run(fn func(e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.Shutdown()

		e := &env{
			ctx: a.WithToken(cmd.Context(), flagToken),
			app: a,
			svc: a.Service,
			out: cmd.OutOrStdout(),
		}
		runErr := fn(e, args)
		a.Flush(context.Background())
		return runErr
	}
}

// fetchAndPrint runs a store fetch and prints the resulting state. The fetch
// error is returned after printing so the exit code reflects it.
func fetchAndPrint(e *env, name, id string) error {
	err := e.svc.FetchByName(e.ctx, name, id)
	if printErr := e.printState(name); printErr != nil {
		return printErr
	}
	return err
}

// done prints a short confirmation.
func done(e *env, msg string) error {
	_, err := fmt.Fprintln(e.out, msg)
	return err
}

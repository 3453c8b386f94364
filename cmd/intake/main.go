// Command intake runs an interactive patient registration session against
// the ClinicCare service.
//
// Usage:
//
//	intake <user-id>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	intake "github.com/cliniccare/go-intake"
	"github.com/cliniccare/go-intake/pkg/client"
	"github.com/cliniccare/go-intake/pkg/form"
	"github.com/cliniccare/go-intake/pkg/renderers/tui"
	"github.com/cliniccare/go-intake/pkg/submit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "intake:", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) != 2 {
		return errors.New("usage: intake <user-id>")
	}
	userID := os.Args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	directory := form.DefaultDirectory()
	if cfg.Directory != "" {
		directory, err = form.LoadDirectory(cfg.Directory)
		if err != nil {
			return err
		}
	}

	service := client.New(cfg.ServiceURL,
		client.WithAPIKey(cfg.APIKey),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(logger))

	session := intake.NewSession(service,
		intake.WithDirectory(directory),
		intake.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcome, err := session.Register(ctx, userID)
	switch {
	case errors.Is(err, intake.ErrIdentityNotFound):
		return fmt.Errorf("no patient account exists for %q; create the account first", userID)
	case errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Println("Registration cancelled.")
		return nil
	case err != nil:
		return err
	}

	if outcome.Status == submit.StatusSucceeded {
		fmt.Printf("Registration complete. Continue to %s\n", outcome.Target)
		return nil
	}
	fmt.Println("Registration was not submitted.")
	return nil
}

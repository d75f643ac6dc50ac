package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/nnsolutions/isms/internal/console/app"
	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/dashboard"
	"github.com/nnsolutions/isms/internal/console/session"
	"github.com/nnsolutions/isms/internal/infrastructure/config"
	"github.com/nnsolutions/isms/pkg/logger"
)

func main() {
	// Logs go to a file so they never interleave with the interactive
	// screen.
	logFile := os.Getenv("ISMS_LOG_FILE")
	if logFile == "" {
		logFile = "isms-console.log"
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Output: f, Service: "isms-console"})
	cfg := config.LoadConsole(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alert := dashboard.AlertFunc(func(msg string) {
		color.New(color.FgYellow, color.Bold).Fprintf(os.Stdout, "! %s\n", msg)
	})

	shell := app.New(app.Config{
		API:   client.New(cfg.APIURL, client.WithTimeout(cfg.HTTPTimeout)),
		Store: session.NewFileStore(cfg.SessionFile),
		Alert: alert,
		Log:   logger.Component("console"),
		Now:   time.Now,
	})

	r := newREPL(shell, os.Stdin, os.Stdout)
	if err := r.run(ctx); err != nil {
		log.Error().Err(err).Msg("console stopped")
		os.Exit(1)
	}
}

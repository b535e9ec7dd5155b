package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/funvibe/bantam/internal/archive"
	"github.com/funvibe/bantam/internal/config"
	"github.com/funvibe/bantam/internal/rpc"
)

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "settings file (default: nearest bantam.yaml or bantam.toml)")
	listen := fs.String("listen", "", "address to listen on")
	archivePath := fs.String("archive", "", "SQLite file to record runs in")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "bantamc serve: unexpected arguments %v\n", fs.Args())
		return exitUsage
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	if *listen != "" {
		settings.Server.Listen = *listen
	}
	if *archivePath != "" {
		settings.Archive.Path = *archivePath
	}
	configureLogging(settings, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, settings); err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	return exitOK
}

// serve runs the service until ctx is done.
func serve(ctx context.Context, settings *config.Settings) error {
	var store *archive.Store
	if settings.Archive.Path != "" {
		var err error
		store, err = archive.Open(ctx, settings.Archive.Path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	srv, err := rpc.NewServer(store)
	if err != nil {
		return err
	}
	log.Infof("listening on %s", settings.Server.Listen)
	return srv.ListenAndServe(ctx, settings.Server.Listen)
}

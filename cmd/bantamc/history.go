package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/funvibe/bantam/internal/archive"
	"github.com/funvibe/bantam/internal/report"
)

func runHistory(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "settings file (default: nearest bantam.yaml or bantam.toml)")
	archivePath := fs.String("archive", "", "SQLite file runs were recorded in")
	n := fs.Int("n", 10, "number of runs to list")
	show := fs.String("show", "", "print the full report of one run")
	format := fs.String("format", "", "output format for -show: text, yaml or json")
	color := fs.String("color", "", "colour mode for -show: auto, always or never")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *n < 1 {
		fmt.Fprintf(stderr, "bantamc history: -n must be at least 1, got %d\n", *n)
		return exitUsage
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "archive":
			settings.Archive.Path = *archivePath
		case "format":
			settings.Output.Format = *format
		case "color":
			settings.Output.Color = *color
		}
	})
	if settings.Archive.Path == "" {
		fmt.Fprintln(stderr, "bantamc history: no archive configured (use -archive or archive.path)")
		return exitUsage
	}
	configureLogging(settings, false)

	ctx := context.Background()
	store, err := archive.Open(ctx, settings.Archive.Path)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	defer store.Close()

	if *show != "" {
		return showRun(ctx, store, *show, report.Options{
			Format: settings.Output.Format,
			Color:  report.ColorEnabled(settings.Output.Color, asFile(stdout)),
			Tree:   settings.Output.Tree,
		}, stdout, stderr)
	}

	runs, err := store.Recent(ctx, *n)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCREATED\tERRORS\tFILES")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Local().Format(time.DateTime), r.ErrorCount, strings.Join(r.Files, " "))
	}
	tw.Flush()
	return exitOK
}

func showRun(ctx context.Context, store *archive.Store, id string, opts report.Options, stdout, stderr io.Writer) int {
	r, err := store.Load(ctx, id)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	if err := report.Render(stdout, r, opts); err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	return exitOK
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/funvibe/bantam/internal/analyzer"
	"github.com/funvibe/bantam/internal/archive"
	"github.com/funvibe/bantam/internal/pipeline"
	"github.com/funvibe/bantam/internal/report"
	"github.com/funvibe/bantam/internal/rpc"
)

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "settings file (default: nearest bantam.yaml or bantam.toml)")
	format := fs.String("format", "", "output format: text, yaml or json")
	color := fs.String("color", "", "colour mode: auto, always or never")
	strict := fs.Bool("strict", false, "report assignments to undeclared names")
	tree := fs.Bool("tree", false, "print the class hierarchy")
	archivePath := fs.String("archive", "", "SQLite file to record the run in")
	remote := fs.String("remote", "", "address of a running bantamc serve to check against")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: bantamc check [flags] file...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return exitUsage
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			settings.Output.Format = *format
		case "color":
			settings.Output.Color = *color
		case "strict":
			settings.Analysis.StrictAssignment = *strict
		case "tree":
			settings.Output.Tree = *tree
		case "archive":
			settings.Archive.Path = *archivePath
		}
	})
	configureLogging(settings, *verbose)

	sources, err := readSources(files)
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}
	var r *report.Report
	if *remote != "" {
		r, err = checkRemote(*remote, sources, settings.Analysis.StrictAssignment)
	} else {
		r, err = checkLocal(sources, settings.Analysis.StrictAssignment)
	}
	if err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}

	opts := report.Options{
		Format: settings.Output.Format,
		Color:  report.ColorEnabled(settings.Output.Color, asFile(stdout)),
		Tree:   settings.Output.Tree,
	}
	if err := report.Render(stdout, r, opts); err != nil {
		fmt.Fprintf(stderr, "bantamc: %s\n", err)
		return exitUsage
	}

	// A remote server archives on its own side.
	if settings.Archive.Path != "" && *remote == "" {
		if err := archiveReport(settings.Archive.Path, r); err != nil {
			fmt.Fprintf(stderr, "bantamc: %s\n", err)
			return exitUsage
		}
	}
	if !r.OK {
		return exitDiagnostics
	}
	return exitOK
}

func readSources(files []string) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		sources = append(sources, pipeline.Source{Name: name, Data: data})
	}
	return sources, nil
}

func sourceNames(sources []pipeline.Source) []string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name
	}
	return names
}

// checkLocal decodes every source into one program and analyzes it.
func checkLocal(sources []pipeline.Source, strict bool) (*report.Report, error) {
	ctx, err := analyzer.CheckSources(sources, analyzer.Options{StrictAssignment: strict})
	if err != nil {
		return nil, err
	}
	return report.New(sourceNames(sources), ctx.Root, ctx.Handler.Errors()), nil
}

// checkRemote sends all sources to the service as one program.
func checkRemote(addr string, sources []pipeline.Source, strict bool) (*report.Report, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := rpc.NewClient(conn)
	if err != nil {
		return nil, err
	}
	res, err := client.Check(context.Background(), sources, strict)
	if err != nil {
		return nil, fmt.Errorf("checking on %s: %w", addr, err)
	}

	r := report.New(sourceNames(sources), nil, nil)
	r.RunID = res.RunID
	r.OK = res.OK
	r.Diagnostics = append(r.Diagnostics, res.Diagnostics...)
	r.Classes = res.Hierarchy
	return r, nil
}

func archiveReport(path string, r *report.Report) error {
	ctx := context.Background()
	store, err := archive.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, r)
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/funvibe/bantam/internal/config"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var log = commonlog.GetLogger("bantam.cli")

// Exit codes
const (
	exitOK          = 0
	exitDiagnostics = 1
	exitUsage       = 2
)

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: bantamc <command> [flags]

Commands:
  check [flags] file...   analyze AST documents
  serve [flags]           run the gRPC analysis service
  history [flags]         list archived runs
  version                 print the version

Run "bantamc <command> -h" for the flags of a command.
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stderr)
	case "history":
		return runHistory(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "bantamc %s\n", Version)
		return exitOK
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "bantamc: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

// loadSettings reads path, or the nearest bantam.yaml / bantam.toml above
// the working directory when path is empty.
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		found, err := config.FindSettings(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.DefaultSettings(), nil
		}
		path = found
	}
	return config.LoadSettings(path)
}

func configureLogging(settings *config.Settings, verbose bool) {
	verbosity := settings.Log.Verbosity
	if verbose && verbosity < 2 {
		verbosity = 2
	}
	var path *string
	if settings.Log.File != "" {
		path = &settings.Log.File
	}
	commonlog.Configure(verbosity, path)
	if settings.Path != "" {
		log.Debugf("settings loaded from %s", settings.Path)
	}
}

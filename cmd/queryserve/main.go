/*
Package main implements the query completion server and CLI application.

queryserve provides context-aware autocompletion for field:value search
queries: field-name suggestions ranked by presence in the active query, and
field-value suggestions with occurrence counts and a spelling-correction
fallback, backed by patricia tries.

# Usage

Start the msgpack IPC server with a catalog and value fixture:

	queryserve -fields fields.toml -values values.toml

Run in CLI mode for testing and debugging:

	queryserve -c -fields fields.toml -values values.toml -limit 10

Run the interactive REPL with live completions:

	queryserve -i -fields fields.toml -values values.toml

Flags may also be set through the environment with a QUERYSERVE_ prefix,
e.g. QUERYSERVE_FIELDS=fields.toml.

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_limit = 64
	max_query_len = 1024

	[suggest]
	max_results = 10
	min_occurrence = 1
	enable_correction = true

	[cli]
	default_limit = 24

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See pkg/server
for message shapes. Completion requests carry the query text and cursor:

	{"id": "req1", "q": "http_method:G", "cur": 13, "l": 10}

Catalog requests replace the field mappings, switch the active query, or
feed values into the index at runtime.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/bastiangx/queryserve/internal/cli"
	"github.com/bastiangx/queryserve/pkg/autocomplete"
	"github.com/bastiangx/queryserve/pkg/config"
	"github.com/bastiangx/queryserve/pkg/fields"
	"github.com/bastiangx/queryserve/pkg/server"
	"github.com/bastiangx/queryserve/pkg/suggest"
)

const (
	Version = "0.3.0"
	AppName = "queryserve"
	gh      = "https://github.com/bastiangx/queryserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Print("Exiting...")
		os.Exit(0)
	}()
}

// main wires the catalog, value index and completers together and hands off
// to the chosen front end; it does not implement completion logic itself.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	fs := flag.NewFlagSet(AppName, flag.ExitOnError)
	showVersion := fs.Bool("version", false, "Show current version")
	fieldsPath := fs.String("fields", "", "TOML file with field mappings and query partitions")
	valuesPath := fs.String("values", "", "TOML file with field value occurrences")
	configPath := fs.String("config", "", "Custom config file path")
	activeQuery := fs.String("query", "", "Initially active query id")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	cliMode := fs.Bool("c", false, "Run plain CLI -- useful for testing and debugging")
	interactive := fs.Bool("i", false, "Run interactive REPL with live completions")
	limit := fs.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("QUERYSERVE")); err != nil {
		log.Fatalf("Parsing flags: %v", err)
	}

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	// stdout carries the IPC protocol in server mode
	log.SetOutput(os.Stderr)

	appConfig, loadedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", loadedPath)

	snapshot := fields.Snapshot{}
	if *fieldsPath != "" {
		snapshot, err = fields.LoadSnapshotTOML(*fieldsPath)
		if err != nil {
			log.Fatalf("Failed to load field catalog: %v", err)
		}
	} else {
		log.Warn("No -fields file given, starting with an empty catalog...")
	}

	index := suggest.NewValueIndex(suggest.Options{
		MaxResults:       appConfig.Suggest.MaxResults,
		MinOccurrence:    appConfig.Suggest.MinOccurrence,
		EnableCorrection: appConfig.Suggest.EnableCorrection,
	})
	if *valuesPath != "" {
		if err := index.LoadTOMLFile(*valuesPath); err != nil {
			log.Fatalf("Failed to load value fixture: %v", err)
		}
	}

	mappingStore := fields.NewMappingStore(snapshot)
	queryStore := fields.NewQueryStore(*activeQuery)
	catalog := fields.NewCatalog(mappingStore, queryStore)
	defer catalog.Close()

	aggregator := autocomplete.NewAggregator(
		autocomplete.NewFieldNameCompleter(catalog),
		autocomplete.NewFieldValueCompleter(catalog, index),
	)

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(aggregator, *limit, appConfig.Server.MaxQueryLen)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	case *interactive:
		log.SetReportTimestamp(false)
		cli.NewInteractive(aggregator, *limit).Run()
	default:
		showStartupInfo(len(snapshot.All), index.FieldCount())
		srv := server.NewServer(aggregator, mappingStore, queryStore, index, appConfig)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ queryserve ] context-aware search query completions")
	logger.Print("", "version", Version)
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(fieldCount, valueFields int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("catalog: %d fields, value index: %d fields", fieldCount, valueFields)
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

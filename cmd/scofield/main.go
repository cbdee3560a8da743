// Command scofield builds the connected study dataset from Scofield
// Reference Bible source files. It parses verses and notes, links them into
// cross-references, themes, and reading plans, and can export the result to
// JSON and SQLite or serve it over a REST API with a browser UI.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ScofieldStudy/core/pipeline"
	"github.com/FocuswithJustin/ScofieldStudy/core/sqlite"
	"github.com/FocuswithJustin/ScofieldStudy/internal/api"
	"github.com/FocuswithJustin/ScofieldStudy/internal/export"
	"github.com/FocuswithJustin/ScofieldStudy/internal/formats"
	"github.com/FocuswithJustin/ScofieldStudy/internal/logging"
	"github.com/FocuswithJustin/ScofieldStudy/internal/store"
	"github.com/FocuswithJustin/ScofieldStudy/internal/validation"
	"github.com/FocuswithJustin/ScofieldStudy/internal/web"
)

const version = "2.0.0"

// CLI defines the command-line interface for scofield.
var CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Parse   ParseCmd   `cmd:"" help:"Parse verse and note files and export study data"`
	Analyze AnalyzeCmd `cmd:"" help:"Parse inputs and print connection analysis"`
	Serve   ServeCmd   `cmd:"" help:"Serve the REST API and study browser UI"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// loadResult validates the input files, reads them, and runs the pipeline.
func loadResult(versesPath, notesPath string) (*pipeline.Result, error) {
	for _, path := range []string{versesPath, notesPath} {
		if err := validation.ValidatePath(path); err != nil {
			return nil, fmt.Errorf("invalid input path %q: %w", path, err)
		}
		if err := checkHeader(path); err != nil {
			return nil, err
		}
	}

	verseRows, err := formats.ReadVerseRows(versesPath)
	if err != nil {
		return nil, fmt.Errorf("reading verses: %w", err)
	}
	noteRows, err := formats.ReadNoteRows(notesPath)
	if err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}

	return pipeline.Build(verseRows, noteRows), nil
}

// checkHeader verifies the file's leading bytes match its extension.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := validation.CheckFileHeader(header[:n], path); err != nil {
		return err
	}
	return nil
}

// ParseCmd parses inputs and writes JSON exports, optionally SQLite too.
type ParseCmd struct {
	Verses string `required:"" help:"Path to verse source file" type:"existingfile"`
	Notes  string `required:"" help:"Path to Scofield notes file" type:"existingfile"`
	Output string `default:"exports" help:"Output directory for JSON exports" type:"path"`
	DB     string `help:"Also create a SQLite database at this path" type:"path"`
}

func (c *ParseCmd) Run() error {
	result, err := loadResult(c.Verses, c.Notes)
	if err != nil {
		return err
	}

	exporter := &export.Exporter{
		Dir:    c.Output,
		Inputs: []string{c.Verses, c.Notes},
	}
	files, err := exporter.Export(result)
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if c.DB != "" {
		db, err := store.Open(c.DB)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		if err := db.SaveResult(context.Background(), result); err != nil {
			return fmt.Errorf("saving to database: %w", err)
		}
	}

	fmt.Println("Parsing complete.")
	fmt.Printf("  Verses:           %d (%d skipped)\n", result.Stats.VersesLoaded, result.Stats.VersesSkipped)
	fmt.Printf("  Notes:            %d (%d discarded)\n", result.Stats.NotesLoaded, result.Stats.NotesDiscarded)
	fmt.Printf("  Cross-references: %d\n", result.Stats.CrossRefs)
	fmt.Printf("  Themes:           %d\n", result.Stats.Themes)
	fmt.Printf("  Reading plans:    %d\n", result.Stats.Plans)
	if c.DB != "" {
		fmt.Printf("\nDatabase created: %s\n", c.DB)
	}
	fmt.Printf("\nData exported to: %s\n", c.Output)
	for kind, path := range files {
		fmt.Printf("  %s: %s\n", kind, path)
	}
	return nil
}

// AnalyzeCmd parses inputs and prints the connection analysis as JSON.
type AnalyzeCmd struct {
	Verses string `required:"" help:"Path to verse source file" type:"existingfile"`
	Notes  string `required:"" help:"Path to Scofield notes file" type:"existingfile"`
}

func (c *AnalyzeCmd) Run() error {
	result, err := loadResult(c.Verses, c.Notes)
	if err != nil {
		return err
	}
	analysis := pipeline.Analyze(result)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}

// ServeCmd serves the REST API and study browser UI.
type ServeCmd struct {
	Verses  string   `required:"" help:"Path to verse source file" type:"existingfile"`
	Notes   string   `required:"" help:"Path to Scofield notes file" type:"existingfile"`
	Port    int      `default:"8000" help:"Port to listen on"`
	Origins []string `name:"allowed-origins" help:"CORS allowed origins (default: allow all)"`
}

func (c *ServeCmd) Run() error {
	result, err := loadResult(c.Verses, c.Notes)
	if err != nil {
		return err
	}

	apiServer := api.NewServer(api.Config{
		Port:           c.Port,
		AllowedOrigins: c.Origins,
	}, result)

	ui, err := web.Handler()
	if err != nil {
		return err
	}

	apiHandler := apiServer.Handler()
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/ws", apiHandler)
	mux.Handle("/health", apiHandler)
	mux.Handle("/", ui)

	go apiServer.Hub().Run()

	addr := fmt.Sprintf(":%d", c.Port)
	logging.ServerStartup("scofield_study", addr,
		"verses", result.Stats.VersesLoaded,
		"notes", result.Stats.NotesLoaded)
	return http.ListenAndServe(addr, mux)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Printf("scofield %s (sqlite driver: %s/%s)\n", version, info.DriverName, info.DriverType)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scofield"),
		kong.Description("Connected Scofield Bible study pipeline"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}

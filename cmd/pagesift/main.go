package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/goquery"
	pagehttp "github.com/pagesift/pagesift/http"
	pagslog "github.com/pagesift/pagesift/slog"
	"github.com/pagesift/pagesift/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the tracker.
	DB *sqlite.DB

	// Tracker for end-to-end testing.
	Tracker pagesift.Tracker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Library: pagesift.NewLibrary(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesift --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The selected command comes from the parse result rather than args[0];
	// global flags may legally precede the command name.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Engine wiring is cheap and shared by every command.
	resolver := goquery.NewResolver(pagesift.DefaultTypePatterns(), pagesift.NewFormatterRegistry())
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slogLevel(cli.Verbose)}))
	deps.Extractor = pagslog.NewLoggingExtractor(goquery.NewExtractor(resolver), logger)
	deps.Logger = logger

	// The tracker database is opened only for commands that consult it.
	if cmd == "run" || cmd == "sources" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGESIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		tracker, err := sqlite.NewTracker(m.DB)
		if err != nil {
			return fmt.Errorf("failed to load tracker: %w", err)
		}
		m.Tracker = tracker
		deps.Tracker = tracker
	}

	if cmd == "run" {
		fetcher := pagehttp.NewFetcher(pagehttp.WithUserAgent(cli.Run.UserAgent))
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	return kongCtx.Run(deps)
}

func slogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func defaultDBPath() string {
	if path := os.Getenv("PAGESIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagesift.db"
	}
	dir := filepath.Join(home, ".pagesift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagesift.db")
}

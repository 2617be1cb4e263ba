package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/goquery"
	pmhttp "github.com/fwojciec/pagemeta/http"
	"github.com/fwojciec/pagemeta/preview"
	"github.com/fwojciec/pagemeta/rod"
	pmslog "github.com/fwojciec/pagemeta/slog"
	"github.com/fwojciec/pagemeta/sqlite"
	"github.com/fwojciec/pagemeta/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the network fetcher used by extract. Set in tests.
	Fetcher pagemeta.Fetcher
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

// storageCommands are the commands that read or write the preview cache.
var storageCommands = []string{"extract", "list", "show", "delete"}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemeta"),
		kong.Description("Extract link preview metadata from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemeta --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Selected().Name

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Parser = goquery.NewParser()

	deps.Rules = pagemeta.DefaultRules()
	if cli.Rules != "" {
		custom, err := yaml.LoadFile(cli.Rules)
		if err != nil {
			return fmt.Errorf("failed to load rules from %q: %w", cli.Rules, err)
		}
		if cli.ReplaceRules {
			deps.Rules = custom
		} else {
			deps.Rules = pagemeta.MergeRules(deps.Rules, custom)
		}
	}

	if slices.Contains(storageCommands, cmd) && !(cmd == "extract" && cli.Extract.NoStore) {
		if dir := filepath.Dir(m.DBPath); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGEMETA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Previews = pmslog.NewLoggingPreviewService(sqlite.NewPreviewService(m.DB), deps.Logger)
	}

	if cmd == "extract" {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(&cli.Extract); err != nil {
				return err
			}
		}
		defer fetcher.Close()

		ex := preview.NewExtractor(pmslog.NewLoggingFetcher(fetcher, deps.Logger), deps.Parser)
		ex.Rules = deps.Rules
		ex.Previews = deps.Previews
		if cli.Extract.RPS > 0 {
			ex.Limiter = preview.NewDomainLimiter(cli.Extract.RPS)
		}
		if cli.Extract.NoRetry {
			ex.RetryDelays = nil
		}
		deps.Extractor = pmslog.NewLoggingExtractor(ex, deps.Logger)
	}

	return kongCtx.Run(deps)
}

func newFetcher(c *ExtractCmd) (pagemeta.Fetcher, error) {
	if !c.Render {
		return pmhttp.NewFetcher(pmhttp.WithTimeout(c.Timeout)), nil
	}
	f, err := rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	return f, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEMETA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemeta.db"
	}
	return filepath.Join(home, ".pagemeta", "pagemeta.db")
}

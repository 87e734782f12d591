package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/repolens/repolens/config"
	"github.com/repolens/repolens/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "repolens",
		Usage:   "Aggregate and page through commit history across a repository and its submodules",
		Version: "1.0.0",
		Commands: []*cli.Command{
			CollectCmd(),
			PageCmd(),
			ResumeCmd(),
			SessionCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging and detailed output",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.Bool("verbose"))
			return nil
		},
		Action: legacyAction,
	}
}

// setupLogging installs the process-wide structured logger.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to the root Git repository",
			Value:   ".",
		},
		&cli.IntFlag{
			Name:    "page-size",
			Aliases: []string{"s"},
			Usage:   "Entries per page",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns for changed paths to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns for changed paths to exclude (can be specified multiple times)",
		},
		&cli.IntFlag{
			Name:  "jobs",
			Usage: "Maximum repositories collected concurrently",
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "Per-repository collection timeout in seconds (0 disables)",
			Value: -1,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}
}

// parseTimestampFlag parses a resume timestamp, accepting RFC 3339 or
// a bare date.
func parseTimestampFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s (expected RFC 3339 or YYYY-MM-DD)", s)
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults, applying CLI
// overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if size := c.Int("page-size"); size > 0 {
		cfg.Pagination.PageSize = size
	}
	if jobs := c.Int("jobs"); jobs > 0 {
		cfg.Collection.Jobs = jobs
	}
	if c.IsSet("timeout") {
		if timeout := c.Int("timeout"); timeout >= 0 {
			cfg.Collection.TimeoutSeconds = timeout
		}
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}

	return cfg, nil
}

// legacyAction handles the default command behavior: a bare repository
// path argument runs the collect command against it.
func legacyAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	return CollectCmd().Action(c)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

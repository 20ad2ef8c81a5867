// Package check implements the check command: crawl a site from seed
// URLs and report every discovered link's status.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/golinkcheck/internal/config"
	"github.com/jonesrussell/golinkcheck/internal/crawler"
	"github.com/jonesrussell/golinkcheck/internal/fetcher"
	"github.com/jonesrussell/golinkcheck/internal/logger"
	"github.com/jonesrussell/golinkcheck/internal/output"
)

// ErrBrokenLinks is returned when the crawl found broken links, after
// the report has been printed.
var ErrBrokenLinks = errors.New("broken links found")

// Checker wires a crawl run together: configuration, logger, worker
// pool, crawler, and result rendering.
type Checker struct {
	cfg     *config.Config
	logger  logger.Interface
	verbose bool
}

// NewChecker creates a checker from loaded configuration.
func NewChecker(cfg *config.Config, log logger.Interface, verbose bool) *Checker {
	return &Checker{
		cfg:     cfg,
		logger:  log,
		verbose: verbose,
	}
}

// Run crawls the seeds and renders the report. Returns ErrBrokenLinks
// when the report contains broken destinations.
func (c *Checker) Run(cmd *cobra.Command, seeds []string) error {
	checkerCfg := c.cfg.Checker

	workers := checkerCfg.Workers
	if workers <= 0 {
		workers = fetcher.WorkersForSeeds(seeds)
	}

	pool := fetcher.NewPool(fetcher.Config{
		Workers:        workers,
		UserAgent:      checkerCfg.UserAgent,
		RequestTimeout: checkerCfg.RequestTimeout,
		MaxRedirects:   checkerCfg.MaxRedirects,
	}, c.logger)

	crawl, err := crawler.New(crawler.Config{
		Patterns:      checkerCfg.Patterns,
		CheckExternal: checkerCfg.CheckExternal,
		Verbose:       c.verbose,
	}, pool, c.logger)
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	// The progress bar and per-URL debug lines fight over the terminal,
	// so verbose runs skip the bar.
	var progress *output.Progress
	if !c.verbose {
		progress = output.NewProgress(os.Stderr)
		crawl.SetObserver(progress)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	links, crawlErr := crawl.Crawl(ctx, seeds)

	if progress != nil {
		progress.Finish()
	}

	renderer := output.NewRenderer(cmd.OutOrStdout(), checkerCfg.BrokenOnly)
	renderer.RenderTable(links, crawl.Metrics())

	if crawlErr != nil {
		return fmt.Errorf("crawl interrupted: %w", crawlErr)
	}

	if output.HasBroken(links) {
		return ErrBrokenLinks
	}

	return nil
}

// Command returns the check command for use in the root command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [seed URLs...]",
		Short: "Check a site for broken links",
		Long: `Crawl a site starting from the seed URLs and report the status of
every discovered link. URLs matching the given patterns are treated as
internal and crawled; everything else is external.

The command exits non-zero when broken links were found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log, err := logger.New(cfg.LoggerConfig())
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			log = log.With("run_id", uuid.New().String())

			verbose, _ := cmd.Flags().GetBool("verbose")

			return NewChecker(cfg, log, verbose).Run(cmd, args)
		},
	}

	cmd.Flags().StringArrayP("pattern", "p", nil,
		"glob pattern for internal URLs (repeatable)")
	cmd.Flags().Bool("external", false, "also check external links")
	cmd.Flags().Bool("broken-only", false, "report only broken links")
	cmd.Flags().BoolP("verbose", "v", false, "log every check instead of the progress bar")
	cmd.Flags().Int("workers", 0, "worker pool size (default 8, or 4 for local-only seeds)")
	cmd.Flags().Duration("timeout", 0, "per-request timeout")

	bindings := map[string]string{
		"checker.patterns":        "pattern",
		"checker.check_external":  "external",
		"checker.broken_only":     "broken-only",
		"checker.workers":         "workers",
		"checker.request_timeout": "timeout",
	}

	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}

	return cmd
}

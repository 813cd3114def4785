// integrity-report extracts pass/fail/error summaries from Integrity test
// result files and derives a build verdict for CI.
//
// Usage:
//
//	integrity-report [workspace] --pattern '**/*.xml' --build-start 2026-08-26T10:00:00Z
//
// Exit codes: 0 success, 1 failure, 2 unstable.
package main

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dahlj/integrity-report/internal/config"
	"github.com/dahlj/integrity-report/internal/logger"
	"github.com/dahlj/integrity-report/internal/render"
	"github.com/dahlj/integrity-report/internal/version"
	"github.com/dahlj/integrity-report/pkg/batch"
	"github.com/dahlj/integrity-report/pkg/report"
	"github.com/dahlj/integrity-report/pkg/verdict"
)

type cliFlags struct {
	pattern         string
	buildStart      string
	staleMarginMs   int
	ignoreStale     bool
	strict          bool
	ignoreNoResults bool
	workers         int
	logLevel        string
	noColor         bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var flags cliFlags
	exitCode := 0

	root := &cobra.Command{
		Use:           "integrity-report [workspace]",
		Short:         "Aggregate Integrity test result files into a build verdict",
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := "."
			if len(args) == 1 {
				workspace = args[0]
			}
			var err error
			exitCode, err = scan(cmd, workspace, flags)
			return err
		},
	}

	fs := root.Flags()
	fs.StringVarP(&flags.pattern, "pattern", "p", "", "report file glob, e.g. '**/*.xml' (supports $VAR expansion)")
	fs.StringVar(&flags.buildStart, "build-start", "", "build start time (RFC 3339) for the staleness filter")
	fs.IntVar(&flags.staleMarginMs, "stale-margin", 0, "staleness margin in milliseconds")
	fs.BoolVar(&flags.ignoreStale, "ignore-stale", false, "accept report files regardless of age")
	fs.BoolVar(&flags.strict, "strict", false, "fail the build on test problems instead of marking it unstable")
	fs.BoolVar(&flags.ignoreNoResults, "ignore-no-results", false, "do not fail the build when no reports are found")
	fs.IntVar(&flags.workers, "workers", 0, "parse worker count (0 = auto)")
	fs.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logger.Default().Error(err.Error())
		return 1
	}
	return exitCode
}

// scan runs discovery, parsing and rendering and returns the process exit
// code. Errors other than the tolerated "no results" cases are returned.
func scan(cmd *cobra.Command, workspace string, flags cliFlags) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 1, err
	}
	mergeFlags(cfg, cmd, flags)

	log := logger.Setup(cfg.LogLevel)
	log.Info("recording Integrity test results", "workspace", workspace, "pattern", cfg.Pattern)

	opts := report.DiscoverOpts{
		StaleMargin: time.Duration(cfg.StaleMarginMs) * time.Millisecond,
		IgnoreStale: cfg.IgnoreStale,
	}
	if flags.buildStart != "" {
		start, err := time.Parse(time.RFC3339, flags.buildStart)
		if err != nil {
			return 1, errors.Wrap(err, "parsing --build-start")
		}
		opts.BuildStart = start
	} else {
		// No reference from the host: only reports written from now on
		// would pass the filter, which is useless for a post-build scan.
		opts.IgnoreStale = true
	}

	pattern := os.ExpandEnv(cfg.Pattern)

	files, err := report.Discover(workspace, pattern, opts)
	if err != nil {
		noResults := errors.Is(err, report.ErrNoMatch) || errors.Is(err, report.ErrAllStale)
		if noResults && cfg.IgnoreNoResults {
			log.Warn("no test results found, not failing the build as configured", "cause", err)
			return verdict.Success.ExitCode(), nil
		}
		return 1, err
	}

	tree, err := batch.Run(files, batch.Options{
		Root:     workspace,
		Workers:  cfg.Workers,
		Entities: cfg.Entities,
		Log:      log,
	})
	if err != nil {
		return 1, err
	}

	v := verdict.Evaluate(tree.Aggregate(), tree.Len(), verdict.Options{
		Strict:          cfg.Strict,
		IgnoreNoResults: cfg.IgnoreNoResults,
	})

	theme := render.DefaultTheme()
	if flags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		theme = render.MonoTheme()
	}
	render.New(cmd.OutOrStdout(), theme).Tree(tree, v)

	return v.ExitCode(), nil
}

// mergeFlags overlays explicitly-set CLI flags onto the file config.
func mergeFlags(cfg *config.AppConfig, cmd *cobra.Command, flags cliFlags) {
	if flags.pattern != "" {
		cfg.Pattern = flags.pattern
	}
	if cmd.Flags().Changed("stale-margin") {
		cfg.StaleMarginMs = flags.staleMarginMs
	}
	if cmd.Flags().Changed("ignore-stale") {
		cfg.IgnoreStale = flags.ignoreStale
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	if cmd.Flags().Changed("ignore-no-results") {
		cfg.IgnoreNoResults = flags.ignoreNoResults
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wsous/hibernate-orm-fork/compiler/gen"
	"github.com/wsous/hibernate-orm-fork/compiler/load"
)

const (
	envTarget  = "FINDERGEN_TARGET"
	envWorkers = "FINDERGEN_WORKERS"
)

// options are the flags shared by generate and watch.
type options struct {
	config   string
	target   string
	workers  int
	features []string
	header   string
	verbose  bool
}

func (o *options) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.config, "config", "c", "findergen.yaml", "Repository descriptor file")
	cmd.Flags().StringVarP(&o.target, "target", "o", os.Getenv(envTarget), "Output directory (env "+envTarget+")")
	cmd.Flags().IntVar(&o.workers, "workers", envInt(envWorkers), "Units generated in parallel, 0 for GOMAXPROCS (env "+envWorkers+")")
	cmd.Flags().StringSliceVar(&o.features, "feature", nil, "Enable a feature (repeatable)")
	cmd.Flags().StringVar(&o.header, "header", "", "Comment written at the top of every generated file")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Log debug records")
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *options) genConfig(log *slog.Logger) (*gen.Config, error) {
	return gen.NewConfig(
		gen.WithTarget(o.target),
		gen.WithWorkers(o.workers),
		gen.WithFeatureNames(o.features...),
		gen.WithHeader(o.header),
		gen.WithLogger(log),
	)
}

func generateCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate finder implementations once",
		Long: `Generate reads the descriptor and writes one class per repository.

Finders failing their checks are reported and left out of the generated
class; the command then exits with an error after writing everything else.

Usage:
  findergen generate -c repos.yaml -o build/generated
  findergen generate --feature incremental --feature nonnull`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := run(cmd.Context(), o, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d finder(s) could not be generated", len(report.Failures))
			}
			return nil
		},
	}
	o.register(cmd)
	return cmd
}

// run performs a single generation pass.
func run(ctx context.Context, o *options, logOut io.Writer) (*gen.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := o.logger(logOut)
	cfg, err := o.genConfig(log)
	if err != nil {
		return nil, err
	}
	f, err := load.Load(o.config)
	if err != nil {
		return nil, err
	}
	repos, err := gen.NewRepositories(f)
	if err != nil {
		return nil, err
	}
	log.Debug("descriptor loaded", "path", f.Path, "repositories", len(repos))
	return gen.Generate(ctx, cfg, repos)
}

func printReport(w io.Writer, report *gen.Report) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	for _, u := range report.Units {
		status := ok("OK  ")
		if len(u.Failures) > 0 {
			status = bad("FAIL")
		}
		fmt.Fprintf(w, "%s %s (%d finders)\n", status, u.Path(), len(u.Methods))
		for _, err := range u.Failures {
			fmt.Fprintf(w, "     %s\n", color.New(color.FgYellow).Sprint(err))
		}
	}
}

func envInt(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return n
}

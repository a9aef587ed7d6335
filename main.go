package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ansel1/tapfail/engine"
	"github.com/ansel1/tapfail/output"
	"github.com/ansel1/tapfail/output/format"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// errTestsFailed signals a clean run that reported failures
var errTestsFailed = errors.New("tests failed")

type options struct {
	infile  string
	outfile string
	color   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tapfail",
		Short: "Summarize failing assertions from a test event stream",
		Long: `tapfail reads test and assertion events as JSON lines and prints
a colorized summary of the failures: value diffs for unit test
assertions and file/line details for linter diagnostics.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.infile, "file", "f", "", "Read from file instead of stdin")
	flags.StringVar(&opts.outfile, "outfile", "", "Save all input to the specified file")
	flags.StringVar(&opts.color, "color", string(format.ColorAuto), "Colorize output: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug information to stderr")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	logger := log.New(cmd.ErrOrStderr())
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	mode, err := format.ParseColorMode(opts.color)
	if err != nil {
		return err
	}

	var input io.Reader = cmd.InOrStdin()
	if opts.infile != "" {
		f, err := os.Open(opts.infile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		input = f
	}

	engineOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.outfile != "" {
		f, err := os.Create(opts.outfile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		engineOpts = append(engineOpts, engine.WithRawOutput(f))
	}

	out := cmd.OutOrStdout()
	reporter := output.NewReporter(
		output.WithRenderer(format.NewRenderer(format.NewStyler(out, mode))),
		output.WithLogger(logger),
	)

	events := engine.NewEngine(engineOpts...).Stream(input)
	if err := reporter.WriteTo(out, events); err != nil {
		return fmt.Errorf("processing events: %w", err)
	}

	if reporter.HasFailures() {
		return errTestsFailed
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/pycheck/formatter"
	tt "github.com/gnolang/pycheck/internal/types"
	"github.com/gnolang/pycheck/lint"
)

// stdinName is the path reported for source read from standard input.
const stdinName = "<stdin>"

var (
	ignorePaths    string
	lintJsonOutput bool
	outputFormat   string
	outPath        string
	recursive      bool
	jobs           int
	showProgress   bool
	colorMode      string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the style checks",
	Long: `Checks Python files for style issues. File arguments must end in .py;
directory arguments contribute the .py files they contain. Use - to read
source from standard input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("please provide file or directory paths")
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := loadConfig(cfgFile)
		if err != nil {
			logger.Error("Failed to load configuration", zap.Error(err))
			return err
		}
		if cmd.Flags().Changed("recursive") {
			config.Recursive = recursive
		}
		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				config.IgnorePaths = append(config.IgnorePaths, strings.TrimSpace(path))
			}
		}

		opts := lintOptions{
			config:   config,
			format:   outputFormat,
			output:   outPath,
			jobs:     jobs,
			progress: showProgress,
		}
		if lintJsonOutput {
			opts.format = string(formatter.FormatJSON)
		}
		if err := applyColorMode(colorMode, outPath != ""); err != nil {
			return err
		}

		found, err := runLintProcess(ctx, logger, lint.New(), args, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			return err
		}
		if found {
			_ = logger.Sync()
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	registerLintFlags(lintCmd)
}

func registerLintFlags(c *cobra.Command) {
	c.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path patterns to ignore")
	c.Flags().BoolVar(&lintJsonOutput, "json", false, "Output violations in JSON format (same as --format json)")
	c.Flags().StringVarP(&outputFormat, "format", "f", string(formatter.FormatText), "Output format: text, json or pretty")
	c.Flags().StringVarP(&outPath, "output", "o", "", "Write the report to a file instead of stdout")
	c.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	c.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of files processed in parallel (default: number of CPUs)")
	c.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")
	c.Flags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, always or never")
}

type lintOptions struct {
	config   lint.Config
	format   string
	output   string
	jobs     int
	progress bool
}

// runLintProcess analyzes paths and writes the report. It returns true when
// any violation or file-scoped failure was found.
func runLintProcess(
	ctx context.Context,
	logger *zap.Logger,
	engine lint.LintEngine,
	paths []string,
	opts lintOptions,
	stdin io.Reader,
	stdout, stderr io.Writer,
) (bool, error) {
	format, err := formatter.ParseFormat(opts.format)
	if err != nil {
		return false, err
	}

	var run *tt.AnalysisRun
	if len(paths) == 1 && paths[0] == lint.StdinPath {
		source, err := io.ReadAll(stdin)
		if err != nil {
			return false, fmt.Errorf("error reading standard input: %w", err)
		}
		run, err = lint.ProcessSource(ctx, engine, stdinName, source)
		if err != nil {
			return false, err
		}
	} else {
		lintOpts := lint.Options{
			Scanner: opts.config.NewScanner(),
			Jobs:    opts.jobs,
		}
		if opts.progress {
			lintOpts.Progress = stderr
		}
		run, err = lint.ProcessFiles(ctx, logger, engine, paths, lintOpts)
		if err != nil {
			return false, err
		}
	}

	out := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return false, fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := formatter.Write(out, run, format); err != nil {
		return false, fmt.Errorf("error writing report: %w", err)
	}
	if format != formatter.FormatJSON {
		if err := formatter.WriteFailures(stderr, run); err != nil {
			return false, err
		}
	}

	return run.ViolationCount() > 0 || len(run.Failures) > 0, nil
}

// loadConfig reads the configuration file. A missing file at the default
// location means defaults; a missing explicit file is an error.
func loadConfig(path string) (lint.Config, error) {
	if path != "" {
		return lint.LoadConfig(path)
	}
	config, err := lint.LoadConfig(lint.DefaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return lint.DefaultConfig(), nil
	}
	return config, err
}

func applyColorMode(mode string, toFile bool) error {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		if toFile {
			color.NoColor = true
		}
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

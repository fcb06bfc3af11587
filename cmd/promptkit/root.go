package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roberthamel/promptkit/internal/config"
	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/facts"
	"github.com/roberthamel/promptkit/internal/ledger"
	"github.com/roberthamel/promptkit/internal/logger"
	"github.com/roberthamel/promptkit/internal/output"
	"github.com/roberthamel/promptkit/internal/scanner"
)

// app carries per-invocation state shared by the subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	verbose bool
	quiet   bool

	log   *logger.Logger
	runID string
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "promptkit",
		Short:         "Build ready-to-paste prompts from a local project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			mode := ""
			if a.verbose {
				mode = "debug"
			}
			log, err := logger.New(mode)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			a.runID = ledger.NewRunID()
			a.log = log
			return nil
		},
	}

	pf := root.PersistentFlags()
	config.RegisterFlags(pf)
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "print only the saved file path")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.Usage(err.Error())
	})

	root.AddCommand(
		a.featureCmd(),
		a.portfolioCmd(),
		a.proposalCmd(),
		a.docsCmd(),
		a.marketCmd(),
		a.scanCmd(),
		a.templatesCmd(),
		a.historyCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) close() {
	if a.log != nil {
		a.log.Sync()
	}
}

func (a *app) logOrNop() *logger.Logger {
	if a.log == nil {
		return logger.Nop()
	}
	return a.log
}

// settings resolves configuration for cmd, honoring its flags.
func (a *app) settings(cmd *cobra.Command) (*config.Resolved, error) {
	cfg, err := config.Resolve(cmd.Flags())
	if err != nil {
		return nil, apperrors.Usage(err.Error())
	}
	return cfg, nil
}

// newScanner leaves the output directory and the ledger out of scans, so
// earlier prompts never feed back into a project's snapshot.
func newScanner(cfg *config.Resolved, log *logger.Logger) *scanner.Scanner {
	return scanner.New(scanner.Options{
		CodeExtensions: cfg.CodeExtensions,
		ExcludeDirs:    []string{cfg.OutputDir},
		ExcludeNames:   []string{ledger.FileName},
	}, log)
}

func factOptions(cfg *config.Resolved) facts.Options {
	return facts.Options{
		MaxLength: cfg.MaxLength,
		Identity: facts.Identity{
			Author:     cfg.Author,
			GitHubUser: cfg.GitHubUser,
			GitHubURL:  cfg.GitHubURL,
		},
	}
}

func newWriter(cfg *config.Resolved) output.Writer {
	return output.Writer{Dir: cfg.OutputDir, Clock: output.SystemUTC{}}
}

// usageArgs turns cobra argument validation failures into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return apperrors.Usage(err.Error())
		}
		return nil
	}
}

// readText returns the free text from --file (or stdin for "-"), falling
// back to the joined positional arguments.
func (a *app) readText(file string, args []string) (string, error) {
	switch file {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		if len(args) > 0 {
			return "", apperrors.Usage("pass the text as arguments or on standard input, not both")
		}
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", apperrors.Internal("reading standard input", err)
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return "", apperrors.Usage("pass the text as arguments or with --file, not both")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.New(apperrors.KindNotFound, fmt.Sprintf("input file %q not found", file), err)
		}
		return "", apperrors.Internal(fmt.Sprintf("reading %s", file), err)
	}
	return string(data), nil
}

func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

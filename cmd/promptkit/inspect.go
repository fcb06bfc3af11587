package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roberthamel/promptkit/internal/console"
	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/ledger"
	"github.com/roberthamel/promptkit/internal/render"
)

func (a *app) scanCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "scan [project-dir]",
		Short: "Print the snapshot of a project without writing a prompt",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			snap, err := newScanner(cfg, a.logOrNop()).Scan(cmd.Context(), projectArg(args))
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "yaml", "yml":
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return apperrors.Internal("encoding snapshot", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			default:
				return apperrors.Usage(fmt.Sprintf("unknown format %q (valid formats: yaml, json)", format))
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func (a *app) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and inspect the prompt templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List templates and the facts each one requires",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range render.Templates() {
				fmt.Fprintf(a.out, "%-16s %s\n", t.ID, t.Summary)
				console.Muted(a.out, "%-16s requires: %s", "", strings.Join(t.Required, ", "))
			}
			return nil
		},
	}

	var pretty bool
	var width int
	show := &cobra.Command{
		Use:   "show <template>",
		Short: "Print a template body",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := render.Lookup(args[0])
			if err != nil {
				return err
			}
			if !pretty {
				_, err := fmt.Fprintln(a.out, t.Body)
				return err
			}
			out, err := console.RenderMarkdown(t.Body, width)
			if err != nil {
				return apperrors.Internal("rendering template", err)
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}
	show.Flags().BoolVar(&pretty, "render", false, "render the template as formatted markdown")
	show.Flags().IntVar(&width, "width", 80, "word-wrap width for --render")

	cmd.AddCommand(list, show)
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List prompts previously written to the output directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd)
			if err != nil {
				return err
			}
			l, err := ledger.Load(cfg.OutputDir)
			if err != nil {
				return apperrors.Internal("loading history", err)
			}
			entries := l.Recent(limit)
			if len(entries) == 0 {
				console.Muted(a.out, "No prompts written to %s yet", cfg.OutputDir)
				return nil
			}
			console.Heading(a.out, fmt.Sprintf("Prompts in %s", cfg.OutputDir))
			for _, e := range entries {
				fmt.Fprintf(a.out, "%s  %-16s %s\n", e.Timestamp, e.TemplateID, e.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show (0 for all)")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roberthamel/promptkit/internal/facts"
	"github.com/roberthamel/promptkit/internal/output"
	"github.com/roberthamel/promptkit/internal/pipeline"
	"github.com/roberthamel/promptkit/internal/render"
)

// generate runs the pipeline for one template and reports the result.
func (a *app) generate(cmd *cobra.Command, id render.TemplateID, project string, in facts.Inputs) error {
	cfg, err := a.settings(cmd)
	if err != nil {
		return err
	}
	log := a.logOrNop()

	p := &pipeline.Pipeline{
		Scanner:  newScanner(cfg, log),
		FactOpts: factOptions(cfg),
		Writer:   newWriter(cfg),
		RunID:    a.runID,
		Log:      log,
	}
	res, err := p.Run(cmd.Context(), pipeline.Request{
		TemplateID:  string(id),
		ProjectPath: project,
		Inputs:      in,
	})
	if err != nil {
		return err
	}

	if a.quiet {
		_, err = fmt.Fprintln(a.out, res.Path)
		return err
	}
	return output.Echo(a.out, res.Path, res.Prompt.Text)
}

func (a *app) featureCmd() *cobra.Command {
	var file, project string
	cmd := &cobra.Command{
		Use:   "feature [text...]",
		Short: "Generate a feature-planning prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(file, args)
			if err != nil {
				return err
			}
			return a.generate(cmd, render.TemplateFeature, project, facts.Inputs{FeatureText: text})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the feature request from a file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&project, "project", "p", ".", "project directory to scan")
	return cmd
}

func (a *app) portfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [project-dir]",
		Short: "Generate a portfolio-entry prompt for a project",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, render.TemplatePortfolio, projectArg(args), facts.Inputs{})
		},
	}
}

func (a *app) proposalCmd() *cobra.Command {
	var file, project string
	cmd := &cobra.Command{
		Use:   "proposal [job-text...]",
		Short: "Generate a client-proposal prompt for a job posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readText(file, args)
			if err != nil {
				return err
			}
			return a.generate(cmd, render.TemplateProposal, project, facts.Inputs{JobText: text})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the job posting from a file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&project, "project", "p", ".", "project directory whose skills are matched")
	return cmd
}

func (a *app) docsCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "docs [project-dir]",
		Short: "Generate a documentation prompt for a project",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, render.TemplateDocs, projectArg(args), facts.Inputs{DocsTarget: target})
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "path of the document to produce, e.g. docs/DEPLOY.md")
	return cmd
}

func (a *app) marketCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:     "market",
		Aliases: []string{"market-research"},
		Short:   "Generate a market-research prompt for the detected skill set",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, render.TemplateMarketResearch, project, facts.Inputs{})
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", ".", "project directory whose skills are matched")
	return cmd
}

// Package pipeline runs one prompt generation: scan the project, extract
// facts, render the template, write the file. Every stage gets its inputs
// from the previous one; nothing is shared between runs.
package pipeline

import (
	"context"

	"github.com/roberthamel/promptkit/internal/facts"
	"github.com/roberthamel/promptkit/internal/ledger"
	"github.com/roberthamel/promptkit/internal/logger"
	"github.com/roberthamel/promptkit/internal/output"
	"github.com/roberthamel/promptkit/internal/render"
	"github.com/roberthamel/promptkit/internal/snapshot"
)

// Scanner produces a snapshot of a project directory.
type Scanner interface {
	Scan(ctx context.Context, root string) (*snapshot.ProjectSnapshot, error)
}

// Request describes one generation.
type Request struct {
	TemplateID  string
	ProjectPath string
	Inputs      facts.Inputs
}

// Result is what a successful run produced.
type Result struct {
	Path     string
	Prompt   *render.RenderedPrompt
	Snapshot *snapshot.ProjectSnapshot
	Facts    facts.Facts
}

// Pipeline wires the four stages together.
type Pipeline struct {
	Scanner  Scanner
	FactOpts facts.Options
	Writer   output.Writer
	RunID    string
	Log      *logger.Logger

	// Extract builds the facts from a snapshot; nil uses facts.Extract.
	Extract func(*snapshot.ProjectSnapshot, facts.Inputs, facts.Options) facts.Facts
}

// Run executes the pipeline. The template id is checked before the scan,
// and no file is written unless rendering succeeded.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	log := p.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("template", req.TemplateID, "run_id", p.RunID)

	if _, err := render.Lookup(req.TemplateID); err != nil {
		return nil, err
	}

	snap, err := p.Scanner.Scan(ctx, req.ProjectPath)
	if err != nil {
		return nil, err
	}
	log.Debug("project scanned", "path", snap.Path, "total_files", snap.TotalFileCount, "code_files", snap.CodeFileCount)

	if req.Inputs.Now.IsZero() {
		clock := p.Writer.Clock
		if clock == nil {
			clock = output.SystemUTC{}
		}
		req.Inputs.Now = clock.NowUTC()
	}
	extract := p.Extract
	if extract == nil {
		extract = facts.Extract
	}
	f := extract(snap, req.Inputs, p.FactOpts)

	prompt, err := render.Render(req.TemplateID, f)
	if err != nil {
		return nil, err
	}

	path, err := p.Writer.Write(prompt)
	if err != nil {
		return nil, err
	}
	log.Info("prompt written", "path", path, "bytes", len(prompt.Text))

	entry := ledger.Entry{
		RunID:      p.RunID,
		TemplateID: string(prompt.TemplateID),
		Path:       path,
		OutputHash: ledger.HashOutput(prompt.Text),
		Project:    snap.Path,
	}
	if err := ledger.Record(p.Writer.Dir, entry); err != nil {
		log.Warn("prompt written but ledger not updated", "path", path, "error", err)
	}

	return &Result{Path: path, Prompt: prompt, Snapshot: snap, Facts: f}, nil
}

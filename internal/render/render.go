package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/facts"
)

// TemplateID names one of the fixed prompt templates.
type TemplateID string

const (
	TemplateFeature        TemplateID = "feature"
	TemplatePortfolio      TemplateID = "portfolio"
	TemplateProposal       TemplateID = "proposal"
	TemplateDocs           TemplateID = "docs"
	TemplateMarketResearch TemplateID = "market-research"
)

// AllTemplates lists every template in display order.
var AllTemplates = []TemplateID{
	TemplateFeature,
	TemplatePortfolio,
	TemplateProposal,
	TemplateDocs,
	TemplateMarketResearch,
}

// Template is a fixed prompt body with the placeholders it requires.
type Template struct {
	ID       TemplateID
	Summary  string
	Body     string
	Required []string
}

var templates = map[TemplateID]Template{
	TemplateFeature: {
		ID:       TemplateFeature,
		Summary:  "Plan a new feature for the project",
		Body:     FeaturePrompt,
		Required: []string{facts.FeatureRequest, facts.ProjectName, facts.Skills, facts.GeneratedOn},
	},
	TemplatePortfolio: {
		ID:      TemplatePortfolio,
		Summary: "Upwork portfolio entry for a project",
		Body:    PortfolioPrompt,
		Required: []string{
			facts.ProjectName, facts.Description, facts.TotalFiles, facts.CodeFiles,
			facts.Skills, facts.Author, facts.GitHubURL,
		},
	},
	TemplateProposal: {
		ID:       TemplateProposal,
		Summary:  "Client proposal for a job posting",
		Body:     ProposalPrompt,
		Required: []string{facts.JobDescription, facts.Skills, facts.Author, facts.GitHubURL},
	},
	TemplateDocs: {
		ID:      TemplateDocs,
		Summary: "Project documentation",
		Body:    DocsPrompt,
		Required: []string{
			facts.ProjectName, facts.ProjectPath, facts.Description, facts.TotalFiles,
			facts.CodeFiles, facts.Skills, facts.DocsTarget,
		},
	},
	TemplateMarketResearch: {
		ID:       TemplateMarketResearch,
		Summary:  "Market research for the detected skill set",
		Body:     MarketResearchPrompt,
		Required: []string{facts.Skills, facts.Author, facts.GeneratedOn},
	},
}

var placeholderRe = regexp.MustCompile(`\{\{([a-z][a-z0-9_]*)\}\}`)

// RenderedPrompt is a template with every placeholder resolved.
type RenderedPrompt struct {
	TemplateID TemplateID
	Text       string
}

// Lookup returns the template for id, or an UnknownTemplate error that
// suggests close matches.
func Lookup(id string) (Template, error) {
	t, ok := templates[TemplateID(id)]
	if ok {
		return t, nil
	}
	msg := fmt.Sprintf("unknown template %q (valid templates: %s)", id, strings.Join(ids(), ", "))
	if s := suggest(id); s != "" {
		msg += fmt.Sprintf("; did you mean %q?", s)
	}
	return Template{}, apperrors.UnknownTemplate(msg)
}

// Templates returns every template in display order.
func Templates() []Template {
	out := make([]Template, 0, len(AllTemplates))
	for _, id := range AllTemplates {
		out = append(out, templates[id])
	}
	return out
}

// Placeholders returns the distinct placeholder names in body, sorted.
func Placeholders(body string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	sort.Strings(out)
	return out
}

// Missing returns the required placeholders absent from f, sorted.
func (t Template) Missing(f facts.Facts) []string {
	var missing []string
	for _, name := range t.Required {
		if _, ok := f[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Render resolves template id against f. Every required placeholder must
// be present in f; substitution is a single literal pass, so values that
// themselves look like placeholders are never expanded.
func Render(id string, f facts.Facts) (*RenderedPrompt, error) {
	t, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(f); len(missing) > 0 {
		return nil, apperrors.MissingRequiredFact(fmt.Sprintf(
			"template %q is missing required facts: %s", id, strings.Join(missing, ", ")))
	}

	pairs := make([]string, 0, len(t.Required)*2)
	for _, name := range t.Required {
		pairs = append(pairs, "{{"+name+"}}", f[name])
	}
	text := strings.NewReplacer(pairs...).Replace(t.Body)

	return &RenderedPrompt{TemplateID: t.ID, Text: text}, nil
}

func ids() []string {
	out := make([]string, len(AllTemplates))
	for i, id := range AllTemplates {
		out[i] = string(id)
	}
	return out
}

func suggest(id string) string {
	if strings.TrimSpace(id) == "" {
		return ""
	}
	matches := fuzzy.Find(strings.ToLower(id), ids())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

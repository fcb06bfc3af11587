// Package facts turns a project snapshot and free-text inputs into the flat
// placeholder mapping consumed by the renderer. Extraction is pure: it does
// no I/O and reads the clock only through Inputs.Now.
package facts

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/roberthamel/promptkit/internal/snapshot"
)

// Placeholder names produced by Extract.
const (
	ProjectName    = "project_name"
	ProjectPath    = "project_path"
	Description    = "description"
	TotalFiles     = "total_files"
	CodeFiles      = "code_files"
	Skills         = "skills"
	JobDescription = "job_description"
	FeatureRequest = "feature_request"
	DocsTarget     = "docs_target"
	Author         = "author"
	GitHubUser     = "github_user"
	GitHubURL      = "github_url"
	GeneratedOn    = "generated_on"
)

// Fallback values. Each one is distinct from any genuine empty extraction.
const (
	FallbackDescription      = snapshot.NoDescription
	FallbackEmptyDescription = "README found but empty"
	FallbackSkills           = "No specific skills detected"
	FallbackJob              = "No job description provided"
	FallbackFeature          = "No feature description provided"
	FallbackDocsTarget       = "No documentation target provided"
	FallbackProject          = "No project scanned"
	FallbackAuthor           = "Unknown author"
	FallbackGitHub           = "No GitHub profile configured"
)

// TruncationMarker is appended to values cut at Options.MaxLength.
const TruncationMarker = " … [truncated]"

// DefaultMaxLength bounds each fact value, in runes.
const DefaultMaxLength = 4000

// Facts maps placeholder names to their values.
type Facts map[string]string

// Inputs are the externally supplied free-text values.
type Inputs struct {
	JobText     string
	FeatureText string
	DocsTarget  string
	Now         time.Time
}

// Identity is the author information stamped into portfolio, proposal and
// market prompts.
type Identity struct {
	Author     string
	GitHubUser string
	GitHubURL  string
}

// Options tunes extraction. MaxLength caps every fact in runes; zero
// means DefaultMaxLength.
type Options struct {
	MaxLength int
	Identity  Identity
}

// Extract builds the fact mapping. snap may be nil when no project was
// scanned; project facts then resolve to FallbackProject.
func Extract(snap *snapshot.ProjectSnapshot, in Inputs, opts Options) Facts {
	limit := opts.MaxLength
	if limit <= 0 {
		limit = DefaultMaxLength
	}
	f := Facts{}
	set := func(key, value, fallback string) {
		value = strings.TrimSpace(value)
		if value == "" {
			value = fallback
		}
		f[key] = Truncate(value, limit)
	}

	if snap == nil {
		for _, k := range []string{ProjectName, ProjectPath, Description, TotalFiles, CodeFiles} {
			f[k] = FallbackProject
		}
		f[Skills] = FallbackSkills
	} else {
		set(ProjectName, projectName(snap), FallbackProject)
		set(ProjectPath, snap.Path, FallbackProject)
		set(Description, description(snap), FallbackEmptyDescription)
		f[TotalFiles] = strconv.Itoa(snap.TotalFileCount)
		f[CodeFiles] = strconv.Itoa(snap.CodeFileCount)
		set(Skills, strings.Join(snap.Tags(), ", "), FallbackSkills)
	}

	set(JobDescription, in.JobText, FallbackJob)
	set(FeatureRequest, in.FeatureText, FallbackFeature)
	set(DocsTarget, in.DocsTarget, FallbackDocsTarget)

	set(Author, opts.Identity.Author, FallbackAuthor)
	set(GitHubUser, opts.Identity.GitHubUser, FallbackGitHub)
	url := opts.Identity.GitHubURL
	if strings.TrimSpace(url) == "" && strings.TrimSpace(opts.Identity.GitHubUser) != "" {
		url = "https://github.com/" + strings.TrimSpace(opts.Identity.GitHubUser)
	}
	set(GitHubURL, url, FallbackGitHub)

	now := in.Now
	if now.IsZero() {
		f[GeneratedOn] = "unknown date"
	} else {
		f[GeneratedOn] = now.UTC().Format("2006-01-02")
	}
	return f
}

func projectName(snap *snapshot.ProjectSnapshot) string {
	if t := strings.TrimSpace(snap.Title); t != "" {
		return t
	}
	return filepath.Base(snap.Path)
}

// description distinguishes a missing README from an empty one.
func description(snap *snapshot.ProjectSnapshot) string {
	if !snap.HasDescription() {
		return FallbackDescription
	}
	return snap.Description()
}

// Truncate shortens s to at most limit runes plus TruncationMarker. The cut
// falls on the last whitespace in the final quarter of the window when
// there is one, so words are not split.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	cut := limit
	for i := limit; i > limit-limit/4 && i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace) + TruncationMarker
}

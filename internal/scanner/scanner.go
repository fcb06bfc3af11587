package scanner

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/logger"
	"github.com/roberthamel/promptkit/internal/readme"
	"github.com/roberthamel/promptkit/internal/snapshot"
)

// DefaultCodeExtensions are the file suffixes counted as source code.
var DefaultCodeExtensions = []string{
	".go", ".py", ".js", ".jsx", ".mjs", ".ts", ".tsx", ".java", ".kt",
	".c", ".h", ".cc", ".cpp", ".hpp", ".rs", ".rb", ".php", ".swift",
	".cs", ".sh", ".html", ".css", ".scss", ".vue", ".sql",
}

// sampleExtras are non-code files worth reading for content signals.
var sampleExtras = map[string]bool{
	".json": true, ".yml": true, ".yaml": true, ".toml": true, ".txt": true,
	".md": true, ".cfg": true, ".ini": true, ".xml": true, ".gradle": true, ".mod": true,
}

// pruneSample lists directories whose files are counted but never sampled.
var pruneSample = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, "dist": true, "build": true,
	"target": true, ".venv": true, "venv": true, "__pycache__": true, ".next": true,
}

// Options controls what the scanner counts and samples.
type Options struct {
	CodeExtensions []string
	Signals        []Signal
	MaxSampleFiles int
	MaxSampleBytes int64

	// ExcludeDirs are directories left out of the walk entirely, such as
	// the prompt output directory. Relative paths resolve against the
	// working directory.
	ExcludeDirs []string
	// ExcludeNames are file base names never counted or sampled.
	ExcludeNames []string
}

// Scanner walks a project directory and builds a snapshot.
type Scanner struct {
	opts      Options
	log       *logger.Logger
	skipDirs  map[string]bool
	skipNames map[string]bool
}

// New creates a scanner, filling unset options with defaults.
func New(opts Options, log *logger.Logger) *Scanner {
	if len(opts.CodeExtensions) == 0 {
		opts.CodeExtensions = DefaultCodeExtensions
	}
	opts.CodeExtensions = NormalizeExtensions(opts.CodeExtensions)
	if opts.Signals == nil {
		opts.Signals = DefaultSignals
	}
	if opts.MaxSampleFiles <= 0 {
		opts.MaxSampleFiles = 200
	}
	if opts.MaxSampleBytes <= 0 {
		opts.MaxSampleBytes = 64 * 1024
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Scanner{opts: opts, log: log, skipDirs: map[string]bool{}, skipNames: map[string]bool{}}
	for _, d := range opts.ExcludeDirs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		if abs, err := filepath.Abs(d); err == nil {
			s.skipDirs[abs] = true
		}
	}
	for _, n := range opts.ExcludeNames {
		if n != "" {
			s.skipNames[n] = true
		}
	}
	return s
}

// NormalizeExtensions lowercases suffixes, adds a leading dot to bare
// extensions and drops blanks and duplicates. Comma-separated entries are
// split, so "go,py" and []string{".go", ".py"} are equivalent.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, raw := range exts {
		for _, e := range strings.Split(raw, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") && !strings.ContainsAny(e, "._") {
				e = "." + e
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// Scan walks root and returns its snapshot. It returns a NotFound error if
// root does not exist or is not a directory. Cancelling ctx stops the walk
// between entries and returns the context error.
func (s *Scanner) Scan(ctx context.Context, root string) (*snapshot.ProjectSnapshot, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.NotFound(root, err)
	}
	info, err := os.Stat(rootAbs)
	if err != nil {
		return nil, apperrors.NotFound(root, err)
	}
	if !info.IsDir() {
		return nil, apperrors.NotFound(root, nil)
	}

	var (
		total, code int
		sampled     int
		matched     = make([]bool, len(s.opts.Signals))
	)

	err = filepath.WalkDir(rootAbs, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == rootAbs {
				return walkErr
			}
			s.log.Debug("skipping unreadable entry", "path", path, "error", walkErr)
			return nil
		}
		if entry.IsDir() {
			if path != rootAbs && s.skipDirs[path] {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || s.skipNames[entry.Name()] {
			return nil
		}

		rel, err := filepath.Rel(rootAbs, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		base := entry.Name()
		lowerBase := strings.ToLower(base)

		total++
		if s.isCode(lowerBase) {
			code++
		}

		for i, sig := range s.opts.Signals {
			if !matched[i] && sig.matchName(rel, base) {
				matched[i] = true
			}
		}

		if sampled < s.opts.MaxSampleFiles && s.shouldSample(rel, lowerBase) && s.pendingContent(matched) {
			sampled++
			content, err := readHead(path, s.opts.MaxSampleBytes)
			if err != nil {
				s.log.Debug("skipping unreadable sample", "path", rel, "error", err)
				return nil
			}
			lowered := strings.ToLower(content)
			for i, sig := range s.opts.Signals {
				if !matched[i] && sig.matchContent(lowered) {
					matched[i] = true
				}
			}
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.NotFound(root, err)
	}

	var tags []string
	for i, ok := range matched {
		if ok {
			tags = append(tags, s.opts.Signals[i].Tag)
		}
	}

	descFile, desc, title := s.readDescription(rootAbs)

	s.log.Debug("scanned project",
		"path", rootAbs,
		"total_files", total,
		"code_files", code,
		"sampled_files", sampled,
		"skill_tags", tags,
	)

	return snapshot.New(rootAbs, total, code, descFile, desc, title, tags), nil
}

func (s *Scanner) isCode(lowerBase string) bool {
	for _, ext := range s.opts.CodeExtensions {
		if strings.HasSuffix(lowerBase, ext) {
			return true
		}
	}
	return false
}

func (s *Scanner) shouldSample(rel, lowerBase string) bool {
	for _, part := range strings.Split(rel, "/") {
		if pruneSample[part] {
			return false
		}
	}
	if s.isCode(lowerBase) {
		return true
	}
	return sampleExtras[filepath.Ext(lowerBase)]
}

// pendingContent reports whether any content-based signal is still unmatched.
func (s *Scanner) pendingContent(matched []bool) bool {
	for i, sig := range s.opts.Signals {
		if !matched[i] && len(sig.Contents) > 0 {
			return true
		}
	}
	return false
}

// readDescription returns the first description file found in root.
func (s *Scanner) readDescription(root string) (string, *string, string) {
	for _, name := range readme.Candidates {
		p := filepath.Join(root, name)
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			s.log.Warn("description file unreadable", "path", p, "error", err)
			continue
		}
		doc, err := readme.ParseBytes(data)
		if err != nil {
			s.log.Debug("description file has malformed frontmatter", "path", p, "error", err)
			text := strings.TrimSpace(string(data))
			return name, &text, ""
		}
		text := doc.Body
		if text == "" {
			text = doc.Summary()
		}
		return name, &text, doc.Title
	}
	return "", nil, ""
}

func readHead(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

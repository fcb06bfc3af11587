package readme

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Candidates lists the description file names looked up in a project root,
// in priority order.
var Candidates = []string{"README.md", "README", "README.txt", "README.rst", "readme.md"}

// Document is a parsed project description file.
type Document struct {
	Frontmatter Frontmatter
	Title       string
	Body        string // content after the frontmatter, trimmed
}

// Frontmatter holds the optional YAML header some READMEs carry.
type Frontmatter struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ParseBytes parses a description from raw bytes. Frontmatter is optional;
// when present it must be valid YAML.
func ParseBytes(data []byte) (*Document, error) {
	fm, body, err := extractFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var frontmatter Frontmatter
	if fm != "" {
		if err := yaml.Unmarshal([]byte(fm), &frontmatter); err != nil {
			return nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
		}
	}

	title := strings.TrimSpace(frontmatter.Title)
	if title == "" {
		title = firstHeading(body)
	}

	return &Document{
		Frontmatter: frontmatter,
		Title:       title,
		Body:        body,
	}, nil
}

// Summary returns the frontmatter description, or the first paragraph of
// the body that is not a heading.
func (d *Document) Summary() string {
	if s := strings.TrimSpace(d.Frontmatter.Description); s != "" {
		return s
	}
	for _, para := range strings.Split(d.Body, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") {
			continue
		}
		return para
	}
	return ""
}

// extractFrontmatter splits off a leading --- delimited YAML block.
// Content without a leading --- is returned unchanged as the body.
func extractFrontmatter(content string) (string, string, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "---") {
		return "", trimmed, nil
	}

	rest := trimmed[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return "", "", fmt.Errorf("description file missing closing frontmatter delimiter (---)")
	}

	fm := strings.TrimSpace(rest[:idx])
	body := strings.TrimSpace(rest[idx+4:])
	return fm, body, nil
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

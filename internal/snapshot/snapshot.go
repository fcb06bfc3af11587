package snapshot

import "sort"

// NoDescription is reported when the project has no description file.
const NoDescription = "No README found"

// ProjectSnapshot is the result of scanning a project directory once.
// It is built by the scanner and not modified afterwards.
type ProjectSnapshot struct {
	Path            string   `json:"path" yaml:"path"`
	TotalFileCount  int      `json:"totalFileCount" yaml:"total_file_count"`
	CodeFileCount   int      `json:"codeFileCount" yaml:"code_file_count"`
	DescriptionFile string   `json:"descriptionFile,omitempty" yaml:"description_file,omitempty"`
	DescriptionText *string  `json:"descriptionText,omitempty" yaml:"description_text,omitempty"`
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	SkillTags       []string `json:"skillTags,omitempty" yaml:"skill_tags,omitempty"`
}

// New builds a snapshot, normalizing the tag set to a sorted unique list.
func New(path string, total, code int, descFile string, desc *string, title string, tags []string) *ProjectSnapshot {
	return &ProjectSnapshot{
		Path:            path,
		TotalFileCount:  total,
		CodeFileCount:   code,
		DescriptionFile: descFile,
		DescriptionText: desc,
		Title:           title,
		SkillTags:       uniqueSorted(tags),
	}
}

// HasDescription reports whether a description file was found.
func (s *ProjectSnapshot) HasDescription() bool {
	return s != nil && s.DescriptionText != nil
}

// Description returns the description text, or NoDescription when absent.
func (s *ProjectSnapshot) Description() string {
	if !s.HasDescription() {
		return NoDescription
	}
	return *s.DescriptionText
}

// Tags returns a copy of the detected skill tags.
func (s *ProjectSnapshot) Tags() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.SkillTags))
	copy(out, s.SkillTags)
	return out
}

func uniqueSorted(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

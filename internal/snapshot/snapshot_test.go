package snapshot

import (
	"reflect"
	"testing"
)

func TestNew_NormalizesTags(t *testing.T) {
	s := New("/p", 3, 1, "", nil, "", []string{"Go", "Docker", "Go", ""})
	want := []string{"Docker", "Go"}
	if !reflect.DeepEqual(s.SkillTags, want) {
		t.Errorf("SkillTags = %v, want %v", s.SkillTags, want)
	}
}

func TestDescription_Fallback(t *testing.T) {
	s := New("/p", 0, 0, "", nil, "", nil)
	if s.HasDescription() {
		t.Error("HasDescription() = true for snapshot without description")
	}
	if got := s.Description(); got != NoDescription {
		t.Errorf("Description() = %q, want %q", got, NoDescription)
	}

	text := "A CLI tool"
	s = New("/p", 1, 0, "README.md", &text, "", nil)
	if got := s.Description(); got != text {
		t.Errorf("Description() = %q, want %q", got, text)
	}
}

func TestTags_ReturnsCopy(t *testing.T) {
	s := New("/p", 0, 0, "", nil, "", []string{"Go"})
	tags := s.Tags()
	tags[0] = "mutated"
	if s.SkillTags[0] != "Go" {
		t.Error("Tags() should not expose the snapshot's backing slice")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/ledger"
)

// isolate points HOME at a temp dir and clears PROMPTKIT_* variables.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"AUTHOR", "GITHUB_USER", "GITHUB_URL", "OUTPUT_DIR", "MAX_LENGTH", "CODE_EXTENSIONS"} {
		t.Setenv("PROMPTKIT_"+k, "")
	}
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"README.md":  "# Inventory Service\n\nTracks stock levels across warehouses.\n",
		"main.go":    "package main\n\nimport \"net/http\"\n\nfunc main() { http.ListenAndServe(\":8080\", nil) }\n",
		"Dockerfile": "FROM golang:1.25\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func listOutputs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestPortfolioWritesPrompt(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	outDir := filepath.Join(t.TempDir(), "prompts")

	code, stdout, stderr := execute(t, "", "portfolio", project, "--output-dir", outDir, "--author", "Sam Rivera")
	if code != apperrors.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}

	names := listOutputs(t, outDir)
	if len(names) != 1 || !strings.HasPrefix(names[0], "portfolio_") {
		t.Fatalf("outputs = %v, want one portfolio_*.txt", names)
	}
	data, err := os.ReadFile(filepath.Join(outDir, names[0]))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"Inventory Service", "Sam Rivera", "Go", "Docker"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(text, "{{") {
		t.Error("prompt still contains a placeholder")
	}
	if !strings.Contains(stdout, "Saved to "+filepath.Join(outDir, names[0])) {
		t.Errorf("stdout missing saved path:\n%s", stdout)
	}

	l, err := ledger.Load(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Entries) != 1 || l.Entries[0].TemplateID != "portfolio" {
		t.Errorf("ledger entries = %+v", l.Entries)
	}
}

func TestQuietPrintsOnlyPath(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	outDir := filepath.Join(t.TempDir(), "prompts")

	code, stdout, stderr := execute(t, "", "market", "--project", project, "-o", outDir, "-q")
	if code != apperrors.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	got := strings.TrimSpace(stdout)
	if strings.Contains(got, "\n") || !strings.HasPrefix(filepath.Base(got), "market-research_") {
		t.Errorf("stdout = %q, want a single market-research path", stdout)
	}
}

func TestMissingProjectWritesNothing(t *testing.T) {
	isolate(t)
	outDir := filepath.Join(t.TempDir(), "prompts")
	missing := filepath.Join(t.TempDir(), "nope")

	code, _, stderr := execute(t, "", "portfolio", missing, "-o", outDir)
	if code != apperrors.ExitBadInput {
		t.Fatalf("exit = %d, want %d", code, apperrors.ExitBadInput)
	}
	if !strings.Contains(stderr, "not found") {
		t.Errorf("stderr = %q", stderr)
	}
	if names := listOutputs(t, outDir); len(names) != 0 {
		t.Errorf("outputs = %v, want none", names)
	}
}

func TestUnknownTemplateShow(t *testing.T) {
	isolate(t)
	code, _, stderr := execute(t, "", "templates", "show", "portfolo")
	if code != apperrors.ExitBadInput {
		t.Fatalf("exit = %d, want %d", code, apperrors.ExitBadInput)
	}
	if !strings.Contains(stderr, "portfolio") {
		t.Errorf("stderr should list valid templates: %q", stderr)
	}
}

func TestUnwritableOutputDir(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, _ := execute(t, "", "portfolio", project, "-o", filepath.Join(blocker, "prompts"))
	if code != apperrors.ExitEnvironment {
		t.Fatalf("exit = %d, want %d", code, apperrors.ExitEnvironment)
	}
}

func TestProposalInputSources(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	outDir := filepath.Join(t.TempDir(), "prompts")

	jobFile := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(jobFile, []byte("Need a Go developer for a warehouse API"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := execute(t, "", "proposal", "--file", jobFile, "--project", project, "-o", outDir)
	if code != apperrors.ExitOK {
		t.Fatalf("--file: exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "warehouse API") {
		t.Errorf("--file: job text missing from output")
	}

	code, stdout, stderr = execute(t, "Looking for a Python data engineer", "proposal", "--file", "-", "--project", project, "-o", outDir)
	if code != apperrors.ExitOK {
		t.Fatalf("stdin: exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Python data engineer") {
		t.Errorf("stdin: job text missing from output")
	}

	if names := listOutputs(t, outDir); len(names) != 2 {
		t.Errorf("outputs = %v, want 2 files", names)
	}
}

func TestProposalFileAndArgsConflict(t *testing.T) {
	isolate(t)
	code, _, _ := execute(t, "", "proposal", "--file", "job.txt", "extra", "words")
	if code != apperrors.ExitBadInput {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitBadInput)
	}
}

func TestScanJSON(t *testing.T) {
	isolate(t)
	project := writeProject(t)

	code, stdout, stderr := execute(t, "", "scan", project, "--format", "json")
	if code != apperrors.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if got["totalFileCount"] != float64(3) {
		t.Errorf("totalFileCount = %v, want 3", got["totalFileCount"])
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	isolate(t)
	code, _, _ := execute(t, "", "portfolio", "--bogus")
	if code != apperrors.ExitBadInput {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitBadInput)
	}
}

func TestConfigSetFeedsGeneration(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	outDir := filepath.Join(t.TempDir(), "prompts")

	if code, _, stderr := execute(t, "", "config", "set", "author", "Config Author"); code != apperrors.ExitOK {
		t.Fatalf("config set: exit = %d, stderr = %s", code, stderr)
	}
	if code, _, _ := execute(t, "", "config", "set", "colour", "blue"); code != apperrors.ExitBadInput {
		t.Errorf("config set unknown key: exit = %d, want %d", code, apperrors.ExitBadInput)
	}

	code, stdout, stderr := execute(t, "", "portfolio", project, "-o", outDir)
	if code != apperrors.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Config Author") {
		t.Error("author from config file not used")
	}

	code, stdout, _ = execute(t, "", "history", "-o", outDir)
	if code != apperrors.ExitOK || !strings.Contains(stdout, "portfolio") {
		t.Errorf("history: exit = %d, stdout = %q", code, stdout)
	}
}

func TestDefaultOutputDirNotScanned(t *testing.T) {
	isolate(t)
	project := writeProject(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	scan := func() map[string]any {
		t.Helper()
		code, stdout, stderr := execute(t, "", "scan", "--format", "json")
		if code != apperrors.ExitOK {
			t.Fatalf("scan: exit = %d, stderr = %s", code, stderr)
		}
		var got map[string]any
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("scan output is not JSON: %v", err)
		}
		return got
	}

	before := scan()
	code, _, stderr := execute(t, "", "proposal", "-q", "Need a Postgres + Redis + MongoDB expert with GraphQL")
	if code != apperrors.ExitOK {
		t.Fatalf("proposal: exit = %d, stderr = %s", code, stderr)
	}
	if names := listOutputs(t, filepath.Join(project, "prompts")); len(names) != 1 {
		t.Fatalf("outputs = %v, want one prompt under ./prompts", names)
	}
	after := scan()

	if after["totalFileCount"] != before["totalFileCount"] {
		t.Errorf("totalFileCount = %v after writing a prompt, want %v", after["totalFileCount"], before["totalFileCount"])
	}
	tags, _ := after["skillTags"].([]any)
	for _, tag := range tags {
		switch tag {
		case "PostgreSQL", "Redis", "MongoDB", "GraphQL":
			t.Errorf("skill %v detected from a generated prompt", tag)
		}
	}
}

func TestStdinAndArgsConflict(t *testing.T) {
	isolate(t)
	code, _, _ := execute(t, "job text", "proposal", "--file", "-", "extra", "words")
	if code != apperrors.ExitBadInput {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitBadInput)
	}
}

func TestConfigSetUnwritableHome(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	if err := os.WriteFile(filepath.Join(home, ".config"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, _ := execute(t, "", "config", "set", "author", "Sam")
	if code != apperrors.ExitEnvironment {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitEnvironment)
	}
}

package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/roberthamel/promptkit/internal/errors"
	"github.com/roberthamel/promptkit/internal/render"
)

// Clock abstracts time so file names are deterministic in tests.
type Clock interface {
	NowUTC() time.Time
}

// SystemUTC is the production clock.
type SystemUTC struct{}

func (SystemUTC) NowUTC() time.Time {
	return time.Now().UTC()
}

// maxAttempts bounds the numbered suffixes tried for one timestamp.
const maxAttempts = 1000

// Writer persists rendered prompts as new files under Dir. It never
// overwrites: every write creates a file that did not exist before.
type Writer struct {
	Dir   string
	Clock Clock
}

// Write stores p in a new file named <template>_<timestamp>.txt and returns
// its path. When that name is taken, _2, _3, ... are appended.
func (w Writer) Write(p *render.RenderedPrompt) (string, error) {
	if p == nil {
		return "", apperrors.Internal("nothing to write", nil)
	}
	if strings.TrimSpace(w.Dir) == "" {
		return "", apperrors.Internal("output directory is empty", nil)
	}
	clock := w.Clock
	if clock == nil {
		clock = SystemUTC{}
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", apperrors.Write(fmt.Sprintf("creating output directory %s", w.Dir), err)
	}

	stem := fmt.Sprintf("%s_%s", p.TemplateID, FormatTimestamp(clock.NowUTC()))
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		name := stem + ".txt"
		if attempt > 1 {
			name = fmt.Sprintf("%s_%d.txt", stem, attempt)
		}
		path := filepath.Join(w.Dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", apperrors.Write(fmt.Sprintf("creating %s", path), err)
		}
		if err := writeAndClose(f, p.Text); err != nil {
			_ = os.Remove(path)
			return "", apperrors.Write(fmt.Sprintf("writing %s", path), err)
		}
		return path, nil
	}
	return "", apperrors.Write(fmt.Sprintf("no free file name for %s in %s", stem, w.Dir), nil)
}

func writeAndClose(f *os.File, text string) error {
	if _, err := io.WriteString(f, text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatTimestamp renders t for use in a file name.
// Example: 20261016_154233.123456789Z
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("20060102_150405.000000000Z")
}

// Echo prints the prompt body followed by the file it was saved to.
func Echo(w io.Writer, path, text string) error {
	if _, err := fmt.Fprintln(w, text); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nSaved to %s\n", path)
	return err
}

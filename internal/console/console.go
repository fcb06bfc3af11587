package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/roberthamel/promptkit/internal/errors"
)

var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	ColorError   = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "25", Dark: "33"}

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HeadingStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// Success prints a highlighted status line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Heading prints a section title.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w, HeadingStyle.Render(title))
}

// Muted prints secondary information.
func Muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, MutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints err with a label naming its kind.
func Error(w io.Writer, err error) {
	label := "error"
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		label = "not found"
	case apperrors.KindUnknownTemplate:
		label = "unknown template"
	case apperrors.KindMissingRequiredFact:
		label = "missing fact"
	case apperrors.KindWrite:
		label = "write failed"
	case apperrors.KindUsage:
		label = "usage"
	}
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render(label+":"), err)
}

// RenderMarkdown formats markdown for the terminal. GLAMOUR_STYLE
// overrides the automatic light/dark detection.
func RenderMarkdown(text string, width int) (string, error) {
	style := glamour.WithAutoStyle()
	if s := os.Getenv("GLAMOUR_STYLE"); s != "" {
		style = glamour.WithStandardStyle(s)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

package helpers

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/infrastructure/report"
)

const envNoColor = "NO_COLOR"

var gradeColors = map[string]lipgloss.Color{
	"A": lipgloss.Color("42"),
	"B": lipgloss.Color("78"),
	"C": lipgloss.Color("220"),
	"D": lipgloss.Color("208"),
	"F": lipgloss.Color("196"),
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled resolves a preferences.color mode for w.
func ColorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	default:
		return os.Getenv(envNoColor) == "" && IsTerminal(w)
	}
}

// Styler colors terminal reports by grade.
type Styler struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

// NewStyler builds a Styler for w using the configured color mode.
func NewStyler(w io.Writer, mode string) Styler {
	if w == nil || !ColorEnabled(w, mode) {
		return Styler{}
	}
	return Styler{enabled: true, renderer: lipgloss.NewRenderer(w)}
}

// Grade renders text in the color of grade.
func (s Styler) Grade(grade, text string) string {
	if !s.enabled {
		return text
	}
	color, ok := gradeColors[grade]
	if !ok {
		return text
	}
	return s.renderer.NewStyle().Bold(true).Foreground(color).Render(text)
}

// Dim renders secondary text.
func (s Styler) Dim(text string) string {
	if !s.enabled {
		return text
	}
	return s.renderer.NewStyle().Faint(true).Render(text)
}

// Terminal renders the terminal report, coloring the headline by the
// overall grade and each category line by its own grade.
func (s Styler) Terminal(r domain.HealthReport) string {
	text := report.Terminal(r)
	if !s.enabled {
		return text
	}
	lines := strings.Split(text, "\n")
	lines[0] = s.Grade(r.Grade, lines[0])
	for i, c := range domain.Categories() {
		idx := i + 2
		if idx >= len(lines) {
			break
		}
		score := r.CategoryScores.Get(c)
		lines[idx] = s.Grade(domain.GradeFor(score*100/domain.CategoryMaxScore), lines[idx])
	}
	return strings.Join(lines, "\n")
}

// Package ui renders progress events for the command-line front-ends.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/playlist-dl/internal/progress"
)

// Styles shared by the CLIs and the TUI.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// Style returns the style for a level.
func Style(level progress.Level) lipgloss.Style {
	switch level {
	case progress.LevelError:
		return ErrorStyle
	case progress.LevelWarning:
		return WarningStyle
	case progress.LevelSuccess:
		return SuccessStyle
	case progress.LevelInfo:
		return InfoStyle
	default:
		return DimStyle
	}
}

// Prefix returns the one-character marker for a level.
func Prefix(level progress.Level) string {
	switch level {
	case progress.LevelError:
		return "✗"
	case progress.LevelWarning:
		return "!"
	case progress.LevelSuccess:
		return "✓"
	case progress.LevelInfo:
		return "›"
	default:
		return "•"
	}
}

// Line formats an event without styling: level marker, item position when
// present, then the message.
func Line(e progress.Event) string {
	var b strings.Builder
	b.WriteString(Prefix(e.Level))
	b.WriteString(" ")
	if e.Total > 0 {
		fmt.Fprintf(&b, "[%d/%d] ", e.Item, e.Total)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Render formats and styles an event.
func Render(e progress.Event) string {
	return Style(e.Level).Render(Line(e))
}

// Printer writes events to a writer, one per line. Verbose events are
// dropped unless the printer is verbose. Safe for concurrent use.
type Printer struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewPrinter creates a Printer.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

// Handle prints e. It has the progress.Func signature.
func (p *Printer) Handle(e progress.Event) {
	if e.Level == progress.LevelVerbose && !p.verbose {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, Render(e))
}

// Banner prints a styled title line followed by a dim subtitle.
func Banner(w io.Writer, title, subtitle string) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintln(w, DimStyle.Render(subtitle))
	}
	fmt.Fprintln(w)
}

package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"sitechrome/internal/domain"
	"sitechrome/internal/i18n"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Page", []helpEntry{
		{"↑/↓, j/k", "Scroll (ignored while the menu is open)"},
		{"PgUp/PgDn", "Page up/down"},
		{"g/G", "Go to top/bottom"},
	}},
	{"Chrome", []helpEntry{
		{"tab", "Switch between site and dashboard"},
		{"L", "Switch language on the focused surface"},
		{"m", "Open/close the mobile menu"},
	}},
	{"Gallery", []helpEntry{
		{"p/v", "Show photos/videos (closes the viewer)"},
		{"1-9", "Open an item"},
		{"←/→", "Previous/next item, wrapping around"},
		{"Esc", "Close the viewer"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	tr *i18n.Translator
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(tr *i18n.Translator) *HelpRenderer {
	return &HelpRenderer{tr: tr}
}

// Render generates help content with colors for the pager
func (r *HelpRenderer) Render(l domain.Locale) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	title := "Help"
	if r.tr != nil {
		title = r.tr.T(l, "help.title")
	}
	help.WriteString(titleStyle.Render(title))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
		if i < len(helpSections)-1 {
			help.WriteString("\n")
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelpCmd runs the pager off the update loop
func (h *HelpOps) showHelpCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: h.ShowHelpInPager(content)}
	}
}

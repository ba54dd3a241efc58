package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	statusBar   lipgloss.Style
	statusErr   lipgloss.Style
	overlay     lipgloss.Style
	hint        lipgloss.Style
}

func stylesFor(theme string) palette {
	var accent, dim, errCol lipgloss.Color
	if theme == "dark" {
		accent, dim, errCol = lipgloss.Color("212"), lipgloss.Color("241"), lipgloss.Color("203")
	} else {
		accent, dim, errCol = lipgloss.Color("127"), lipgloss.Color("245"), lipgloss.Color("160")
	}
	return palette{
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		tabInactive: lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		statusBar:   lipgloss.NewStyle().Foreground(dim),
		statusErr:   lipgloss.NewStyle().Bold(true).Foreground(errCol),
		overlay:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		hint:        lipgloss.NewStyle().Foreground(dim).Italic(true),
	}
}

func (m model) View() string {
	st := stylesFor(string(m.snap.Settings.Theme))

	var b strings.Builder
	b.WriteString(m.tabBar(st))
	b.WriteString("\n")

	switch m.mode {
	case modePreview:
		b.WriteString(m.preview)
		b.WriteString("\n")
		b.WriteString(st.hint.Render("esc to edit"))
	case modePalette:
		b.WriteString(m.paletteView(st))
	case modeRename:
		b.WriteString(st.overlay.Render("Rename: " + m.input.View()))
	case modeConfirmDelete:
		b.WriteString(st.overlay.Render(fmt.Sprintf("Delete %q? (y/n)", m.activeName())))
	case modeSettings:
		b.WriteString(m.settingsView(st))
	default:
		b.WriteString(m.ta.View())
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine(st))
	return b.String()
}

func (m model) tabBar(st palette) string {
	var tabs []string
	for _, e := range m.snap.Catalog {
		if e.ID == m.snap.ActiveID {
			tabs = append(tabs, st.tabActive.Render("["+e.Name+"]"))
		} else {
			tabs = append(tabs, st.tabInactive.Render(e.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) paletteView(st palette) string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for i, idx := range m.palette.matches {
		if idx >= len(m.snap.Catalog) {
			continue
		}
		name := m.snap.Catalog[idx].Name
		if i == m.palette.sel {
			b.WriteString(st.tabActive.Render("> " + name))
		} else {
			b.WriteString(st.tabInactive.Render("  " + name))
		}
		b.WriteString("\n")
	}
	return st.overlay.Render(b.String())
}

func (m model) settingsView(st palette) string {
	s := m.snap.Settings
	var b strings.Builder
	b.WriteString("Display settings (this document)\n\n")
	fmt.Fprintf(&b, "  font size    %d    (+/-)\n", s.FontSize)
	fmt.Fprintf(&b, "  line height  %.1f  ([/])\n", s.LineHeight)
	fmt.Fprintf(&b, "  font family  %s    (f)\n", s.FontFamily)
	fmt.Fprintf(&b, "  theme        %s    (t)\n", s.Theme)
	b.WriteString("\n")
	b.WriteString(st.hint.Render("esc to close"))
	return st.overlay.Render(b.String())
}

func (m model) statusLine(st palette) string {
	if m.snap.StorageErr != "" {
		return st.statusErr.Render("! " + m.snap.StorageErr)
	}
	state := "saved"
	if m.snap.Dirty {
		state = "editing…"
	}
	left := fmt.Sprintf("%s · %s", m.activeName(), state)
	if m.status != "" {
		left += " · " + m.status
	}
	hints := "^N new  ^P switch  ^R rename  ^W delete  ^E preview  ^G settings  ^Q quit"
	return st.statusBar.Render(left) + "  " + st.hint.Render(hints)
}

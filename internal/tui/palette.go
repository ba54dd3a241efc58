package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mithrel/foliate/internal/session"
)

// paletteState is the quick-switch overlay: type to fuzzy-filter
// document names, enter to switch.
type paletteState struct {
	matches []int // indices into the catalog
	sel     int
}

func (m *model) openPalette() {
	m.input.SetValue("")
	m.input.Placeholder = "switch to…"
	m.input.Focus()
	m.palette = paletteState{}
	m.filterPalette()
	m.mode = modePalette
}

func (m *model) filterPalette() {
	query := m.input.Value()
	cat := m.snap.Catalog
	if query == "" {
		m.palette.matches = m.palette.matches[:0]
		for i := range cat {
			m.palette.matches = append(m.palette.matches, i)
		}
	} else {
		names := make([]string, len(cat))
		for i, e := range cat {
			names[i] = e.Name
		}
		found := fuzzy.Find(query, names)
		m.palette.matches = m.palette.matches[:0]
		for _, f := range found {
			m.palette.matches = append(m.palette.matches, f.Index)
		}
	}
	if m.palette.sel >= len(m.palette.matches) {
		m.palette.sel = 0
	}
}

func (m model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+p":
		m.mode = modeEdit
		m.input.Blur()
		return m, nil
	case "up", "ctrl+k":
		if m.palette.sel > 0 {
			m.palette.sel--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.palette.sel < len(m.palette.matches)-1 {
			m.palette.sel++
		}
		return m, nil
	case "enter":
		m.mode = modeEdit
		m.input.Blur()
		if m.palette.sel < len(m.palette.matches) {
			idx := m.palette.matches[m.palette.sel]
			if idx < len(m.snap.Catalog) {
				id := m.snap.Catalog[idx].ID
				if err := m.ctrl.Apply(m.ctx, session.SwitchTo{ID: id}); err != nil {
					m.status = err.Error()
					m.refresh()
					return m, nil
				}
				m.reload()
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filterPalette()
	return m, cmd
}

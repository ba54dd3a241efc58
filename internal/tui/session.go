package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/foliate/internal/render"
	"github.com/mithrel/foliate/internal/session"
)

type mode int

const (
	modeEdit mode = iota
	modePreview
	modePalette
	modeRename
	modeConfirmDelete
	modeSettings
)

// tickMsg refreshes the snapshot so the status line reflects autosaves
// that completed in the background.
type tickMsg time.Time

const refreshEvery = 500 * time.Millisecond

// Run opens the interactive session and blocks until the user quits.
// The controller must have been started already.
func Run(ctx context.Context, ctrl *session.Controller, rend *render.Renderer) error {
	m := newModel(ctx, ctrl, rend)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type model struct {
	ctx  context.Context
	ctrl *session.Controller
	rend *render.Renderer

	ta      textarea.Model
	input   textinput.Model
	mode    mode
	snap    session.Snapshot
	preview string

	palette paletteState

	width  int
	height int
	status string
}

func newModel(ctx context.Context, ctrl *session.Controller, rend *render.Renderer) model {
	ta := textarea.New()
	ta.Placeholder = "Start typing…"
	ta.CharLimit = 0
	ta.Focus()

	in := textinput.New()
	in.CharLimit = 120

	m := model{
		ctx:   ctx,
		ctrl:  ctrl,
		rend:  rend,
		ta:    ta,
		input: in,
	}
	m.refresh()
	m.ta.SetValue(m.snap.Content)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// refresh pulls the latest snapshot from the controller.
func (m *model) refresh() {
	m.snap = m.ctrl.Snapshot()
}

// reload refreshes and resets the editor to the active document's
// buffer; used after structural changes (create/switch/delete).
func (m *model) reload() {
	m.refresh()
	m.ta.SetValue(m.snap.Content)
	m.ta.CursorEnd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tick()
	case tea.KeyMsg:
		switch m.mode {
		case modePalette:
			return m.updatePalette(msg)
		case modeRename:
			return m.updateRename(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeSettings:
			return m.updateSettings(msg)
		case modePreview:
			return m.updatePreview(msg)
		default:
			return m.updateEdit(msg)
		}
	}
	return m, nil
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		_ = m.ctrl.Apply(m.ctx, session.Shutdown{})
		return m, tea.Quit
	case "ctrl+n":
		if err := m.ctrl.Apply(m.ctx, session.CreateDocument{}); err != nil {
			m.status = err.Error()
			m.refresh()
			return m, nil
		}
		m.reload()
		m.status = "created " + m.activeName()
		return m, nil
	case "ctrl+w":
		if len(m.snap.Catalog) > 0 {
			m.mode = modeConfirmDelete
		}
		return m, nil
	case "ctrl+p":
		m.openPalette()
		return m, nil
	case "ctrl+r":
		m.input.SetValue(m.activeName())
		m.input.Focus()
		m.mode = modeRename
		return m, nil
	case "ctrl+g":
		m.mode = modeSettings
		return m, nil
	case "ctrl+e":
		m.preview = m.rend.Render(m.snap.Content, m.snap.Settings)
		m.mode = modePreview
		return m, nil
	case "ctrl+s":
		if err := m.ctrl.Flush(m.ctx); err != nil {
			m.refresh()
			m.status = m.snap.StorageErr
			return m, nil
		}
		m.refresh()
		m.status = "saved"
		return m, nil
	case "ctrl+right":
		m.switchRelative(1)
		return m, nil
	case "ctrl+left":
		m.switchRelative(-1)
		return m, nil
	}

	var cmd tea.Cmd
	before := m.ta.Value()
	m.ta, cmd = m.ta.Update(msg)
	if after := m.ta.Value(); after != before {
		if err := m.ctrl.Apply(m.ctx, session.EditContent{Text: after}); err != nil {
			m.status = err.Error()
		}
		m.refresh()
	}
	return m, cmd
}

func (m model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+e", "q":
		m.mode = modeEdit
		m.preview = ""
	case "ctrl+c", "ctrl+q":
		_ = m.ctrl.Apply(m.ctx, session.Shutdown{})
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeEdit
		m.input.Blur()
		return m, nil
	case "enter":
		name := m.input.Value()
		m.input.Blur()
		m.mode = modeEdit
		if name != "" {
			if err := m.ctrl.Apply(m.ctx, session.RenameDocument{ID: m.snap.ActiveID, Name: name}); err != nil {
				m.status = err.Error()
			}
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeEdit
		if err := m.ctrl.Apply(m.ctx, session.DeleteDocument{ID: m.snap.ActiveID}); err != nil {
			m.status = err.Error()
			m.refresh()
			return m, nil
		}
		m.reload()
		m.status = "deleted; now editing " + m.activeName()
	default:
		m.mode = modeEdit
	}
	return m, nil
}

func (m model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.snap.Settings
	switch msg.String() {
	case "esc", "ctrl+g", "q":
		m.mode = modeEdit
		return m, nil
	case "t":
		if s.Theme == "light" {
			s.Theme = "dark"
		} else {
			s.Theme = "light"
		}
	case "f":
		switch s.FontFamily {
		case "system":
			s.FontFamily = "serif"
		case "serif":
			s.FontFamily = "mono"
		default:
			s.FontFamily = "system"
		}
	case "+", "=":
		s.FontSize++
	case "-":
		s.FontSize--
	case "]":
		s.LineHeight += 0.1
	case "[":
		s.LineHeight -= 0.1
	default:
		return m, nil
	}
	if err := m.ctrl.Apply(m.ctx, session.ChangeSettings{Settings: s}); err != nil {
		m.status = err.Error()
	}
	m.refresh()
	return m, nil
}

func (m *model) switchRelative(delta int) {
	cat := m.snap.Catalog
	if len(cat) < 2 {
		return
	}
	cur := 0
	for i, e := range cat {
		if e.ID == m.snap.ActiveID {
			cur = i
			break
		}
	}
	next := (cur + delta + len(cat)) % len(cat)
	if err := m.ctrl.Apply(m.ctx, session.SwitchTo{ID: cat[next].ID}); err != nil {
		m.status = err.Error()
		m.refresh()
		return
	}
	m.reload()
}

func (m *model) activeName() string {
	for _, e := range m.snap.Catalog {
		if e.ID == m.snap.ActiveID {
			return e.Name
		}
	}
	return ""
}

func (m *model) applyLayout() {
	w := m.width - 2
	h := m.height - 4
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.ta.SetWidth(w)
	m.ta.SetHeight(h)
}

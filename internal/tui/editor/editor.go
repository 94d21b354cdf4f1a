// Package editor is the terminal editing surface for one open view: prose
// blocks and embedded code panes rendered as a single scrollable document
// with an explicit save-all step.
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/filestack/filestack/internal/cache"
	"github.com/filestack/filestack/internal/document"
	"github.com/filestack/filestack/internal/filestate"
	"github.com/filestack/filestack/internal/preview"
	"github.com/filestack/filestack/internal/workspace"
)

var previewCacheSizeMB int64 = 8

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modePreview
)

type saveDoneMsg struct {
	results []filestate.SaveResult
	err     error
}

// Model is the bubbletea model for one editing session.
type Model struct {
	ws       *workspace.Workspace
	sess     *workspace.Session
	keys     *editorKeyMap
	nodes    []document.Node
	focus    int
	mode     mode
	input    textarea.Model
	view     viewport.Model
	cache    *cache.Cache
	theme    string
	status   string
	width    int
	height   int
	asked    bool
	attached bool
}

func NewModel(ws *workspace.Workspace, sess *workspace.Session, theme string) (*Model, error) {
	if sess.State() != workspace.StateLoaded {
		return nil, fmt.Errorf("cannot edit view in state %s: %w", sess.State(), sess.Err())
	}

	c, err := cache.New(previewCacheSizeMB)
	if err != nil {
		return nil, err
	}

	input := textarea.New()
	input.CharLimit = 0

	m := &Model{
		ws:    ws,
		sess:  sess,
		keys:  newEditorKeyMap(),
		nodes: sess.Nodes(),
		input: input,
		view:  viewport.New(0, 0),
		cache: c,
		theme: theme,
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width - 4
		m.view.Height = msg.Height - 6
		m.input.SetWidth(msg.Width - 8)
		m.input.SetHeight(max(4, msg.Height/2))
		if !m.attached {
			// The surface-ready event: change tracking is off until the
			// first real layout, driven by this message, not a timer.
			m.sess.AttachSurface()
			m.attached = true
		}
		m.refresh()
		return m, nil

	case saveDoneMsg:
		m.status = saveStatus(msg)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEditing(msg)
		case modePreview:
			return m.updatePreviewing(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.sess.Dirty() && !m.asked {
			m.asked = true
			m.status = "unsaved changes; press q again to quit without saving"
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.nextBlock):
		if m.focus < len(m.nodes)-1 {
			m.focus++
		}
		m.refresh()

	case key.Matches(msg, m.keys.prevBlock):
		if m.focus > 0 {
			m.focus--
		}
		m.refresh()

	case key.Matches(msg, m.keys.editBlock):
		m.beginEdit()

	case key.Matches(msg, m.keys.save):
		m.status = "saving..."
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.preview):
		m.mode = modePreview
		m.refresh()

	case key.Matches(msg, m.keys.copyDoc):
		doc := preview.Compose(m.sess.Title(), m.nodes, m.sess.FileContent)
		if err := clipboard.WriteAll(doc); err != nil {
			m.status = "clipboard copy failed: " + err.Error()
		} else {
			m.status = "document copied to clipboard"
		}
		m.refresh()

	default:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	m.asked = false
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.commitEdit):
		m.commitEdit()
		return m, nil

	case key.Matches(msg, m.keys.cancelEdit):
		m.mode = modeBrowse
		m.input.Blur()
		m.status = "edit discarded"
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updatePreviewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.preview), key.Matches(msg, m.keys.commitEdit):
		m.mode = modeBrowse
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model) beginEdit() {
	if len(m.nodes) == 0 {
		return
	}

	node := m.nodes[m.focus]
	switch node.Kind {
	case document.KindHeading, document.KindParagraph:
		m.input.SetValue(node.Text)
	case document.KindList:
		m.input.SetValue(strings.Join(node.Items, "\n"))
	case document.KindCode:
		m.input.SetValue(m.sess.FileContent(node.File))
	default:
		m.status = "this block cannot be edited"
		return
	}

	m.mode = modeEdit
	m.input.Focus()
}

// commitEdit folds the textarea back into the focused block: prose updates
// the node structure, code edits route through the session into the store.
func (m *Model) commitEdit() {
	node := &m.nodes[m.focus]
	value := m.input.Value()

	switch node.Kind {
	case document.KindHeading, document.KindParagraph:
		trimmed := strings.TrimSpace(value)
		if node.Kind == document.KindHeading && trimmed == "" {
			m.mode = modeBrowse
			m.input.Blur()
			m.status = "heading text cannot be empty; edit discarded"
			m.refresh()
			return
		}
		node.Text = trimmed
		m.sess.SetNodes(m.nodes)
		m.sess.StageDialect()
	case document.KindList:
		var items []string
		for _, line := range strings.Split(value, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				items = append(items, trimmed)
			}
		}
		if len(items) > 0 {
			node.Items = items
			m.sess.SetNodes(m.nodes)
			m.sess.StageDialect()
		}
	case document.KindCode:
		m.sess.RecordFileEdit(node.File, value)
	}

	m.mode = modeBrowse
	m.input.Blur()
	m.status = ""
	m.refresh()
}

func (m *Model) saveCmd() tea.Cmd {
	return func() tea.Msg {
		results, err := m.sess.Save(context.Background())
		return saveDoneMsg{results: results, err: err}
	}
}

func saveStatus(msg saveDoneMsg) string {
	var failed int
	for _, res := range msg.results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Sprintf("saved %d file(s), %d failed; failed files stay dirty", len(msg.results)-failed, failed)
	}
	// A save can fail before any file is attempted, e.g. when the document
	// no longer validates. That reason must reach the status line.
	if msg.err != nil {
		return "save failed: " + msg.err.Error()
	}
	if len(msg.results) == 0 {
		return "nothing to save"
	}
	return fmt.Sprintf("saved %d file(s)", len(msg.results))
}

func (m *Model) refresh() {
	if m.mode == modePreview {
		m.view.SetContent(m.renderPreview())
		return
	}
	m.view.SetContent(m.renderBlocks())
}

func (m *Model) renderPreview() string {
	doc := preview.Compose(m.sess.Title(), m.nodes, m.sess.FileContent)
	if cached, hit := m.cache.Get(doc); hit {
		return cached
	}

	out, err := preview.Render(doc, m.theme)
	if err != nil {
		return errorStyle.Render("preview failed: " + err.Error())
	}
	m.cache.Put(doc, out)
	return out
}

func (m *Model) renderBlocks() string {
	var b strings.Builder

	for i, node := range m.nodes {
		block := m.renderBlock(node)
		if i == m.focus {
			block = focusedBlockStyle.Render(block)
		} else {
			block = blockStyle.Render(block)
		}
		b.WriteString(block + "\n")
	}

	return b.String()
}

func (m *Model) renderBlock(node document.Node) string {
	switch node.Kind {
	case document.KindHeading:
		return headingStyle.Render(strings.Repeat("#", node.Level) + " " + node.Text)

	case document.KindParagraph:
		return proseStyle.Render(node.Text)

	case document.KindList:
		lines := make([]string, len(node.Items))
		for i, item := range node.Items {
			lines[i] = "- " + item
		}
		return proseStyle.Render(strings.Join(lines, "\n"))

	case document.KindCode:
		title := codeTitleStyle.Render(node.Title)
		if m.ws.Store.Dirty(m.sess.ResolveFile(node.File)) {
			title += " " + dirtyBadgeStyle.Render("[+]")
		}
		if err := m.sess.FileLoadError(node.File); err != nil {
			return codePaneStyle.Render(title + "\n" + errorStyle.Render(err.Error()))
		}
		return codePaneStyle.Render(title + "\n" + m.sess.FileContent(node.File))

	default:
		return errorStyle.Render(node.Text)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	title := m.sess.Title()
	if m.sess.Dirty() {
		title += " " + dirtyBadgeStyle.Render("[unsaved]")
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.mode == modeEdit {
		b.WriteString(m.input.View() + "\n")
		b.WriteString(helpStyle.Render("esc commit · ctrl+x discard") + "\n")
	} else {
		b.WriteString(m.view.View() + "\n")
		b.WriteString(helpStyle.Render("j/k move · ↵ edit · ctrl+s save · ctrl+g preview · y copy · q quit") + "\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}

	return appStyle.Render(b.String())
}

// Run opens the editing surface for one view and blocks until it exits.
func Run(ws *workspace.Workspace, sess *workspace.Session, theme string) error {
	m, err := NewModel(ws, sess, theme)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

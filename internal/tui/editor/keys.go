package editor

import "github.com/charmbracelet/bubbles/key"

type editorKeyMap struct {
	nextBlock  key.Binding
	prevBlock  key.Binding
	editBlock  key.Binding
	commitEdit key.Binding
	cancelEdit key.Binding
	save       key.Binding
	preview    key.Binding
	copyDoc    key.Binding
	quit       key.Binding
}

func newEditorKeyMap() *editorKeyMap {
	return &editorKeyMap{
		nextBlock: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "next block"),
		),
		prevBlock: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "previous block"),
		),
		editBlock: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "edit block"),
		),
		commitEdit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "commit edit"),
		),
		cancelEdit: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "discard edit"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save all"),
		),
		preview: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle preview"),
		),
		copyDoc: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy document"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

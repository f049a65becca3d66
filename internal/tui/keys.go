package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextSection key.Binding
	PrevSection key.Binding
	Top         key.Binding
	ToggleTheme key.Binding
	ToggleChat  key.Binding
	Quit        key.Binding

	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding
	Back      key.Binding
	Submit    key.Binding
	Detach    key.Binding
	Copy      key.Binding

	NextFilter key.Binding
	PrevFilter key.Binding
	ShowMore   key.Binding

	Quick         []key.Binding
	ClearChat     key.Binding
	Retry         key.Binding
	ThumbsUp      key.Binding
	ThumbsDown    key.Binding
	DismissBanner key.Binding
	CloseChat     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "top")),
		ToggleTheme: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		ToggleChat:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "chat")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		NextField: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next field")),
		PrevField: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev field")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Detach:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove file")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),

		NextFilter: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "category")),
		PrevFilter: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "category")),
		ShowMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "show more")),

		Quick: []key.Binding{
			key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "")),
			key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "")),
			key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "")),
			key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "")),
		},
		ClearChat:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Retry:         key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		ThumbsUp:      key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "👍")),
		ThumbsDown:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "👎")),
		DismissBanner: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "dismiss")),
		CloseChat:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap for the page footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.Top, k.ToggleTheme, k.ToggleChat, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.NextField, k.PrevField, k.Confirm, k.Back, k.Submit, k.Detach, k.Copy},
		{k.PrevFilter, k.NextFilter, k.ShowMore},
	}
}

type chatKeys struct{ k keyMap }

// ShortHelp implements help.KeyMap for the chat overlay.
func (c chatKeys) ShortHelp() []key.Binding {
	return []key.Binding{c.k.ClearChat, c.k.Retry, c.k.ThumbsUp, c.k.ThumbsDown, c.k.Copy, c.k.DismissBanner, c.k.CloseChat}
}

// FullHelp implements help.KeyMap.
func (c chatKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{c.ShortHelp()}
}

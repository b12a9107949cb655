package cli

import "github.com/charmbracelet/bubbles/key"

// selectKeys drive the topic picker.
type selectKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Start  key.Binding
	Quit   key.Binding
}

func newSelectKeys() selectKeys {
	return selectKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k selectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.Start, k.Quit}
}

func (k selectKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// cardKeys drive a running session.
type cardKeys struct {
	Flip     key.Binding
	DontKnow key.Binding
	Somewhat key.Binding
	KnowWell key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func newCardKeys() cardKeys {
	return cardKeys{
		Flip:     key.NewBinding(key.WithKeys(" ", "enter", "left", "right"), key.WithHelp("space", "flip")),
		DontKnow: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "don't know")),
		Somewhat: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "somewhat")),
		KnowWell: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "know well")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "topics")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k cardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.DontKnow, k.Somewhat, k.KnowWell, k.Back, k.Quit}
}

func (k cardKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// summaryKeys drive the end-of-session screen.
type summaryKeys struct {
	Restart key.Binding
	Review  key.Binding
	New     key.Binding
	Quit    key.Binding
}

func newSummaryKeys() summaryKeys {
	return summaryKeys{
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Review:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "review weak")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new selection")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k summaryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Review, k.New, k.Quit}
}

func (k summaryKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/alexanderramin/flashbox/internal/deck"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/session"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// screen is the study TUI's current page.
type screen int

const (
	screenIdentity screen = iota
	screenSelect
	screenCard
	screenSummary
	screenError
)

func (s screen) String() string {
	switch s {
	case screenIdentity:
		return "identity"
	case screenSelect:
		return "select"
	case screenCard:
		return "card"
	case screenSummary:
		return "summary"
	case screenError:
		return "error"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

const (
	defaultCardWidth = 60
	maxCardWidth     = 72
	progressWidth    = 30
)

// studyModel drives one interactive study run: identity prompt, topic
// picker, card sessions and their summaries. It holds no session state of
// its own; the engine in App.State owns it.
type studyModel struct {
	app    *App
	ctx    context.Context
	screen screen
	width  int

	topics   []domain.TopicKey
	selected map[domain.TopicKey]bool
	cursor   int
	cards    []domain.Card
	autoRun  bool
	notice   string

	form  *huh.Form
	email string

	selectKeys  selectKeys
	cardKeys    cardKeys
	summaryKeys summaryKeys
	help        help.Model
	err         error
}

// newStudyModel builds the model. Cards preselected on the command line
// start a session as soon as the learner is identified. A non-nil loadErr
// shows the error page.
func newStudyModel(ctx context.Context, a *App, cards []domain.Card, topics []domain.TopicKey, loadErr error) *studyModel {
	m := &studyModel{
		app:         a,
		ctx:         ctx,
		selected:    make(map[domain.TopicKey]bool),
		cards:       cards,
		autoRun:     len(cards) > 0,
		selectKeys:  newSelectKeys(),
		cardKeys:    newCardKeys(),
		summaryKeys: newSummaryKeys(),
		help:        help.New(),
		err:         loadErr,
	}

	if loadErr != nil || a.State.Catalog == nil {
		m.screen = screenError
		return m
	}
	m.topics = a.State.Catalog.Topics()
	for _, t := range topics {
		m.selected[t] = true
	}

	if !a.State.Identity.Known() {
		m.screen = screenIdentity
		m.form = emailForm(&m.email)
		return m
	}
	m.afterIdentity()
	return m
}

func (m *studyModel) Init() tea.Cmd {
	if m.screen == screenIdentity && m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m *studyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.help.Width = ws.Width
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.screen == screenIdentity {
		return m.updateIdentity(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch m.screen {
	case screenSelect:
		return m.updateSelect(km)
	case screenCard:
		return m.updateCard(km)
	case screenSummary:
		return m.updateSummary(km)
	default:
		return m, tea.Quit
	}
}

// ── identity ─────────────────────────────────────────────────────────────────

func (m *studyModel) updateIdentity(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.app.State.Identity.Save(m.ctx, m.email); err != nil {
			m.notice = err.Error()
			m.email = ""
			m.form = emailForm(&m.email)
			return m, m.form.Init()
		}
		m.form = nil
		m.afterIdentity()
		return m, nil
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

func (m *studyModel) afterIdentity() {
	m.notice = ""
	if m.autoRun {
		m.autoRun = false
		m.startSession()
		return
	}
	m.screen = screenSelect
}

// ── topic picker ─────────────────────────────────────────────────────────────

func (m *studyModel) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.selectKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Toggle):
		if len(m.topics) > 0 {
			t := m.topics[m.cursor]
			m.selected[t] = !m.selected[t]
		}
	case key.Matches(msg, k.All):
		all := len(m.chosenTopics()) == len(m.topics)
		for _, t := range m.topics {
			m.selected[t] = !all
		}
	case key.Matches(msg, k.Start):
		cards, err := m.app.State.Selection(m.chosenTopics(), false)
		if err != nil || len(cards) == 0 {
			m.notice = "Select at least one subtopic with cards."
			return m, nil
		}
		m.cards = cards
		m.startSession()
	}
	return m, nil
}

// chosenTopics returns the selected topics in catalog order.
func (m *studyModel) chosenTopics() []domain.TopicKey {
	var chosen []domain.TopicKey
	for _, t := range m.topics {
		if m.selected[t] {
			chosen = append(chosen, t)
		}
	}
	return chosen
}

func (m *studyModel) startSession() {
	m.notice = ""
	m.app.State.Engine.Start(m.ctx, m.cards, deck.Weighted)
	m.syncSessionScreen()
}

func (m *studyModel) syncSessionScreen() {
	if m.app.State.Engine.State() == session.InSession {
		m.screen = screenCard
		return
	}
	m.screen = screenSummary
}

// ── session ──────────────────────────────────────────────────────────────────

func (m *studyModel) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cardKeys
	e := m.app.State.Engine
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Back):
		m.screen = screenSelect
		m.notice = "Session abandoned; ratings so far are saved."
		return m, nil
	case key.Matches(msg, k.DontKnow):
		e.Rate(m.ctx, domain.RatingDontKnow)
	case key.Matches(msg, k.Somewhat):
		e.Rate(m.ctx, domain.RatingSomewhat)
	case key.Matches(msg, k.KnowWell):
		e.Rate(m.ctx, domain.RatingKnowWell)
	case key.Matches(msg, k.Flip):
		e.Flip()
	}
	m.syncSessionScreen()
	return m, nil
}

func (m *studyModel) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.summaryKeys
	e := m.app.State.Engine
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Restart):
		m.notice = ""
		e.Restart(m.ctx, m.cards)
		m.syncSessionScreen()
	case key.Matches(msg, k.Review):
		if !e.ReviewWeak(m.ctx) {
			m.notice = "No weak cards to review."
			return m, nil
		}
		m.notice = ""
		m.syncSessionScreen()
	case key.Matches(msg, k.New):
		m.notice = ""
		m.screen = screenSelect
	}
	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *studyModel) View() string {
	var body string
	var keys help.KeyMap
	switch m.screen {
	case screenIdentity:
		body = m.viewIdentity()
	case screenSelect:
		body, keys = m.viewSelect(), m.selectKeys
	case screenCard:
		body, keys = m.viewCard(), m.cardKeys
	case screenSummary:
		body, keys = formatter.FormatSummary(m.app.State.Engine.Summary()), m.summaryKeys
	default:
		body = m.viewError()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("\n" + formatter.StyleYellow.Render(m.notice) + "\n")
	}
	if keys != nil {
		b.WriteString("\n" + m.help.View(keys))
	}
	return b.String()
}

func (m *studyModel) viewHeader() string {
	header := formatter.StyleHeader.Render("FLASHBOX") + " " + formatter.Dim(m.app.State.Config.Course)
	if email := m.app.State.Identity.Email(); email != "" {
		header += formatter.Dim("  ·  " + email)
	}
	return header + "\n" + formatter.Dim(strings.Repeat("─", max(m.width, 20)))
}

func (m *studyModel) viewIdentity() string {
	return formatter.Bold("Welcome! Before you start, tell us who you are.") + "\n\n" + m.form.View()
}

func (m *studyModel) viewSelect() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Choose subtopics"))
	b.WriteString("\n")

	store := m.app.State.Store
	cat := m.app.State.Catalog
	prevUnit := ""
	for i, t := range m.topics {
		if t.Unit != prevUnit {
			b.WriteString("\n" + formatter.Bold(t.Unit) + "\n")
			prevUnit = t.Unit
		}
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("› ")
		}
		check := formatter.Dim("[ ]")
		if m.selected[t] {
			check = formatter.StyleGreen.Render("[x]")
		}
		p := store.SubtopicProgress(cat.Select([]domain.TopicKey{t}))
		b.WriteString(fmt.Sprintf("%s%s %s  %s %s\n",
			cursor, check, t.Sub,
			formatter.RenderMasteryBar(p.Known, p.Somewhat, p.Total(), 8),
			formatter.Dim(fmt.Sprintf("%d/%d", p.Known, p.Total())),
		))
	}

	n := len(cat.Select(m.chosenTopics()))
	b.WriteString("\n" + formatter.Dim(formatter.Pluralize(n, "card")+" selected"))
	return b.String()
}

func (m *studyModel) viewCard() string {
	e := m.app.State.Engine
	card, ok := e.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		formatter.Bold(fmt.Sprintf("Card %d of %d", e.Position()+1, e.DeckLen())),
		formatter.Dim(card.Unit+" / "+card.Sub),
		formatter.BoxIndicator(m.app.State.Store.Box(card)),
	))
	b.WriteString(formatter.RenderProgress(float64(e.Position())/float64(e.DeckLen()), progressWidth))
	b.WriteString("\n\n")

	face := formatter.StyleBold.Render(card.Term)
	if e.Side() == session.Answer {
		face += "\n\n" + formatter.StyleFg.Render(card.Def)
	} else {
		face += "\n\n" + formatter.Dim("space to reveal")
	}
	width := defaultCardWidth
	if m.width > 0 {
		width = max(min(m.width-4, maxCardWidth), 20)
	}
	b.WriteString(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(formatter.ColorDim).
		Padding(1, 2).
		Width(width).
		Render(face))
	b.WriteString("\n\n")

	c := e.Counts()
	b.WriteString(fmt.Sprintf("%s  %s  %s",
		formatter.StyleRed.Render(fmt.Sprintf("✗ %d", c.DontKnow)),
		formatter.StyleYellow.Render(fmt.Sprintf("~ %d", c.Somewhat)),
		formatter.StyleGreen.Render(fmt.Sprintf("✓ %d", c.KnowWell)),
	))
	return b.String()
}

func (m *studyModel) viewError() string {
	msg := "no catalog loaded"
	if m.err != nil {
		msg = m.err.Error()
	}
	return formatter.RenderBox("Cannot start",
		formatter.StyleRed.Render(msg)+"\n\n"+
			formatter.Dim("Check FLASHBOX_CATALOG and try again. Press any key to exit."))
}

package cli

import (
	"context"
	"regexp"
	"testing"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/teatest"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// TestDriver wraps teatest.Driver with access to the study model's screen
// and the engine behind it.
type TestDriver struct {
	*teatest.Driver
	app *App
}

// NewTestDriver builds a study model over a and drains its Init. Cards and
// topics are the command-line preselection, as passed by the study command.
func NewTestDriver(t *testing.T, a *App, cards []domain.Card, topics []domain.TopicKey, loadErr error) *TestDriver {
	t.Helper()
	m := newStudyModel(context.Background(), a, cards, topics, loadErr)
	d := teatest.New(t, m, teatest.WithSize(100, 40))
	d.DrainInit()
	return &TestDriver{Driver: d, app: a}
}

func (d *TestDriver) model() *studyModel {
	return d.Model.(*studyModel)
}

// Screen returns the current page.
func (d *TestDriver) Screen() screen {
	return d.model().screen
}

// Notice returns the transient message line.
func (d *TestDriver) Notice() string {
	return d.model().notice
}

// RateAll rates every remaining card with the key for r.
func (d *TestDriver) RateAll(r rune) {
	d.T.Helper()
	for i := 0; d.Screen() == screenCard && i < 1000; i++ {
		d.PressKey(r)
	}
}

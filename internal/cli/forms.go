package cli

import (
	"github.com/alexanderramin/flashbox/internal/cli/formatter"
	"github.com/alexanderramin/flashbox/internal/progress"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// flashboxHuhTheme returns a huh theme using the formatter palette.
func flashboxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// emailForm collects the learner email. The value is validated the same
// way Identity.Save validates it.
func emailForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your email").
				Description("Attached to every session report for your course.").
				Placeholder("student@school.org").
				Value(value).
				Validate(func(s string) error {
					_, err := progress.ValidateEmail(s)
					return err
				}),
		),
	).WithTheme(flashboxHuhTheme()).WithShowHelp(false)
}

// confirmForm runs a standalone yes/no prompt.
func confirmForm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Reset").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(flashboxHuhTheme()).Run()
	return ok, err
}

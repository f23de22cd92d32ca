package cli

import (
	"errors"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errNotInteractive = errors.New("this command needs an interactive terminal")

// cmsHuhTheme returns a huh theme matching the formatter palette.
func cmsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// itemFormInput collects the fields of a new menu item.
type itemFormInput struct {
	Title  string
	URL    string
	NewTab bool
}

func titleInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Title").
		Placeholder("About us").
		Value(value).
		Validate(validation.Required)
}

func urlInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("URL (blank for a heading)").
		Placeholder("https://example.com/about").
		Value(value).
		Validate(validation.OptionalURL)
}

// menuItemForm returns a themed form for a new menu item.
func menuItemForm(in *itemFormInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			titleInput(&in.Title),
			urlInput(&in.URL),
			huh.NewConfirm().
				Title("Open in a new tab?").
				Value(&in.NewTab),
		),
	).WithTheme(cmsHuhTheme()).WithShowHelp(false)
}

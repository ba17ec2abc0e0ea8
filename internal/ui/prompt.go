package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
	"github.com/theburrowhub/aicommit/internal/revision"
)

// choiceLabels follows the classic "(Y)es (N)o (E)dit (Q)uick change type (C)opy" prompt.
var choiceLabels = map[revision.Choice]string{
	revision.ChoiceAccept:     "Yes, commit",
	revision.ChoiceReject:     "No, cancel",
	revision.ChoiceEdit:       "Edit in editor",
	revision.ChoiceReclassify: "Quick change type",
	revision.ChoiceCopy:       "Copy to clipboard",
}

// ChoiceLabel returns the menu label for c.
func ChoiceLabel(c revision.Choice) string {
	if label, ok := choiceLabels[c]; ok {
		return label
	}
	return string(c)
}

// Prompter asks the user through huh forms and shows messages in a panel.
// It implements revision.Presenter.
type Prompter struct {
	console    *Console
	accessible bool
}

// NewPrompter returns a Prompter. Forms fall back to line based accessible
// mode when stdin is not a terminal.
func NewPrompter(console *Console) *Prompter {
	return &Prompter{
		console:    console,
		accessible: !term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Show prints the rendered message in a panel.
func (p *Prompter) Show(rendered string) {
	p.console.Println(Panel("Commit Message", rendered))
}

// Choose asks what to do with the message. Accept is preselected.
func (p *Prompter) Choose(ctx context.Context) (revision.Choice, error) {
	choice := revision.ChoiceAccept
	options := make([]huh.Option[revision.Choice], 0, len(revision.Choices()))
	for _, c := range revision.Choices() {
		options = append(options, huh.NewOption(ChoiceLabel(c), c))
	}

	sel := huh.NewSelect[revision.Choice]().
		Title("Commit changes?").
		Options(options...).
		Value(&choice)
	if err := p.run(ctx, sel); err != nil {
		return "", err
	}
	return choice, nil
}

// ChooseType asks for a new commit type, starting at current.
func (p *Prompter) ChooseType(ctx context.Context, current commitmessage.Type) (commitmessage.Type, error) {
	selected := current
	options := make([]huh.Option[commitmessage.Type], 0, len(commitmessage.Types()))
	for _, t := range commitmessage.Types() {
		options = append(options, huh.NewOption(string(t), t))
	}

	sel := huh.NewSelect[commitmessage.Type]().
		Title("Quick change type").
		Options(options...).
		Value(&selected)
	if err := p.run(ctx, sel); err != nil {
		return "", err
	}
	return selected, nil
}

// Input asks for a line of free text.
func (p *Prompter) Input(ctx context.Context, title string) (string, error) {
	var value string
	in := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("%s cannot be empty", title)
			}
			return nil
		})
	if err := p.run(ctx, in); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, title string) (bool, error) {
	ok := false
	c := huh.NewConfirm().Title(title).Value(&ok)
	if err := p.run(ctx, c); err != nil {
		return false, err
	}
	return ok, nil
}

func (p *Prompter) run(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithShowHelp(false).
		RunWithContext(ctx)
}

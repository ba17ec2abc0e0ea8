package revision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
)

// fakePresenter replays scripted choices and types.
type fakePresenter struct {
	choices []Choice
	types   []commitmessage.Type
	shown   []string
	err     error
}

func (p *fakePresenter) Show(rendered string) {
	p.shown = append(p.shown, rendered)
}

func (p *fakePresenter) Choose(ctx context.Context) (Choice, error) {
	if p.err != nil {
		return "", p.err
	}
	if len(p.choices) == 0 {
		return "", errors.New("no scripted choice left")
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return c, nil
}

func (p *fakePresenter) ChooseType(ctx context.Context, current commitmessage.Type) (commitmessage.Type, error) {
	if len(p.types) == 0 {
		return "", errors.New("no scripted type left")
	}
	t := p.types[0]
	p.types = p.types[1:]
	return t, nil
}

type fakeEditor struct {
	result string
	err    error
	seeds  []string
}

func (e *fakeEditor) Edit(ctx context.Context, seed string) (string, error) {
	e.seeds = append(e.seeds, seed)
	return e.result, e.err
}

type fakeCommitter struct {
	messages []string
	err      error
}

func (c *fakeCommitter) Commit(ctx context.Context, message string) error {
	c.messages = append(c.messages, message)
	return c.err
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (c *fakeClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return c.err
}

type fixture struct {
	presenter *fakePresenter
	editor    *fakeEditor
	committer *fakeCommitter
	clipboard *fakeClipboard
	session   *Session
}

func newFixture(choices ...Choice) *fixture {
	f := &fixture{
		presenter: &fakePresenter{choices: choices},
		editor:    &fakeEditor{},
		committer: &fakeCommitter{},
		clipboard: &fakeClipboard{},
	}
	f.session = NewSession(f.presenter, f.editor, f.committer, f.clipboard)
	return f
}

func TestSessionAccept(t *testing.T) {
	f := newFixture(ChoiceAccept)

	out, err := f.session.Run(context.Background(), testMessage)
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, out.State)
	assert.Equal(t, []string{testMessage.Render()}, f.committer.messages)
	assert.Equal(t, testMessage.Render(), out.Text)
	assert.Equal(t, f.session.ID(), out.ID)
	assert.Len(t, f.presenter.shown, 1)
	assert.Empty(t, f.clipboard.copied)
}

func TestSessionReject(t *testing.T) {
	f := newFixture(ChoiceReject)

	out, err := f.session.Run(context.Background(), testMessage)
	require.NoError(t, err)

	assert.Equal(t, StateCancelled, out.State)
	assert.Empty(t, f.committer.messages)
	assert.Empty(t, f.clipboard.copied)
	assert.Empty(t, out.Text)
}

func TestSessionEditCommitsEditedText(t *testing.T) {
	f := newFixture(ChoiceEdit)
	f.editor.result = "docs: say what I mean\n"

	out, err := f.session.Run(context.Background(), testMessage)
	require.NoError(t, err)

	assert.Equal(t, StateCommitted, out.State)
	assert.Equal(t, []string{testMessage.Render()}, f.editor.seeds)
	assert.Equal(t, []string{"docs: say what I mean"}, f.committer.messages)
}

func TestSessionEditEmpty(t *testing.T) {
	f := newFixture(ChoiceEdit)
	f.editor.result = ""

	out, err := f.session.Run(context.Background(), testMessage)
	require.ErrorIs(t, err, ErrEmptyMessage)

	assert.Equal(t, StateAborted, out.State)
	assert.Empty(t, f.committer.messages)
}

func TestSessionEditorFailure(t *testing.T) {
	f := newFixture(ChoiceEdit)
	f.editor.err = errors.New("editor exited with status 1")

	out, err := f.session.Run(context.Background(), testMessage)
	require.ErrorIs(t, err, f.editor.err)
	assert.Equal(t, StateAborted, out.State)
	assert.Empty(t, f.committer.messages)
}

func TestSessionReclassifyThenAccept(t *testing.T) {
	f := newFixture(ChoiceReclassify, ChoiceReclassify, ChoiceReclassify, ChoiceAccept)
	f.presenter.types = []commitmessage.Type{
		commitmessage.TypeFeat,
		commitmessage.TypeDocs,
		commitmessage.TypePerf,
	}

	out, err := f.session.Run(context.Background(), testMessage)
	require.NoError(t, err)

	want := testMessage.WithType(commitmessage.TypePerf)
	assert.Equal(t, StateCommitted, out.State)
	assert.Equal(t, want, out.Message)
	require.Len(t, f.committer.messages, 1, "exactly one commit per session")
	assert.Equal(t, want.Render(), f.committer.messages[0])
	assert.Len(t, f.presenter.shown, 4)
	assert.Equal(t, "feat(parser): handle empty input\n\nReturn early instead of panicking.", f.presenter.shown[1])
}

func TestSessionCopy(t *testing.T) {
	f := newFixture(ChoiceCopy)

	out, err := f.session.Run(context.Background(), testMessage)
	require.NoError(t, err)

	assert.Equal(t, StateCopied, out.State)
	assert.Equal(t, []string{testMessage.Render()}, f.clipboard.copied)
	assert.Empty(t, f.committer.messages)
}

func TestSessionCollaboratorErrorsPropagate(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		f := newFixture(ChoiceAccept)
		f.committer.err = errors.New("pre-commit hook failed")

		out, err := f.session.Run(context.Background(), testMessage)
		require.ErrorIs(t, err, f.committer.err)
		assert.Equal(t, StateAborted, out.State)
		assert.Len(t, f.committer.messages, 1)
	})

	t.Run("clipboard", func(t *testing.T) {
		f := newFixture(ChoiceCopy)
		f.clipboard.err = errors.New("no clipboard utility")

		out, err := f.session.Run(context.Background(), testMessage)
		require.ErrorIs(t, err, f.clipboard.err)
		assert.Equal(t, StateAborted, out.State)
	})

	t.Run("presenter", func(t *testing.T) {
		f := newFixture()
		f.presenter.err = context.Canceled

		out, err := f.session.Run(context.Background(), testMessage)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateAborted, out.State)
		assert.Empty(t, f.committer.messages)
	})
}

func TestSessionInvalidTypeAborts(t *testing.T) {
	f := newFixture(ChoiceReclassify)
	f.presenter.types = []commitmessage.Type{"feature"}

	out, err := f.session.Run(context.Background(), testMessage)
	require.ErrorIs(t, err, commitmessage.ErrValidation)
	assert.Equal(t, StateAborted, out.State)
	assert.Empty(t, f.committer.messages)
}

func TestSessionRefusesSecondCommit(t *testing.T) {
	f := newFixture()
	f.session.committed = true

	err := f.session.apply(context.Background(), Effect{Kind: EffectCommit, Text: "fix: x"})
	require.ErrorIs(t, err, ErrAlreadyCommitted)
	assert.Empty(t, f.committer.messages)
}

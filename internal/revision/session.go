package revision

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
)

// ErrAlreadyCommitted guards against a second commit within one session.
var ErrAlreadyCommitted = errors.New("session already committed")

// Presenter shows the message and collects the user's decisions.
type Presenter interface {
	Show(rendered string)
	Choose(ctx context.Context) (Choice, error)
	ChooseType(ctx context.Context, current commitmessage.Type) (commitmessage.Type, error)
}

// Editor opens a free-text editing surface seeded with text.
type Editor interface {
	Edit(ctx context.Context, seed string) (string, error)
}

// Committer records a commit with the given message.
type Committer interface {
	Commit(ctx context.Context, message string) error
}

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// Outcome describes how a session ended.
type Outcome struct {
	ID    string
	State State
	// Message is the structured message at the end of the session,
	// including any reclassification.
	Message commitmessage.Message
	// Text is what was committed or copied; empty otherwise.
	Text string
}

// Session runs one revision workflow. It is not safe for concurrent use and
// must not be reused after Run returns.
type Session struct {
	id        string
	presenter Presenter
	editor    Editor
	committer Committer
	clipboard Clipboard
	logger    *log.Logger

	committed bool
}

// NewSession creates a session bound to its collaborators.
func NewSession(presenter Presenter, editor Editor, committer Committer, clipboard Clipboard) *Session {
	id := uuid.NewString()
	return &Session{
		id:        id,
		presenter: presenter,
		editor:    editor,
		committer: committer,
		clipboard: clipboard,
		logger:    log.Default().WithPrefix("revision").With("session", id),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Run presents msg and applies user transitions until a terminal state.
// Errors from collaborators are returned wrapped; the outcome state is then
// StateAborted and nothing further is committed.
func (s *Session) Run(ctx context.Context, msg commitmessage.Message) (Outcome, error) {
	state := StatePresented
	var pending Effect

	abort := func(err error) (Outcome, error) {
		s.logger.Debug("session aborted", "state", state, "err", err)
		return Outcome{ID: s.id, State: StateAborted, Message: msg}, err
	}

	s.logger.Debug("session started", "type", msg.Type)

	for !state.Terminal() {
		var ev Event
		switch state {
		case StatePresented:
			s.presenter.Show(msg.Render())
			choice, err := s.presenter.Choose(ctx)
			if err != nil {
				return abort(fmt.Errorf("read choice: %w", err))
			}
			ev = Choose(choice)
		case StateEditing:
			text, err := s.editor.Edit(ctx, pending.Text)
			if err != nil {
				return abort(fmt.Errorf("edit message: %w", err))
			}
			ev = Edited(text)
		case StateReclassifying:
			t, err := s.presenter.ChooseType(ctx, pending.Type)
			if err != nil {
				return abort(fmt.Errorf("choose type: %w", err))
			}
			ev = TypeSelected(t)
		}

		next, nextMsg, effect, err := Step(state, ev, msg)
		if err != nil {
			return abort(err)
		}
		s.logger.Debug("transition", "from", state, "to", next, "effect", effect.Kind)
		state, msg, pending = next, nextMsg, effect

		if err := s.apply(ctx, effect); err != nil {
			return abort(err)
		}
	}

	out := Outcome{ID: s.id, State: state, Message: msg}
	if pending.Kind == EffectCommit || pending.Kind == EffectCopy {
		out.Text = pending.Text
	}
	s.logger.Debug("session finished", "state", state)
	return out, nil
}

// apply performs the side effects that complete inside a single step.
// Editor and type picker effects are served at the top of the next iteration.
func (s *Session) apply(ctx context.Context, effect Effect) error {
	switch effect.Kind {
	case EffectCommit:
		if s.committed {
			return ErrAlreadyCommitted
		}
		s.committed = true
		if err := s.committer.Commit(ctx, effect.Text); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
	case EffectCopy:
		if err := s.clipboard.Copy(effect.Text); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

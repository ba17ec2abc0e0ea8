// Package revision drives a single commit drafting session from a generated
// message to exactly one terminal disposition.
//
// The decision logic lives in Step, a pure transition function. Session
// executes the effects Step asks for (commit, copy, open the editor, ask for a
// type) through injected collaborators.
package revision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theburrowhub/aicommit/internal/commitmessage"
)

var (
	// ErrEmptyMessage is returned when the edited message is blank.
	ErrEmptyMessage = errors.New("commit message is empty")
	// ErrSessionClosed is returned when an event arrives after a terminal state.
	ErrSessionClosed = errors.New("session already finished")
	// ErrUnexpectedEvent is returned when an event does not apply to the current state.
	ErrUnexpectedEvent = errors.New("unexpected event")
	// ErrUnknownChoice is returned for a choice outside the five known tokens.
	ErrUnknownChoice = errors.New("unknown choice")
)

// State is a workflow state.
type State int

const (
	StatePresented State = iota
	StateEditing
	StateReclassifying
	StateCommitted
	StateCancelled
	StateCopied
	StateAborted
)

var stateNames = map[State]string{
	StatePresented:     "presented",
	StateEditing:       "editing",
	StateReclassifying: "reclassifying",
	StateCommitted:     "committed",
	StateCancelled:     "cancelled",
	StateCopied:        "copied",
	StateAborted:       "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool {
	switch s {
	case StateCommitted, StateCancelled, StateCopied, StateAborted:
		return true
	}
	return false
}

// Choice is the user's decision at the Presented state.
type Choice string

const (
	ChoiceAccept     Choice = "accept"
	ChoiceReject     Choice = "reject"
	ChoiceEdit       Choice = "edit"
	ChoiceReclassify Choice = "reclassify"
	ChoiceCopy       Choice = "copy"
)

// shortcuts are the single-key answers of the classic prompt:
// (Y)es (N)o (E)dit (Q)uick change type (C)opy.
var shortcuts = map[string]Choice{
	"y": ChoiceAccept,
	"n": ChoiceReject,
	"e": ChoiceEdit,
	"q": ChoiceReclassify,
	"c": ChoiceCopy,
}

// Choices returns the five choices in prompt order.
func Choices() []Choice {
	return []Choice{ChoiceAccept, ChoiceReject, ChoiceEdit, ChoiceReclassify, ChoiceCopy}
}

// ParseChoice accepts a full token or its one-letter shortcut, case-insensitively.
func ParseChoice(s string) (Choice, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := shortcuts[s]; ok {
		return c, nil
	}
	for _, c := range Choices() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChoice, s)
}

// EventKind distinguishes the inputs Step understands.
type EventKind int

const (
	EventChoice EventKind = iota
	EventEdited
	EventTypeSelected
)

// Event is one input to the machine.
type Event struct {
	Kind   EventKind
	Choice Choice
	Text   string
	Type   commitmessage.Type
}

// Choose wraps a user choice.
func Choose(c Choice) Event { return Event{Kind: EventChoice, Choice: c} }

// Edited wraps the text returned by the editor.
func Edited(text string) Event { return Event{Kind: EventEdited, Text: text} }

// TypeSelected wraps the type picked while reclassifying.
func TypeSelected(t commitmessage.Type) Event { return Event{Kind: EventTypeSelected, Type: t} }

// EffectKind is the side effect requested by a transition.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectCommit
	EffectCopy
	EffectOpenEditor
	EffectChooseType
)

func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectCommit:
		return "commit"
	case EffectCopy:
		return "copy"
	case EffectOpenEditor:
		return "open-editor"
	case EffectChooseType:
		return "choose-type"
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

// Effect carries the data the effect needs: the message text for commit, copy
// and editor seed, the current type for the type picker.
type Effect struct {
	Kind EffectKind
	Text string
	Type commitmessage.Type
}

// Step is the transition function. It never performs I/O.
func Step(state State, ev Event, msg commitmessage.Message) (State, commitmessage.Message, Effect, error) {
	if state.Terminal() {
		return state, msg, Effect{}, ErrSessionClosed
	}

	switch state {
	case StatePresented:
		if ev.Kind != EventChoice {
			return state, msg, Effect{}, unexpected(state, ev)
		}
		switch ev.Choice {
		case ChoiceAccept:
			return StateCommitted, msg, Effect{Kind: EffectCommit, Text: msg.Render()}, nil
		case ChoiceReject:
			return StateCancelled, msg, Effect{}, nil
		case ChoiceEdit:
			return StateEditing, msg, Effect{Kind: EffectOpenEditor, Text: msg.Render()}, nil
		case ChoiceReclassify:
			return StateReclassifying, msg, Effect{Kind: EffectChooseType, Type: msg.Type}, nil
		case ChoiceCopy:
			return StateCopied, msg, Effect{Kind: EffectCopy, Text: msg.Render()}, nil
		}
		return state, msg, Effect{}, fmt.Errorf("%w: %q", ErrUnknownChoice, ev.Choice)

	case StateEditing:
		if ev.Kind != EventEdited {
			return state, msg, Effect{}, unexpected(state, ev)
		}
		// Edited text is final: it is committed as written, not re-parsed.
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return StateAborted, msg, Effect{}, ErrEmptyMessage
		}
		return StateCommitted, msg, Effect{Kind: EffectCommit, Text: text}, nil

	case StateReclassifying:
		if ev.Kind != EventTypeSelected {
			return state, msg, Effect{}, unexpected(state, ev)
		}
		t, err := commitmessage.ParseType(string(ev.Type))
		if err != nil {
			return state, msg, Effect{}, err
		}
		return StatePresented, msg.WithType(t), Effect{}, nil
	}

	return state, msg, Effect{}, fmt.Errorf("%w: unknown state %s", ErrUnexpectedEvent, state)
}

func unexpected(state State, ev Event) error {
	return fmt.Errorf("%w: kind %d in state %s", ErrUnexpectedEvent, ev.Kind, state)
}

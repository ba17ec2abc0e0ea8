// Package commitmessage holds the structured conventional commit message
// produced by the model and its canonical git rendering.
package commitmessage

import (
	"strconv"
	"strings"

	"github.com/theburrowhub/aicommit/internal/schema"
)

func init() {
	schema.Register(schema.LabelCommitMessage, Message{})
}

// Type is the conventional commit classification.
type Type string

const (
	TypeFix      Type = "fix"
	TypeFeat     Type = "feat"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeBuild    Type = "build"
	TypeCI       Type = "ci"
	TypeChore    Type = "chore"
)

var allTypes = []Type{
	TypeFix, TypeFeat, TypeDocs, TypeStyle, TypeRefactor,
	TypePerf, TypeTest, TypeBuild, TypeCI, TypeChore,
}

// Types returns every valid Type in picker order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// Valid reports whether t is one of the known tokens.
func (t Type) Valid() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Enum exposes the token set to the JSON schema reflector.
func (Type) Enum() []interface{} {
	out := make([]interface{}, 0, len(allTypes))
	for _, t := range allTypes {
		out = append(out, string(t))
	}
	return out
}

// ParseType converts a raw token into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", &ValidationError{Field: "message_type", Reason: "unknown type " + strconv.Quote(s)}
	}
	return t, nil
}

// Message is a conventional commit message.
type Message struct {
	Type             Type     `json:"message_type" required:"true"`
	Scope            string   `json:"message_scope,omitempty" title:"scope" description:"The scope of the message. Scope can be a unique filename, module or list of modules"`
	Title            string   `json:"title" required:"true" description:"The title of the message"`
	Body             string   `json:"body,omitempty" description:"The body of the message"`
	IsBreakingChange bool     `json:"is_breaking_change" default:"false"`
	Footer           string   `json:"footer,omitempty" description:"The reason for breaking change when is_breaking_change is true. Must be omitted if there are no breaking changes"`
	_                struct{} `additionalProperties:"false"`
}

// Render returns the message as git expects it:
//
//	<type>[(scope)]: <title>
//
//	[body]
//
//	[BREAKING CHANGE: <footer>]
func (m Message) Render() string {
	var b strings.Builder
	b.WriteString(string(m.Type))
	if strings.TrimSpace(m.Scope) != "" {
		b.WriteString("(")
		b.WriteString(m.Scope)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(strings.ToLower(m.Title))

	if m.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Body)
	}

	if m.IsBreakingChange && m.Footer != "" {
		b.WriteString("\n\nBREAKING CHANGE: ")
		b.WriteString(m.Footer)
	}

	return b.String()
}

// String implements fmt.Stringer.
func (m Message) String() string {
	return m.Render()
}

// WithType returns a copy of m reclassified as t.
func (m Message) WithType(t Type) Message {
	m.Type = t
	return m
}

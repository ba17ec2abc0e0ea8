package commitmessage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("invalid commit message")

// ValidationError reports generated data that does not fit the Message schema.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate builds a Message from the model's raw structured output.
// The payload must be a JSON object; a surrounding Markdown fence is tolerated.
func Validate(raw []byte) (Message, error) {
	payload := extractObject(string(raw))
	if payload == "" {
		return Message{}, &ValidationError{Reason: "response does not contain a JSON object"}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return Message{}, &ValidationError{Reason: fmt.Sprintf("decode response: %v", err)}
	}

	return FromMap(fields)
}

// FromMap builds a Message from already decoded, untyped data.
func FromMap(fields map[string]any) (Message, error) {
	if fields == nil {
		return Message{}, &ValidationError{Reason: "no data"}
	}

	rawType, err := stringField(fields, "message_type")
	if err != nil {
		return Message{}, err
	}
	if rawType == "" {
		return Message{}, &ValidationError{Field: "message_type", Reason: "required"}
	}
	msgType, err := ParseType(rawType)
	if err != nil {
		return Message{}, err
	}

	title, err := stringField(fields, "title")
	if err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(title) == "" {
		return Message{}, &ValidationError{Field: "title", Reason: "required"}
	}

	scope, err := stringField(fields, "message_scope")
	if err != nil {
		return Message{}, err
	}
	body, err := stringField(fields, "body")
	if err != nil {
		return Message{}, err
	}
	footer, err := stringField(fields, "footer")
	if err != nil {
		return Message{}, err
	}

	breaking := false
	if v, ok := fields["is_breaking_change"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return Message{}, &ValidationError{Field: "is_breaking_change", Reason: fmt.Sprintf("expected boolean, got %T", v)}
		}
		breaking = b
	}

	return Message{
		Type:             msgType,
		Scope:            scope,
		Title:            title,
		Body:             body,
		IsBreakingChange: breaking,
		Footer:           footer,
	}, nil
}

// stringField returns fields[key] as a string. Missing keys and JSON null read as "".
func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return s, nil
}

// extractObject trims whitespace and code fences and returns the outermost
// {...} span, or "" when there is none.
func extractObject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

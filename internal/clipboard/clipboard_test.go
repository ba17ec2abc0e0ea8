package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	var got string
	s := &System{writeAll: func(text string) error {
		got = text
		return nil
	}}

	require.NoError(t, s.Copy("fix: correct typo in readme"))
	assert.Equal(t, "fix: correct typo in readme", got)
}

func TestCopyUnsupported(t *testing.T) {
	called := false
	s := &System{unsupported: true, writeAll: func(string) error {
		called = true
		return nil
	}}

	require.ErrorIs(t, s.Copy("x"), ErrUnsupported)
	assert.False(t, called)
}

func TestCopyPropagatesError(t *testing.T) {
	writeErr := errors.New("exit status 1")
	s := &System{writeAll: func(string) error { return writeErr }}

	require.ErrorIs(t, s.Copy("x"), writeErr)
}

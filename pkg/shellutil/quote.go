// Package shellutil builds command lines for `sh -c`.
package shellutil

import "strings"

// Quote quotes a string for safe use in shell commands using single quotes.
// Single quotes preserve everything literally, including newlines.
// Embedded single quotes are handled with the '\'' trick.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Command appends quoted args to program. program is left as written so user
// configured commands such as "code --wait" keep their own arguments.
func Command(program string, args ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(program))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(Quote(arg))
	}
	return b.String()
}

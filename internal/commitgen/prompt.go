package commitgen

import (
	"fmt"
	"strings"
)

const commitRules = `Based on the diff above, provide a concise and meaningful git commit.
The commit message should be structured as follows:
<type>[optional scope]: <description>

[optional body]

[optional footer(s)]
-------------------------------------
The commit contains the following structural elements, to communicate intent to the consumers of your library:
fix: a commit of the type fix patches a bug in your codebase (this correlates with PATCH in Semantic Versioning).
feat: a commit of the type feat introduces a new feature to the codebase (this correlates with MINOR in Semantic Versioning).
BREAKING CHANGE: a commit that has a footer BREAKING CHANGE: introduces a breaking API change (correlating with MAJOR in Semantic Versioning). A BREAKING CHANGE can be part of commits of any type.
Types other than fix: and feat: are allowed: build:, chore:, ci:, docs:, style:, refactor:, perf:, test:.
Use conventional commits and the imperative mood in the first line.
The first line should be less than 50 characters.
The body should be wrapped at 72 characters.
Only one subject line is allowed.
When there is only one file edit, use the file name as the scope.
When there are multiple file edits, use the module name as the scope.
When there are multiple modules edited, do not set a scope.
Set is_breaking_change only for incompatible changes and explain them in footer.
Examples:
fix: correct typo in README
---------------------------------
refactor: improve performance of the algorithm
---------------------------------
docs: update README
---------------------------------
style: format code
---------------------------------
build: update dependencies
---------------------------------
feat(main.py): add new feature to the backend
 - add new endpoint to the API
 - update the database schema`

// BuildPrompt builds the instruction prompt for the staged diff of branch.
func BuildPrompt(branch, diff string) string {
	var b strings.Builder
	b.WriteString("You are an advanced AI model trained to generate meaningful and concise git commit messages.\n\n")
	fmt.Fprintf(&b, "Below is the git diff of the staged changes in the current repository for branch %s:\n", branch)
	b.WriteString("====================================\n")
	b.WriteString(diff)
	b.WriteString("\n====================================\n\n")
	b.WriteString(commitRules)
	return b.String()
}

// truncateDiff caps the diff at maxBytes, cutting on a line boundary when
// possible. maxBytes <= 0 disables the cap.
func truncateDiff(diff string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff, false
	}
	cut := diff[:maxBytes]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n\n... (diff truncated)", true
}

// Package markdown tidies markdown documents: it tags unlabeled code fences
// with a detected language and collapses runs of blank lines.
package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// Extensions are the file suffixes treated as markdown.
var Extensions = []string{".md", ".mdx"}

// fencePattern captures indentation, info string, body and closing fence.
// The closing fence must repeat the opening indentation, hence regexp2.
var fencePattern = mustCompile(
	`^([ \t]{0,3})`+"```"+`([^\n]*)\n(.*?)(\n\1`+"```"+`)\s*$`,
	regexp2.Multiline|regexp2.Singleline,
)

var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// IsMarkdownPath reports whether path ends in a markdown extension (case-sensitive).
func IsMarkdownPath(path string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Format returns content with language tags added to unlabeled fences,
// blank-line runs collapsed and exactly one trailing newline.
// The blank-line collapse applies to the whole document, fence bodies included.
func Format(content string) string {
	out := TagFences(content)
	out = CollapseBlankLines(out)
	return strings.TrimRightFunc(out, isSpace) + "\n"
}

// TagFences rewrites the opening line of every fence with an empty info string.
func TagFences(content string) string {
	out, err := fencePattern.ReplaceFunc(content, tagFence, -1, -1)
	if err != nil {
		return content
	}
	return out
}

func tagFence(m regexp2.Match) string {
	indent := m.GroupByNumber(1).String()
	info := m.GroupByNumber(2).String()
	body := m.GroupByNumber(3).String()
	closing := m.GroupByNumber(4).String()

	if strings.TrimFunc(info, isSpace) != "" {
		return m.String()
	}
	return indent + "```" + DetectLanguage(body) + "\n" + body + closing + "\n"
}

// isSpace is unicode.IsSpace widened to the information separators
// U+001C..U+001F, which count as whitespace when trimming documents and fences.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// mustCompile compiles a regexp2 pattern whose \s also matches U+001C..U+001F,
// keeping regex whitespace in line with isSpace. \s must not appear inside a
// character class.
func mustCompile(pattern string, opts regexp2.RegexOptions) *regexp2.Regexp {
	return regexp2.MustCompile(strings.ReplaceAll(pattern, `\s`, `[\s\x1c-\x1f]`), opts)
}

// CollapseBlankLines reduces every run of three or more newlines to two.
func CollapseBlankLines(content string) string {
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}

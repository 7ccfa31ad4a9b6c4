package markdown

import (
	"strings"
	"testing"
)

func TestFormatTagsUnlabeledFence(t *testing.T) {
	input := "# Title\n\n```\n{\"a\": 1}\n```\n"
	want := "# Title\n\n```json\n{\"a\": 1}\n```\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatKeepsExistingInfoString(t *testing.T) {
	input := "```python\n{\"a\": 1}\n```\n"
	if got := Format(input); got != input {
		t.Errorf("Expected tagged fence to be unchanged, got %q", got)
	}
}

func TestFormatWhitespaceOnlyInfoString(t *testing.T) {
	input := "```   \nSELECT * FROM t\n```\n"
	want := "```sql\nSELECT * FROM t\n```\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatIndentedFence(t *testing.T) {
	input := "  ```\n  console.log(1)\n  ```\n"
	want := "  ```javascript\n  console.log(1)\n  ```\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatMismatchedClosingIndentIsNotAFence(t *testing.T) {
	input := "  ```\nSELECT 1\n```\n"
	if got := Format(input); got != input {
		t.Errorf("Expected no rewrite when closing indentation differs, got %q", got)
	}
}

func TestFormatSeparatesFenceFromFollowingText(t *testing.T) {
	input := "```\nSELECT 1\n```\nafter\n"
	want := "```sql\nSELECT 1\n```\n\nafter\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatMultipleFences(t *testing.T) {
	input := "intro\n\n```\ndef f(x):\n    return x+1\n```\n\n```bash\nls\n```\n\n```\nhello\n```\n"
	want := "intro\n\n```python\ndef f(x):\n    return x+1\n```\n\n```bash\nls\n```\n\n```text\nhello\n```\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatUnclosedFence(t *testing.T) {
	input := "```\nno closing fence\n"
	if got := Format(input); got != input {
		t.Errorf("Expected unclosed fence to be left alone, got %q", got)
	}
}

func TestFormatCollapsesBlankLines(t *testing.T) {
	got := Format("a\n\n\n\nb")
	if got != "a\n\nb\n" {
		t.Errorf("Format() = %q, want %q", got, "a\n\nb\n")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("Expected no run of three newlines")
	}
}

func TestFormatCollapsesInsideFenceBodies(t *testing.T) {
	input := "```python\na\n\n\n\nb\n```\n"
	want := "```python\na\n\nb\n```\n"
	if got := Format(input); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatTrailingWhitespace(t *testing.T) {
	testCases := map[string]string{
		"a   \n\n\n":      "a\n",
		"a":               "a\n",
		"":                "\n",
		"a\n":             "a\n",
		"a\t \n \n":       "a\n",
		"a\x1c\x1d\n\x1f": "a\n",
	}
	for in, want := range testCases {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatInformationSeparatorsAreWhitespace(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"after closing fence", "```\nx\x1c\n```\x1c", "```text\nx\x1c\n```\n"},
		{"as info string", "```\x1e\ncode\n```", "```text\ncode\n```\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.in); got != tc.want {
				t.Errorf("Format(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	inputs := []string{
		"# Doc\n\n```\n{\"a\": 1}\n```\ntext\n\n\n\nmore\n```\nSELECT 1\n```",
		"```\nSELECT 1\n```\n```\nls -la\n```\n",
		"  ```\n  <p>hi</p>\n  ```\n\n\n\n```ts\nconst a = 1\n```\n   \n",
		"no fences at all\n\n\n",
	}
	for _, in := range inputs {
		once := Format(in)
		twice := Format(once)
		if once != twice {
			t.Errorf("Format not idempotent for %q:\nfirst:  %q\nsecond: %q", in, once, twice)
		}
	}
}

func TestIsMarkdownPath(t *testing.T) {
	testCases := map[string]bool{
		"README.md":      true,
		"docs/page.mdx":  true,
		"NOTES.MD":       false,
		"doc.markdown":   false,
		"md":             false,
		"script.md.bak":  false,
		"/abs/path/x.md": true,
	}
	for path, want := range testCases {
		if got := IsMarkdownPath(path); got != want {
			t.Errorf("IsMarkdownPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := NormalizeNewlines("a\r\nb\rc\n"); got != "a\nb\nc\n" {
		t.Errorf("NormalizeNewlines() = %q", got)
	}
}

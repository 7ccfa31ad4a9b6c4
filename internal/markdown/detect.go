package markdown

import (
	"encoding/json"
	"strings"

	"github.com/dlclark/regexp2"
)

// DefaultLanguage is returned when no detection rule matches.
const DefaultLanguage = "text"

// languageRule pairs a fence tag with the predicate that selects it
type languageRule struct {
	lang  string
	match func(string) bool
}

var (
	tsDeclPattern     = mustCompile(`\b(interface|type|enum)\s+\w+`, regexp2.None)
	tsAnnotation      = mustCompile(`:\s*(string|number|boolean|any)\b`, regexp2.None)
	jsDeclPattern     = mustCompile(`\b(function\s+\w+\s*\(|const\s+\w+\s*=)`, regexp2.None)
	jsArrowOrConsole  = mustCompile(`=>|console\.(log|error)`, regexp2.None)
	pyDefPattern      = mustCompile(`^\s*def\s+\w+\s*\(`, regexp2.Multiline)
	pyImportPattern   = mustCompile(`^\s*(import|from)\s+\w+`, regexp2.Multiline)
	sqlKeywordPattern = mustCompile(`\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER)\s+`, regexp2.IgnoreCase)
	shebangPattern    = mustCompile(`^#!.*\b(bash|sh)\b`, regexp2.Multiline)
	shellKeyword      = mustCompile(`\b(if|then|fi|for|in|do|done)\b`, regexp2.None)
	htmlTagPattern    = mustCompile(`<[a-zA-Z][^>]*>`, regexp2.None)
	cssRulePattern    = mustCompile(`[.#][\w-]+\s*\{`, regexp2.None)
)

// languageRules is evaluated top to bottom; the first match wins.
var languageRules = []languageRule{
	{"json", isJSON},
	{"typescript", anyOf(tsDeclPattern, tsAnnotation)},
	{"javascript", anyOf(jsDeclPattern, jsArrowOrConsole)},
	{"python", anyOf(pyDefPattern, pyImportPattern)},
	{"sql", anyOf(sqlKeywordPattern)},
	{"bash", anyOf(shebangPattern, shellKeyword)},
	{"html", anyOf(htmlTagPattern)},
	{"css", anyOf(cssRulePattern)},
}

// DetectLanguage guesses a fence tag for a code block body.
func DetectLanguage(code string) string {
	s := strings.TrimFunc(code, isSpace)
	for _, rule := range languageRules {
		if !rule.match(s) {
			continue
		}
		if rule.lang == "html" && strings.Contains(s, "className=") {
			return "tsx"
		}
		return rule.lang
	}
	return DefaultLanguage
}

// isJSON requires an object or array opener and a body that parses as JSON.
func isJSON(s string) bool {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return json.Valid([]byte(s))
}

func anyOf(patterns ...*regexp2.Regexp) func(string) bool {
	return func(s string) bool {
		for _, re := range patterns {
			if matches(re, s) {
				return true
			}
		}
		return false
	}
}

// matches treats an engine error (only possible on timeout) as no match.
func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

package core

import "github.com/klauern/edit-guard/internal/constants"

// EventType represents a Claude Code hook event
type EventType string

// Claude Code events the built-in hooks attach to
const (
	PreToolUseEvent  EventType = "PreToolUse"
	PostToolUseEvent EventType = "PostToolUse"
)

// Installation describes where a built-in hook is wired into settings.json
type Installation struct {
	Event   EventType
	Matcher string
}

// DefaultInstallation returns the event and matcher a built-in hook is installed with.
// PathGuard must run before the edit, MarkdownTidy after it.
func DefaultInstallation(hookKey string) (Installation, bool) {
	switch hookKey {
	case constants.HookPathGuard:
		return Installation{Event: PreToolUseEvent, Matcher: constants.FileEditMatcher}, true
	case constants.HookMarkdownTidy:
		return Installation{Event: PostToolUseEvent, Matcher: constants.FileEditMatcher}, true
	}
	return Installation{}, false
}

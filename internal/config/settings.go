package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/klauern/edit-guard/internal/constants"
)

// HookCommand is one command entry under a settings.json matcher
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout *int   `json:"timeout,omitempty"`
}

// HookMatcher groups hook commands under a tool-name matcher
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// HooksConfig maps an event name (PreToolUse, PostToolUse, ...) to its matchers.
// Events this tool never installs on are carried through untouched.
type HooksConfig map[string][]HookMatcher

// Settings is a Claude Code settings.json file
type Settings struct {
	Hooks HooksConfig            `json:"hooks,omitempty"`
	Other map[string]interface{} `json:"-"`
}

// SettingsPath returns the project (./.claude/settings.json) or global
// (~/.claude/settings.json) settings path.
func SettingsPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return constants.GetSettingsPath(homeDir), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return constants.GetSettingsPath(cwd), nil
}

// LoadSettings reads settingsPath, returning empty settings if it does not exist.
// Unknown top-level keys are kept in Other.
func LoadSettings(settingsPath string) (*Settings, error) {
	settings := &Settings{
		Hooks: HooksConfig{},
		Other: make(map[string]interface{}),
	}

	data, err := os.ReadFile(settingsPath) // #nosec G304 - controlled settings paths
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON: %v", err)
	}

	if hooks, ok := raw["hooks"]; ok {
		if err := json.Unmarshal(hooks, &settings.Hooks); err != nil {
			return nil, fmt.Errorf("failed to parse settings hooks: %v", err)
		}
		if settings.Hooks == nil {
			settings.Hooks = HooksConfig{}
		}
		delete(raw, "hooks")
	}

	for k, v := range raw {
		var value interface{}
		if err := json.Unmarshal(v, &value); err != nil {
			return nil, fmt.Errorf("failed to parse settings key %q: %v", k, err)
		}
		settings.Other[k] = value
	}

	return settings, nil
}

// SaveSettings writes settings as indented JSON, creating the directory if needed
func SaveSettings(settingsPath string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	output := make(map[string]interface{}, len(settings.Other)+1)
	for k, v := range settings.Other {
		output[k] = v
	}
	if !settings.Hooks.IsEmpty() {
		output["hooks"] = settings.Hooks
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	if err := os.WriteFile(settingsPath, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}
	return nil
}

// IsEmpty reports whether no event has any matcher
func (h HooksConfig) IsEmpty() bool {
	for _, matchers := range h {
		if len(matchers) > 0 {
			return false
		}
	}
	return true
}

// MergeResult represents the result of merging hook matchers
type MergeResult struct {
	Matchers      []HookMatcher
	WasDuplicate  bool
	DuplicateInfo string
}

// AddHookToSettings adds command under event/matcher. An identical command is left
// alone; an edit-guard command for the same hook key is replaced in place.
func AddHookToSettings(settings *Settings, event, matcher, command string, timeout *int) MergeResult {
	if settings.Hooks == nil {
		settings.Hooks = HooksConfig{}
	}

	hookMatcher := HookMatcher{
		Matcher: matcher,
		Hooks: []HookCommand{{
			Type:    "command",
			Command: command,
			Timeout: timeout,
		}},
	}

	result := mergeHookMatcher(settings.Hooks[event], hookMatcher)
	settings.Hooks[event] = result.Matchers
	return result
}

var hookKeyPattern = regexp.MustCompile(regexp.QuoteMeta(constants.BinaryName) + `\s+run\s+([\w-]+)`)

// ExtractHookKey returns the hook key of an edit-guard command, or ""
// Example: "/usr/local/bin/edit-guard run path-guard --log" -> "path-guard"
func ExtractHookKey(command string) string {
	matches := hookKeyPattern.FindStringSubmatch(command)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// IsEditGuardCommand checks if a settings command runs this binary
func IsEditGuardCommand(command string) bool {
	return ExtractHookKey(command) != ""
}

// MatchesHookKey reports whether command runs the given hook, whatever the
// executable path or trailing flags.
func MatchesHookKey(command, hookKey string) bool {
	return hookKey != "" && ExtractHookKey(command) == hookKey
}

func mergeHookMatcher(existing []HookMatcher, incoming HookMatcher) MergeResult {
	for i, matcher := range existing {
		if matcher.Matcher != incoming.Matcher {
			continue
		}
		for j, existingHook := range matcher.Hooks {
			for _, newHook := range incoming.Hooks {
				if existingHook.Command == newHook.Command {
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Hook command '%s' already exists for matcher '%s'", newHook.Command, matcher.Matcher),
					}
				}

				newKey := ExtractHookKey(newHook.Command)
				if newKey != "" && ExtractHookKey(existingHook.Command) == newKey {
					existing[i].Hooks[j] = newHook
					return MergeResult{
						Matchers:      existing,
						WasDuplicate:  true,
						DuplicateInfo: fmt.Sprintf("Replaced existing %s hook with updated command for matcher '%s'", newKey, matcher.Matcher),
					}
				}
			}
		}
		existing[i].Hooks = append(existing[i].Hooks, incoming.Hooks...)
		return MergeResult{Matchers: existing}
	}
	return MergeResult{Matchers: append(existing, incoming)}
}

// RemoveHookFromSettings removes every edit-guard command for hookKey across all
// events and returns how many were removed. Matchers left empty are dropped.
func RemoveHookFromSettings(settings *Settings, hookKey string) int {
	removed := 0
	for event, matchers := range settings.Hooks {
		var kept []HookMatcher
		for _, matcher := range matchers {
			var filtered []HookCommand
			for _, hook := range matcher.Hooks {
				if MatchesHookKey(hook.Command, hookKey) {
					removed++
					continue
				}
				filtered = append(filtered, hook)
			}
			if len(filtered) > 0 {
				matcher.Hooks = filtered
				kept = append(kept, matcher)
			}
		}
		if len(kept) == 0 {
			delete(settings.Hooks, event)
		} else {
			settings.Hooks[event] = kept
		}
	}
	return removed
}

// InstalledHook describes an edit-guard command found in settings
type InstalledHook struct {
	Event   string
	Matcher string
	HookKey string
	Command string
}

// InstalledHooks lists edit-guard commands in settings, sorted by event then key
func InstalledHooks(settings *Settings) []InstalledHook {
	var found []InstalledHook
	for event, matchers := range settings.Hooks {
		for _, matcher := range matchers {
			for _, hook := range matcher.Hooks {
				if key := ExtractHookKey(hook.Command); key != "" {
					found = append(found, InstalledHook{
						Event:   event,
						Matcher: matcher.Matcher,
						HookKey: key,
						Command: hook.Command,
					})
				}
			}
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Event != found[j].Event {
			return found[i].Event < found[j].Event
		}
		return strings.Compare(found[i].HookKey, found[j].HookKey) < 0
	})
	return found
}

package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/brads3290/cchooks"
	"github.com/klauern/edit-guard/internal/constants"
)

// ToolInput holds the part of tool_input the hooks act on
type ToolInput struct {
	FilePath string
}

// InvocationEvent is the JSON object the host writes to a hook's stdin.
// Only tool_input is decoded strictly; the descriptive fields are best effort
// and feed logging only.
type InvocationEvent struct {
	SessionID     string
	HookEventName string
	ToolName      string
	Cwd           string
	ToolInput     ToolInput
}

// FilePath returns tool_input.file_path, or "" when absent
func (e *InvocationEvent) FilePath() string {
	if e == nil {
		return ""
	}
	return e.ToolInput.FilePath
}

// ParseInvocationEvent decodes an event. Unknown fields are ignored.
// A non-object payload, a non-object tool_input or a non-string file_path is an error.
func ParseInvocationEvent(data []byte) (*InvocationEvent, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode hook event: %w", err)
	}

	ev := &InvocationEvent{}
	if ti, ok := raw["tool_input"]; ok {
		toolInput, err := decodeToolInput(ti)
		if err != nil {
			return nil, err
		}
		ev.ToolInput = toolInput
	}

	ev.SessionID = optionalString(raw, "session_id")
	ev.HookEventName = optionalString(raw, "hook_event_name")
	ev.ToolName = optionalString(raw, "tool_name")
	ev.Cwd = optionalString(raw, "cwd")
	return ev, nil
}

// ReadInvocationEvent reads r to EOF and parses the result
func ReadInvocationEvent(r io.Reader) (*InvocationEvent, error) {
	if r == nil {
		return nil, fmt.Errorf("no event input")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read hook event: %w", err)
	}
	return ParseInvocationEvent(data)
}

// decodeToolInput reads tool_input.file_path by its exact key. Struct
// decoding would also accept FILE_PATH or File_Path.
func decodeToolInput(data json.RawMessage) (ToolInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ToolInput{}, fmt.Errorf("failed to decode tool_input: %w", err)
	}

	var ti ToolInput
	if v, ok := fields["file_path"]; ok {
		if err := json.Unmarshal(v, &ti.FilePath); err != nil {
			return ToolInput{}, fmt.Errorf("failed to decode tool_input.file_path: %w", err)
		}
	}
	return ti, nil
}

func optionalString(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

// PreToolUseFilePath extracts the target file of an Edit or Write tool call.
// Other tools yield "".
func PreToolUseFilePath(event *cchooks.PreToolUseEvent) string {
	switch event.ToolName {
	case constants.ToolEdit:
		if edit, err := event.AsEdit(); err == nil {
			return edit.FilePath
		}
	case constants.ToolWrite:
		if write, err := event.AsWrite(); err == nil {
			return write.FilePath
		}
	}
	return ""
}

// PostToolUseFilePath extracts the edited file of a completed Edit or Write tool call.
func PostToolUseFilePath(event *cchooks.PostToolUseEvent) string {
	switch event.ToolName {
	case constants.ToolEdit:
		if edit, err := event.InputAsEdit(); err == nil {
			return edit.FilePath
		}
	case constants.ToolWrite:
		if write, err := event.InputAsWrite(); err == nil {
			return write.FilePath
		}
	}
	return ""
}

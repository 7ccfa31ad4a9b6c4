package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/klauern/edit-guard/internal/config"
)

func TestBaseHook(t *testing.T) {
	ctx := TestHookContext(nil)

	hook := NewBaseHook("test", "Test Hook", "Test description", ctx)

	if hook.Key() != "test" {
		t.Errorf("Expected key 'test', got '%s'", hook.Key())
	}
	if hook.Name() != "Test Hook" {
		t.Errorf("Expected name 'Test Hook', got '%s'", hook.Name())
	}
	if hook.Description() != "Test description" {
		t.Errorf("Expected description 'Test description', got '%s'", hook.Description())
	}
	if !hook.IsEnabled() {
		t.Error("Expected hook to be enabled by default")
	}
	if hook.Context() != ctx {
		t.Error("Expected context to match provided context")
	}
}

func TestBaseHookDisabled(t *testing.T) {
	ctx := TestHookContext(func(string) bool { return false })

	hook := NewBaseHook("test", "Test Hook", "Test description", ctx)

	if hook.IsEnabled() {
		t.Error("Expected hook to be disabled")
	}
}

func TestBaseHookNilContext(t *testing.T) {
	hook := NewBaseHook("test", "Test Hook", "Test description", nil)

	ctx := hook.Context()
	if ctx == nil {
		t.Fatal("Expected default context when nil provided")
	}
	if ctx.ResponseMode != ResponseModeExitCode {
		t.Errorf("Expected default response mode %q, got %q", ResponseModeExitCode, ctx.ResponseMode)
	}
	if ctx.InvocationID == "" {
		t.Error("Expected default context to carry an invocation id")
	}
}

func TestStandardRunUsesRunner(t *testing.T) {
	ctx := TestHookContext(nil)
	factory, last := RecordingRunnerFactory()
	ctx.RunnerFactory = factory

	hook := NewBaseHook("test", "Test Hook", "Test description", ctx)
	if err := hook.StandardRun(nil, nil); err != nil {
		t.Fatalf("StandardRun failed: %v", err)
	}
	if last() == nil || !last().RunCalled {
		t.Error("Expected runner to be built and run")
	}
}

func TestStandardRunSkipsDisabledHook(t *testing.T) {
	ctx := TestHookContext(func(string) bool { return false })
	factory, last := RecordingRunnerFactory()
	ctx.RunnerFactory = factory

	hook := NewBaseHook("test", "Test Hook", "Test description", ctx)
	_ = hook.StandardRun(nil, nil)
	if last() != nil {
		t.Error("Expected no runner for a disabled hook")
	}
}

func TestFailOpen(t *testing.T) {
	hook := NewBaseHook("test", "Test Hook", "Test description", TestHookContext(nil))

	if err := hook.FailOpen(func() error { panic("boom") }); err != nil {
		t.Errorf("Expected panic to become allow, got %v", err)
	}
	if err := hook.FailOpen(func() error { return errors.New("bad input") }); err != nil {
		t.Errorf("Expected plain error to become allow, got %v", err)
	}

	blocked := &BlockedError{Path: ".env", Pattern: ".env"}
	err := hook.FailOpen(func() error { return blocked })
	if ExitCode(err) != ExitBlock {
		t.Errorf("Expected BlockedError to survive, got %v", err)
	}
	if ExitCode(nil) != ExitAllow {
		t.Error("Expected nil error to map to allow")
	}
}

func TestLogHookEventJSONL(t *testing.T) {
	var buf bytes.Buffer
	ctx := TestHookContext(nil)
	ctx.LoggingEnabled = true
	ctx.LoggingFormat = config.LoggingFormatJSONL
	ctx.LogWriter = &buf

	hook := NewBaseHook("path-guard", "Path Guard", "test", ctx)
	hook.LogHookEvent("test_event", "Write", map[string]interface{}{"k": "v"}, map[string]interface{}{"d": 1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected exactly 1 jsonl line, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Log line is not valid JSON: %v", err)
	}
	if entry.HookKey != "path-guard" || entry.Event != "test_event" || entry.ToolName != "Write" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.InvocationID != "test-invocation" {
		t.Errorf("Expected invocation id to be recorded, got %q", entry.InvocationID)
	}
}

func TestLogHookEventPretty(t *testing.T) {
	var buf bytes.Buffer
	ctx := TestHookContext(nil)
	ctx.LoggingEnabled = true
	ctx.LoggingFormat = config.LoggingFormatPretty
	ctx.LogWriter = &buf

	NewBaseHook("k", "n", "d", ctx).LogHookEvent("e", "Edit", nil, nil)

	if !strings.Contains(buf.String(), "\n  \"hook_key\"") {
		t.Errorf("Expected indented JSON, got %q", buf.String())
	}
}

func TestLogHookEventDisabled(t *testing.T) {
	var buf bytes.Buffer
	ctx := TestHookContext(nil)
	ctx.LogWriter = &buf

	NewBaseHook("k", "n", "d", ctx).LogHookEvent("e", "Edit", nil, nil)

	if buf.Len() != 0 {
		t.Error("Expected nothing logged when logging is disabled")
	}
}

func TestReadEvent(t *testing.T) {
	ctx := TestHookContextWithInput(`{"tool_name":"Write","tool_input":{"file_path":"a.md"}}`)
	hook := NewBaseHook("k", "n", "d", ctx)

	ev, err := hook.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if ev.FilePath() != "a.md" || ev.ToolName != "Write" {
		t.Errorf("Unexpected event: %+v", ev)
	}
}

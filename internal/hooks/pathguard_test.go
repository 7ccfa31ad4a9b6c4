package hooks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brads3290/cchooks"
	"github.com/klauern/edit-guard/internal/core"
)

func pathEvent(t *testing.T, filePath string) string {
	t.Helper()
	data, err := json.Marshal(map[string]interface{}{
		"session_id":      "s1",
		"hook_event_name": "PreToolUse",
		"tool_name":       "Edit",
		"tool_input":      map[string]interface{}{"file_path": filePath},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestPathGuardHook(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewPathGuardHook(ctx)

	if hook.Key() != "path-guard" {
		t.Errorf("Expected key 'path-guard', got '%s'", hook.Key())
	}
	if hook.Name() != "Path Guard" {
		t.Errorf("Expected name 'Path Guard', got '%s'", hook.Name())
	}
	if !hook.IsEnabled() {
		t.Error("Expected hook to be enabled by default")
	}
}

func TestPathGuardBlocks(t *testing.T) {
	testCases := []struct {
		name     string
		filePath string
	}{
		{"env file", ".env"},
		{"env substring", "config/.env.bak"},
		{"git internals", "repo/.git/config"},
		{"git directory itself", "repo/.git"},
		{"node_modules", "web/node_modules/react/index.js"},
		{"node_modules substring", "my_node_modules/x"},
		{"lock file", "frontend/package-lock.json"},
		{"yarn lock", "yarn.lock"},
		{"credentials", "config/credentials.json"},
		{"upper case", "APP/.ENV"},
		{"dot segments", "src/../.git/HEAD"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := core.TestHookContextWithInput(pathEvent(t, tc.filePath))
			err := NewPathGuardHook(ctx).Run()

			if core.ExitCode(err) != core.ExitBlock {
				t.Fatalf("Expected %q to be blocked, got %v", tc.filePath, err)
			}
			want := "BLOCKED: Cannot edit protected file: " + tc.filePath + "\n" +
				"This file is protected to prevent accidental exposure of secrets or corruption of lock files.\n"
			if got := core.StdoutString(ctx); got != want {
				t.Errorf("Unexpected block output:\n got %q\nwant %q", got, want)
			}
		})
	}
}

func TestPathGuardAllows(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"ordinary source file", `{"tool_input":{"file_path":"src/main.go"}}`},
		{"readme", `{"tool_input":{"file_path":"README.md"}}`},
		{"environment word", `{"tool_input":{"file_path":"docs/environment.md"}}`},
		{"empty path", `{"tool_input":{"file_path":""}}`},
		{"missing path", `{"tool_input":{}}`},
		{"missing tool_input", `{"tool_name":"Bash"}`},
		{"malformed json", `{"tool_input":`},
		{"not an object", `"just a string"`},
		{"non-string path", `{"tool_input":{"file_path":42}}`},
		{"non-object tool_input", `{"tool_input":[".env"]}`},
		{"upper-case key", `{"tool_input":{"FILE_PATH":".env"}}`},
		{"mixed-case key beside real path", `{"tool_input":{"file_path":"a.md","File_Path":".env"}}`},
		{"dotted capital I is not i", `{"tool_input":{"file_path":"config/credent\u0130als.json"}}`},
		{"empty stdin", ``},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := core.TestHookContextWithInput(tc.input)
			err := NewPathGuardHook(ctx).Run()

			if err != nil {
				t.Errorf("Expected allow, got %v", err)
			}
			if out := core.StdoutString(ctx); out != "" {
				t.Errorf("Expected no output, got %q", out)
			}
		})
	}
}

func TestPathGuardDisabled(t *testing.T) {
	ctx := core.TestHookContext(func(string) bool { return false })
	ctx.Stdin = core.TestHookContextWithInput(`{"tool_input":{"file_path":".env"}}`).Stdin

	if err := NewPathGuardHook(ctx).Run(); err != nil {
		t.Errorf("Expected disabled hook to allow, got %v", err)
	}
	if out := core.StdoutString(ctx); out != "" {
		t.Errorf("Expected no output from disabled hook, got %q", out)
	}
}

func TestPathGuardJSONModeUsesRunner(t *testing.T) {
	ctx := core.TestHookContext(nil)
	ctx.ResponseMode = core.ResponseModeJSON
	factory, last := core.RecordingRunnerFactory()
	ctx.RunnerFactory = factory

	if err := NewPathGuardHook(ctx).Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runner := last()
	if runner == nil || !runner.RunCalled {
		t.Fatal("Expected cchooks runner to be run")
	}
	if runner.PreToolUse == nil || runner.PostToolUse != nil {
		t.Error("Expected only a PreToolUse handler")
	}
}

func TestPathGuardPreToolUseHandlerIgnoresOtherTools(t *testing.T) {
	hook := NewPathGuardHook(core.TestHookContext(nil)).(*PathGuardHook)

	resp := hook.preToolUseHandler(context.Background(), &cchooks.PreToolUseEvent{ToolName: "Bash"})
	if _, ok := resp.(*cchooks.PreToolUseResponse); !ok {
		t.Fatalf("Expected *cchooks.PreToolUseResponse, got %T", resp)
	}
}

func TestPathGuardLogsBlock(t *testing.T) {
	ctx := core.TestHookContextWithInput(pathEvent(t, ".env"))
	var logBuf bytesBuffer
	ctx.LoggingEnabled = true
	ctx.LogWriter = &logBuf

	_ = NewPathGuardHook(ctx).Run()

	entries := logBuf.entries(t)
	if len(entries) != 2 {
		t.Fatalf("Expected invocation and block entries, got %d", len(entries))
	}
	if entries[1].Event != "path_blocked" || entries[1].RawData["pattern"] != ".env" {
		t.Errorf("Unexpected block entry: %+v", entries[1])
	}
}

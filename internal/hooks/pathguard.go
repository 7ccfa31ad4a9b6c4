package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/brads3290/cchooks"
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/klauern/edit-guard/internal/core"
	"github.com/klauern/edit-guard/internal/protect"
)

// PathGuardHook blocks edits to secrets, VCS internals, lock files and vendored dependencies
type PathGuardHook struct {
	*core.BaseHook
	patterns *protect.PatternSet
}

// NewPathGuardHook creates a new path guard hook instance
func NewPathGuardHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook(constants.HookPathGuard, "Path Guard", "Blocks edits to protected files such as .env, lock files and .git", ctx)
	return &PathGuardHook{BaseHook: base, patterns: protect.Default}
}

// Run executes the path guard hook.
// In exit-code mode a blocked edit is reported as a *core.BlockedError.
func (h *PathGuardHook) Run() error {
	if !h.IsEnabled() {
		return nil
	}

	if h.Context().ResponseMode == core.ResponseModeJSON {
		return h.StandardRun(h.preToolUseHandler, nil)
	}
	return h.FailOpen(h.runExitCode)
}

func (h *PathGuardHook) runExitCode() error {
	ev, err := h.ReadEvent()
	if err != nil {
		return err
	}

	filePath := ev.FilePath()
	if filePath == "" {
		h.LogApproval("no_file_path", ev.ToolName, nil)
		return nil
	}

	pattern, blocked := h.patterns.Match(filePath)
	if !blocked {
		h.LogApproval("path_allowed", ev.ToolName, map[string]interface{}{"file_path": filePath})
		return nil
	}

	out := h.Context().Stdout
	for _, line := range protect.BlockMessage(filePath) {
		_, _ = fmt.Fprintln(out, line)
	}
	h.LogBlock("path_blocked", ev.ToolName, map[string]interface{}{
		"file_path": filePath,
		"pattern":   pattern,
	})
	return &core.BlockedError{Path: filePath, Pattern: pattern}
}

// preToolUseHandler answers PreToolUse events when running under cchooks
func (h *PathGuardHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) (resp cchooks.PreToolUseResponseInterface) {
	defer func() {
		if r := recover(); r != nil {
			h.LogError("fail_open_panic", "unknown", fmt.Errorf("%v", r))
			resp = cchooks.Approve()
		}
	}()

	filePath := core.PreToolUseFilePath(event)
	if filePath == "" {
		return cchooks.Approve()
	}

	pattern, blocked := h.patterns.Match(filePath)
	if !blocked {
		h.LogApproval("path_allowed", event.ToolName, map[string]interface{}{"file_path": filePath})
		return cchooks.Approve()
	}

	h.LogBlock("path_blocked", event.ToolName, map[string]interface{}{
		"file_path": filePath,
		"pattern":   pattern,
	})
	return cchooks.Block(strings.Join(protect.BlockMessage(filePath), "\n"))
}

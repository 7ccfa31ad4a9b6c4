package hooks

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/brads3290/cchooks"
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/klauern/edit-guard/internal/core"
	"github.com/klauern/edit-guard/internal/markdown"
)

var (
	errIsDirectory = errors.New("path is a directory")
	errNotUTF8     = errors.New("file is not valid UTF-8")
)

// MarkdownTidyHook tags unlabeled code fences and collapses blank lines in edited markdown
type MarkdownTidyHook struct {
	*core.BaseHook
}

// NewMarkdownTidyHook creates a new markdown tidy hook instance
func NewMarkdownTidyHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook(constants.HookMarkdownTidy, "Markdown Tidy", "Tags unlabeled code fences and collapses blank lines in edited .md/.mdx files", ctx)
	return &MarkdownTidyHook{BaseHook: base}
}

// Run executes the markdown tidy hook. It never blocks.
func (h *MarkdownTidyHook) Run() error {
	if !h.IsEnabled() {
		return nil
	}

	if h.Context().ResponseMode == core.ResponseModeJSON {
		return h.StandardRun(nil, h.postToolUseHandler)
	}
	return h.FailOpen(h.runExitCode)
}

func (h *MarkdownTidyHook) runExitCode() error {
	ev, err := h.ReadEvent()
	if err != nil {
		return err
	}

	filePath := ev.FilePath()
	changed, err := h.tidy(ev.ToolName, filePath)
	if err != nil {
		return err
	}
	if changed {
		_, _ = fmt.Fprintf(h.Context().Stdout, "Formatted markdown in %s\n", filePath)
	}
	return nil
}

// postToolUseHandler formats the edited file under cchooks.
// Nothing is printed: stdout carries the JSON response.
func (h *MarkdownTidyHook) postToolUseHandler(_ context.Context, event *cchooks.PostToolUseEvent) (resp cchooks.PostToolUseResponseInterface) {
	defer func() {
		if r := recover(); r != nil {
			h.LogError("fail_open_panic", "unknown", fmt.Errorf("%v", r))
			resp = cchooks.Allow()
		}
	}()

	if _, err := h.tidy(event.ToolName, core.PostToolUseFilePath(event)); err != nil {
		h.LogError("tidy_error", event.ToolName, err)
	}
	return cchooks.Allow()
}

func (h *MarkdownTidyHook) tidy(toolName, filePath string) (bool, error) {
	if !markdown.IsMarkdownPath(filePath) {
		return false, nil
	}

	changed, err := TidyFile(h.Context().FileSystem, filePath)
	if err != nil {
		return false, err
	}
	if changed {
		h.LogHookEvent("markdown_formatted", toolName, nil, map[string]interface{}{"file_path": filePath})
	}
	return changed, nil
}

// TidyFile formats a markdown file in place, keeping its permission bits.
// It reports whether the file was rewritten. Paths without a markdown
// extension are left alone.
func TidyFile(fs core.FileSystem, filePath string) (bool, error) {
	if !markdown.IsMarkdownPath(filePath) {
		return false, nil
	}

	info, err := fs.Stat(filePath)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s: %w", filePath, errIsDirectory)
	}

	data, err := fs.ReadFile(filePath)
	if err != nil {
		return false, err
	}
	if !utf8.Valid(data) {
		return false, fmt.Errorf("%s: %w", filePath, errNotUTF8)
	}

	content := markdown.NormalizeNewlines(string(data))
	formatted := markdown.Format(content)
	if formatted == content {
		return false, nil
	}

	if err := fs.WriteFile(filePath, []byte(formatted), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return true, nil
}

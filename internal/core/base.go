// Package core provides the fundamental hook system interfaces, base implementations, and execution context
package core

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/brads3290/cchooks"
	"github.com/google/uuid"
	"github.com/klauern/edit-guard/internal/config"
)

// Response modes select how a hook reports its decision to the host
const (
	// ResponseModeExitCode reports through the process exit status and plain stdout lines
	ResponseModeExitCode = "exit-code"
	// ResponseModeJSON reports through cchooks structured JSON responses
	ResponseModeJSON = "json"
)

// IsValidResponseMode returns true if the provided mode is supported.
func IsValidResponseMode(m string) bool {
	return m == ResponseModeExitCode || m == ResponseModeJSON
}

// Hook defines the interface that all hook implementations must satisfy
type Hook interface {
	// Key returns the unique identifier for this hook
	Key() string
	// Name returns the human-readable name for this hook
	Name() string
	// Description returns a description of what this hook does
	Description() string
	// Run executes the hook; only a *BlockedError is ever returned
	Run() error
	// IsEnabled checks if this hook is enabled in the current context
	IsEnabled() bool
}

// BaseHook provides common functionality for all hooks
type BaseHook struct {
	key         string
	name        string
	description string
	context     *HookContext
}

// Key returns the hook key
func (h *BaseHook) Key() string {
	return h.key
}

// Name returns the hook name
func (h *BaseHook) Name() string {
	return h.name
}

// Description returns the hook description
func (h *BaseHook) Description() string {
	return h.description
}

// IsEnabled checks if the hook is enabled by consulting settings
func (h *BaseHook) IsEnabled() bool {
	return h.context.SettingsChecker(h.key)
}

// Context returns the hook context
func (h *BaseHook) Context() *HookContext {
	return h.context
}

// NewBaseHook creates a new BaseHook with the given metadata
func NewBaseHook(key, name, description string, ctx *HookContext) *BaseHook {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &BaseHook{
		key:         key,
		name:        name,
		description: description,
		context:     ctx,
	}
}

// FileSystem interface for dependency injection in testing
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem using the real filesystem
type RealFileSystem struct{}

// ReadFile reads the whole named file
func (fs *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 - path comes from the hook event by contract
}

// WriteFile writes data to a file with the specified permissions
func (fs *RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

// Stat returns file information for the specified path
func (fs *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Runner interface allows for mocking in tests
type Runner interface {
	Run()
}

// RunnerFactory creates a Runner with the provided handlers
type RunnerFactory func(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse) Runner

// DefaultRunnerFactory creates a standard cchooks.Runner
func DefaultRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse,
) Runner {
	runner := &cchooks.Runner{}
	if preHook != nil {
		runner.PreToolUse = preHook
	}
	if postHook != nil {
		runner.PostToolUse = postHook
	}
	if rawHook != nil {
		runner.Raw = rawHook
	}
	return runner
}

// HookContext provides dependencies that hooks may need
type HookContext struct {
	FileSystem      FileSystem
	RunnerFactory   RunnerFactory
	SettingsChecker func(string) bool
	Stdin           io.Reader
	Stdout          io.Writer
	ResponseMode    string
	LoggingEnabled  bool
	LoggingFormat   string
	// LogWriter receives one serialized LogEntry per logged event
	LogWriter io.Writer
	// InvocationID correlates every log entry written by one process
	InvocationID string
}

// DefaultHookContext returns a context with real implementations
func DefaultHookContext() *HookContext {
	return &HookContext{
		FileSystem:      &RealFileSystem{},
		RunnerFactory:   DefaultRunnerFactory,
		SettingsChecker: defaultIsPluginEnabled,
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		ResponseMode:    ResponseModeExitCode,
		LoggingEnabled:  false,
		LoggingFormat:   config.LoggingFormatJSONL,
		InvocationID:    uuid.NewString(),
	}
}

// defaultIsPluginEnabled is the default implementation - always returns true
// The real checker is injected from the app config when the context is built
func defaultIsPluginEnabled(_ string) bool {
	return true
}

// LogHookEvent delegates to shared logging utility (see logging.go)
func (h *BaseHook) LogHookEvent(event string, toolName string, rawData map[string]interface{}, details map[string]interface{}) {
	if !h.context.LoggingEnabled {
		return
	}
	logHookEvent(h.context, h.key, event, toolName, rawData, details)
}

// CreateRawHandler creates a raw handler that logs all incoming JSON data when logging is enabled
func (h *BaseHook) CreateRawHandler() func(context.Context, string) *cchooks.RawResponse {
	if !h.context.LoggingEnabled {
		return nil
	}

	return func(_ context.Context, rawJSON string) *cchooks.RawResponse {
		var rawEvent map[string]interface{}
		if err := json.Unmarshal([]byte(rawJSON), &rawEvent); err != nil {
			h.LogHookEvent("raw_event_parse_error", "unknown", map[string]interface{}{
				"raw_json_string": rawJSON,
				"error":           err.Error(),
			}, nil)
			return nil
		}

		eventName, _ := rawEvent["hook_event_name"].(string)
		toolName, _ := rawEvent["tool_name"].(string)

		h.LogHookEvent("raw_event", toolName, map[string]interface{}{
			"hook_event_name": eventName,
		}, rawEvent)

		// nil continues with normal processing
		return nil
	}
}

// StandardRun executes the hook through a cchooks runner with the provided handlers.
func (h *BaseHook) StandardRun(
	preHandler func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHandler func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
) error {
	if !h.IsEnabled() {
		return nil
	}

	runner := h.Context().RunnerFactory(preHandler, postHandler, h.CreateRawHandler())
	runner.Run()
	return nil
}

// ReadEvent reads and parses the invocation event from the context's stdin.
func (h *BaseHook) ReadEvent() (*InvocationEvent, error) {
	ev, err := ReadInvocationEvent(h.context.Stdin)
	if err != nil {
		h.LogError("event_parse_error", "unknown", err)
		return nil, err
	}
	h.LogHookEvent("invocation", ev.ToolName, map[string]interface{}{
		"hook_event_name": ev.HookEventName,
		"session_id":      ev.SessionID,
	}, map[string]interface{}{
		"file_path": ev.FilePath(),
	})
	return ev, nil
}

// LogError logs a standard error event
func (h *BaseHook) LogError(eventType, toolName string, err error) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, map[string]interface{}{"error": err.Error()}, nil)
	}
}

// LogApproval logs a standard approval event
func (h *BaseHook) LogApproval(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}

// LogBlock logs a standard block event
func (h *BaseHook) LogBlock(eventType, toolName string, details map[string]interface{}) {
	if h.Context().LoggingEnabled {
		h.LogHookEvent(eventType, toolName, details, nil)
	}
}

package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brads3290/cchooks"
)

// MockFileSystem implements FileSystem interface for testing
type MockFileSystem struct {
	Files    map[string][]byte
	Modes    map[string]os.FileMode
	Dirs     map[string]bool
	ReadErr  error
	WriteErr error
	StatErr  error
	Writes   int
	mu       sync.RWMutex
}

// NewMockFileSystem creates a new mock filesystem for testing
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Modes: make(map[string]os.FileMode),
		Dirs:  make(map[string]bool),
	}
}

// AddFile seeds a file with content
func (m *MockFileSystem) AddFile(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[name] = []byte(content)
	m.Dirs[filepath.Dir(name)] = true
}

// ReadFile returns a copy of a mock file's content
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Dirs[name] {
		return nil, &os.PathError{Op: "read", Path: name, Err: os.ErrInvalid}
	}
	data, ok := m.Files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteFile writes data to a mock file in memory
func (m *MockFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Dirs[filepath.Dir(filename)] = true
	m.Files[filename] = append([]byte(nil), data...)
	m.Modes[filename] = perm
	m.Writes++
	return nil
}

// Stat returns file information for the specified path (mock implementation)
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if data, exists := m.Files[name]; exists {
		mode, ok := m.Modes[name]
		if !ok {
			mode = 0o644
		}
		return &mockFileInfo{name: filepath.Base(name), size: int64(len(data)), mode: mode}, nil
	}
	if m.Dirs[name] {
		return &mockFileInfo{name: filepath.Base(name), mode: os.ModeDir | 0o755, dir: true}, nil
	}

	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}

// Content returns a mock file's content as a string
func (m *MockFileSystem) Content(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.Files[name])
}

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
	dir  bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.dir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockRunner implements a test runner for cchooks that mimics cchooks.Runner structure
type MockRunner struct {
	PreToolUse  func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface
	PostToolUse func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface
	RawHook     func(context.Context, string) *cchooks.RawResponse
	RunCalled   bool
}

// Run marks the runner as called; it never reads stdin
func (m *MockRunner) Run() {
	m.RunCalled = true
}

// MockRunnerFactory creates MockRunner instances
func MockRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse,
) Runner {
	return &MockRunner{
		PreToolUse:  preHook,
		PostToolUse: postHook,
		RawHook:     rawHook,
		RunCalled:   false,
	}
}

// RecordingRunnerFactory returns a factory that keeps the last runner it built
func RecordingRunnerFactory() (RunnerFactory, func() *MockRunner) {
	var last *MockRunner
	factory := func(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
		postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
		rawHook func(context.Context, string) *cchooks.RawResponse,
	) Runner {
		last = MockRunnerFactory(preHook, postHook, rawHook).(*MockRunner)
		return last
	}
	return factory, func() *MockRunner { return last }
}

// TestHookContext creates a context suitable for testing.
// Stdin is empty and Stdout is a *bytes.Buffer.
func TestHookContext(settingsChecker func(string) bool) *HookContext {
	if settingsChecker == nil {
		settingsChecker = func(string) bool { return true }
	}

	return &HookContext{
		FileSystem:      NewMockFileSystem(),
		RunnerFactory:   MockRunnerFactory,
		SettingsChecker: settingsChecker,
		Stdin:           strings.NewReader(""),
		Stdout:          &bytes.Buffer{},
		ResponseMode:    ResponseModeExitCode,
		InvocationID:    "test-invocation",
	}
}

// TestHookContextWithInput is TestHookContext with stdin preloaded
func TestHookContextWithInput(input string) *HookContext {
	ctx := TestHookContext(nil)
	ctx.Stdin = strings.NewReader(input)
	return ctx
}

// StdoutString returns what a hook printed, for contexts built by TestHookContext
func StdoutString(ctx *HookContext) string {
	if buf, ok := ctx.Stdout.(*bytes.Buffer); ok {
		return buf.String()
	}
	return ""
}

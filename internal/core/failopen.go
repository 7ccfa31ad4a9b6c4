package core

import (
	"errors"
	"fmt"
)

// Process exit codes understood by the host
const (
	ExitAllow = 0
	ExitBlock = 2
)

// BlockedError is the only error a hook returns: the edit must not proceed.
type BlockedError struct {
	Path    string
	Pattern string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("blocked edit of protected file %s (pattern %q)", e.Path, e.Pattern)
}

// ExitCode maps a hook result to the process exit status.
func ExitCode(err error) int {
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return ExitBlock
	}
	return ExitAllow
}

// FailOpen runs a whole invocation and converts any panic or unexpected
// error into the allow outcome. Only a *BlockedError survives.
func (h *BaseHook) FailOpen(fn func() error) (result error) {
	defer func() {
		if r := recover(); r != nil {
			h.LogError("fail_open_panic", "unknown", fmt.Errorf("%v", r))
			result = nil
		}
	}()

	err := fn()
	if err == nil {
		return nil
	}
	var blocked *BlockedError
	if errors.As(err, &blocked) {
		return blocked
	}
	h.LogError("fail_open_error", "unknown", err)
	return nil
}

// Package hooks holds the built-in hook implementations and registers them on import.
package hooks

import (
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/klauern/edit-guard/internal/core"
)

func init() {
	core.RegisterBuiltinHooks(map[string]core.HookFactory{
		constants.HookPathGuard:    NewPathGuardHook,
		constants.HookMarkdownTidy: NewMarkdownTidyHook,
	})
}

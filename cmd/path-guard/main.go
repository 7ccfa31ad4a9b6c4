// Command path-guard is a Claude Code PreToolUse hook that refuses edits to protected files.
// It reads the hook event from stdin and exits 2 when the edit must not proceed.
package main

import (
	"os"

	"github.com/klauern/edit-guard/internal/cmd"
	"github.com/klauern/edit-guard/internal/constants"
	_ "github.com/klauern/edit-guard/internal/hooks"
)

func main() {
	os.Exit(cmd.RunStandalone(constants.HookPathGuard))
}

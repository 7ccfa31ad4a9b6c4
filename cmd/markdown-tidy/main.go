// Command markdown-tidy is a Claude Code PostToolUse hook that tags unlabeled
// code fences and collapses blank lines in edited .md and .mdx files. It always exits 0.
package main

import (
	"os"

	"github.com/klauern/edit-guard/internal/cmd"
	"github.com/klauern/edit-guard/internal/constants"
	_ "github.com/klauern/edit-guard/internal/hooks"
)

func main() {
	os.Exit(cmd.RunStandalone(constants.HookMarkdownTidy))
}

package cmd

import (
	"context"
	"fmt"

	"github.com/klauern/edit-guard/internal/core"
	"github.com/klauern/edit-guard/internal/protect"
	"github.com/urfave/cli/v3"
)

// NewCheckCmd classifies a path with the path guard rules without any hook event
func NewCheckCmd() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       "Report whether a path is protected",
		ArgsUsage:   "<path>",
		Description: `Classify a path as protected or allowed. Exits with status 2 if it is protected.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: <path>")
			}
			p := args[0]

			w := cmd.Root().Writer
			pattern, ok := protect.Default.Match(p)
			if !ok {
				_, _ = fmt.Fprintf(w, "allowed    %s\n", p)
				return nil
			}

			_, _ = fmt.Fprintf(w, "protected  %s  (pattern %q)\n", p, pattern)
			return cli.Exit("", core.ExitBlock)
		},
	}
}

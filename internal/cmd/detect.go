package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/klauern/edit-guard/internal/markdown"
	"github.com/urfave/cli/v3"
)

// NewDetectCmd prints the fence language the tidy hook would pick for stdin
func NewDetectCmd() *cli.Command {
	return &cli.Command{
		Name:  "detect",
		Usage: "Print the detected language of a code snippet read from stdin",
		Action: func(_ context.Context, cmd *cli.Command) error {
			root := cmd.Root()
			data, err := io.ReadAll(root.Reader)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			_, _ = fmt.Fprintln(root.Writer, markdown.DetectLanguage(markdown.NormalizeNewlines(string(data))))
			return nil
		},
	}
}

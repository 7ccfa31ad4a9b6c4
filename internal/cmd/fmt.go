package cmd

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauern/edit-guard/internal/core"
	"github.com/klauern/edit-guard/internal/hooks"
	"github.com/klauern/edit-guard/internal/markdown"
	"github.com/urfave/cli/v3"
)

// NewFmtCmd applies the markdown tidy formatting to a file outside of a hook event
func NewFmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Tidy a markdown file in place",
		ArgsUsage: "<file|->",
		Description: `Tag unlabeled code fences and collapse blank lines in a .md/.mdx file.
Use '-' to read markdown from stdin and write the result to stdout.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: <file|->")
			}
			file := args[0]

			root := cmd.Root()
			if file == "-" {
				return formatStream(root.Reader, root.Writer)
			}
			if !markdown.IsMarkdownPath(file) {
				return fmt.Errorf("%s is not a .md or .mdx file", file)
			}

			changed, err := hooks.TidyFile(&core.RealFileSystem{}, file)
			if err != nil {
				return err
			}
			if changed {
				_, _ = fmt.Fprintf(root.Writer, "Formatted markdown in %s\n", file)
			}
			return nil
		},
	}
}

func formatStream(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("stdin is not valid UTF-8")
	}
	_, err = io.WriteString(w, markdown.Format(markdown.NormalizeNewlines(string(data))))
	return err
}

package cmd

import (
	"context"
	"fmt"

	"github.com/klauern/edit-guard/internal/constants"
	"github.com/urfave/cli/v3"
)

// VersionInfo holds version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	GoVer   string
}

// NewVersionCmd creates a new version command
func NewVersionCmd(versionInfo VersionInfo) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Show version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			_, _ = fmt.Fprintf(w, "%s version %s\n", constants.BinaryName, versionInfo.Version)
			_, _ = fmt.Fprintf(w, "commit: %s\n", versionInfo.Commit)
			_, _ = fmt.Fprintf(w, "date: %s\n", versionInfo.Date)
			_, _ = fmt.Fprintf(w, "go: %s\n", versionInfo.GoVer)
			return nil
		},
	}
}

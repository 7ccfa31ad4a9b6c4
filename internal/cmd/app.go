// Package cmd wires the edit-guard command line.
package cmd

import (
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/urfave/cli/v3"
)

// NewApp builds the root edit-guard command
func NewApp(versionInfo VersionInfo) *cli.Command {
	return &cli.Command{
		Name:    constants.BinaryName,
		Usage:   constants.ProjectTagline,
		Version: versionInfo.Version,
		Description: `Claude Code hooks that refuse edits to protected files and tidy edited markdown.
Install them with 'install', or point settings.json at 'run <hook-key>'.`,
		Commands: []*cli.Command{
			NewRunCmd(),
			NewListCmd(),
			NewCheckCmd(),
			NewFmtCmd(),
			NewDetectCmd(),
			NewInstallCmd(),
			NewUninstallCmd(),
			NewVersionCmd(versionInfo),
		},
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/klauern/edit-guard/internal/config"
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/klauern/edit-guard/internal/core"
	"github.com/urfave/cli/v3"
)

// Scope constants
const (
	ScopeProject = "project"
	ScopeGlobal  = "global"
)

func scopeName(global bool) string {
	if global {
		return ScopeGlobal
	}
	return ScopeProject
}

// NewListCmd lists the registered hooks, or with --installed the hooks found in settings.json
func NewListCmd() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List available hooks",
		Description: `List the built-in hooks with their install event and enablement, or the edit-guard hooks installed in settings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "installed",
				Aliases: []string{"i"},
				Usage:   "List hooks installed in Claude Code settings instead",
			},
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Usage:   "With --installed, read global settings (~/.claude/settings.json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			if cmd.Bool("installed") {
				return listInstalledHooks(w, cmd.Bool("global"))
			}
			listAvailableHooks(w, config.LoadAppConfigFromEnvironment())
			return nil
		},
	}
}

func listAvailableHooks(w io.Writer, appCfg *config.AppConfig) {
	_, _ = fmt.Fprintln(w, "Available hooks:")
	_, _ = fmt.Fprintln(w)
	for _, info := range core.DescribeHooks() {
		status := "enabled"
		if !appCfg.IsPluginEnabled(info.Key) {
			status = "disabled"
		}
		_, _ = fmt.Fprintf(w, "  %s (%s) - %s [%s]\n", info.Key, info.Name, info.Description, status)
		if inst, ok := core.DefaultInstallation(info.Key); ok {
			_, _ = fmt.Fprintf(w, "      installs on %s, matcher %s\n", inst.Event, inst.Matcher)
		}
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Use '%s install <key>' to install a hook.\n", constants.BinaryName)
}

func listInstalledHooks(w io.Writer, global bool) error {
	settingsPath, err := config.SettingsPath(global)
	if err != nil {
		return fmt.Errorf("error getting settings path: %v", err)
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("error loading settings: %v", err)
	}

	_, _ = fmt.Fprintf(w, "Installed hooks (%s settings):\n", scopeName(global))
	_, _ = fmt.Fprintf(w, "Settings file: %s\n\n", settingsPath)

	installed := config.InstalledHooks(settings)
	if len(installed) == 0 {
		_, _ = fmt.Fprintf(w, "No %s hooks are currently installed.\n", constants.BinaryName)
		return nil
	}
	for _, h := range installed {
		matcher := h.Matcher
		if matcher == "" {
			matcher = "*"
		}
		_, _ = fmt.Fprintf(w, "  %s  %-12s  matcher %s\n", h.HookKey, h.Event, matcher)
		_, _ = fmt.Fprintf(w, "      %s\n", h.Command)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/edit-guard/internal/config"
	"github.com/klauern/edit-guard/internal/constants"
	"github.com/klauern/edit-guard/internal/core"
	"github.com/urfave/cli/v3"
)

// installFlags are the install options that end up in the hook command line
type installFlags struct {
	logEnabled bool
	logFormat  string
}

// hookExecutable returns the binary settings.json should invoke. Test binaries
// and renamed builds fall back to the name expected on PATH.
func hookExecutable() string {
	execPath, err := os.Executable()
	if err != nil || filepath.Base(execPath) != constants.BinaryName {
		return constants.BinaryName
	}
	return execPath
}

// buildInstallHookCommand builds "<exe> run <key> [--log [--log-format f]]"
func buildInstallHookCommand(hookKey string, flags installFlags) string {
	hookCommand := fmt.Sprintf("%s run %s", hookExecutable(), hookKey)
	if flags.logEnabled {
		hookCommand += " --log"
		if flags.logFormat != "" && flags.logFormat != config.LoggingFormatJSONL {
			hookCommand += fmt.Sprintf(" --log-format %s", flags.logFormat)
		}
	}
	return hookCommand
}

// NewInstallCmd adds a built-in hook to Claude Code settings
func NewInstallCmd() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a hook into Claude Code settings",
		ArgsUsage: "<hook-key>",
		Description: `Install a hook into settings.json. path-guard runs on PreToolUse and
markdown-tidy on PostToolUse, both for the Edit, MultiEdit and Write tools.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Install to global settings (~/.claude/settings.json)",
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Value:   0,
				Usage:   "Command timeout in seconds (0 for no timeout)",
			},
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed logging to .claude/hooks/<hook-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: config.LoggingFormatJSONL,
				Usage: "Log output format: jsonl or pretty",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: <hook-key>")
			}
			hookKey := args[0]

			inst, ok := core.DefaultInstallation(hookKey)
			if !ok || !core.HasHook(hookKey) {
				return fmt.Errorf("hook '%s' not found.\nAvailable hooks: %s", hookKey, strings.Join(core.GetHookKeys(), ", "))
			}

			flags := installFlags{logEnabled: cmd.Bool("log"), logFormat: cmd.String("log-format")}
			if flags.logEnabled && !config.IsValidLoggingFormat(flags.logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", flags.logFormat)
			}

			var timeout *int
			if t := cmd.Int("timeout"); t > 0 {
				timeout = &t
			}

			global := cmd.Bool("global")
			settingsPath, err := config.SettingsPath(global)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scopeName(global), err)
			}
			return installHook(cmd.Root().Writer, settingsPath, scopeName(global), hookKey, inst, buildInstallHookCommand(hookKey, flags), timeout)
		},
	}
}

func installHook(w io.Writer, settingsPath, scope, hookKey string, inst core.Installation, hookCommand string, timeout *int) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
	}

	result := config.AddHookToSettings(settings, string(inst.Event), inst.Matcher, hookCommand, timeout)
	if handleDuplicateHookResult(w, result) {
		return nil
	}

	if err := config.SaveSettings(settingsPath, settings); err != nil {
		return fmt.Errorf("failed to save settings to %s: %w", settingsPath, err)
	}

	_, _ = fmt.Fprintf(w, "Installed %s hook in %s settings\n", hookKey, scope)
	_, _ = fmt.Fprintf(w, "   Event: %s\n", inst.Event)
	_, _ = fmt.Fprintf(w, "   Matcher: %s\n", inst.Matcher)
	_, _ = fmt.Fprintf(w, "   Command: %s\n", hookCommand)
	_, _ = fmt.Fprintf(w, "   Settings: %s\n", settingsPath)
	_, _ = fmt.Fprintln(w, "The hook will be active in new Claude Code sessions.")
	return nil
}

// handleDuplicateHookResult reports a duplicate and returns true when nothing changed
func handleDuplicateHookResult(w io.Writer, result config.MergeResult) bool {
	if !result.WasDuplicate {
		return false
	}
	if strings.HasPrefix(result.DuplicateInfo, "Replaced existing") {
		_, _ = fmt.Fprintln(w, result.DuplicateInfo)
		return false
	}
	_, _ = fmt.Fprintf(w, "Hook already installed: %s\n", result.DuplicateInfo)
	_, _ = fmt.Fprintln(w, "No changes made.")
	return true
}

// NewUninstallCmd removes a hook, or every edit-guard hook, from Claude Code settings
func NewUninstallCmd() *cli.Command {
	return &cli.Command{
		Name:        "uninstall",
		Usage:       "Remove a hook from Claude Code settings",
		ArgsUsage:   "<hook-key|all>",
		Description: `Remove every instance of a hook from settings.json. Use 'all' to remove all edit-guard hooks; other hooks are kept.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Remove from global settings (~/.claude/settings.json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: <hook-key|all>")
			}

			global := cmd.Bool("global")
			settingsPath, err := config.SettingsPath(global)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scopeName(global), err)
			}
			return uninstallHook(cmd.Root().Writer, settingsPath, scopeName(global), args[0])
		},
	}
}

func uninstallHook(w io.Writer, settingsPath, scope, hookKey string) error {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
	}

	keys := []string{hookKey}
	if hookKey == "all" {
		keys = nil
		for _, h := range config.InstalledHooks(settings) {
			keys = append(keys, h.HookKey)
		}
	}

	removed := 0
	for _, key := range keys {
		removed += config.RemoveHookFromSettings(settings, key)
	}
	if removed == 0 {
		return fmt.Errorf("hook '%s' was not found in %s settings", hookKey, scope)
	}

	if err := config.SaveSettings(settingsPath, settings); err != nil {
		return fmt.Errorf("error saving settings: %v", err)
	}

	_, _ = fmt.Fprintf(w, "Removed %d %s hook command(s) from %s settings\n", removed, hookKey, scope)
	_, _ = fmt.Fprintf(w, "   Settings: %s\n", settingsPath)
	return nil
}

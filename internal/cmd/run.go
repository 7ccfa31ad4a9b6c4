package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/edit-guard/internal/config"
	"github.com/klauern/edit-guard/internal/core"
	"github.com/urfave/cli/v3"
)

// runOptions selects how one hook invocation reports and logs
type runOptions struct {
	logEnabled   bool
	logFormat    string
	responseMode string
	rotation     config.LogRotationConfig
	stdin        io.Reader
	stdout       io.Writer
}

// newHookContext builds the context for a single invocation. The returned
// cleanup closes the log file, if one was opened.
func newHookContext(key string, appCfg *config.AppConfig, opts runOptions) (*core.HookContext, func()) {
	ctx := core.DefaultHookContext()
	ctx.Stdin = opts.stdin
	ctx.Stdout = opts.stdout
	ctx.ResponseMode = opts.responseMode
	ctx.SettingsChecker = appCfg.IsPluginEnabled

	cleanup := func() {}
	if !opts.logEnabled {
		return ctx, cleanup
	}

	logPath := config.GetLogPath(key)
	logger := config.SetupLogRotation(logPath, opts.rotation)
	if logger == nil {
		return ctx, cleanup
	}
	_, _ = config.CleanupOldLogs(filepath.Dir(logPath), opts.rotation.MaxAge)

	ctx.LoggingEnabled = true
	ctx.LoggingFormat = opts.logFormat
	ctx.LogWriter = logger
	return ctx, func() { _ = logger.Close() }
}

// executeHook creates and runs a registered hook, returning the process exit code.
// Anything that goes wrong outside the hook itself still allows the edit.
func executeHook(key string, ctx *core.HookContext) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = core.ExitAllow
		}
	}()

	core.SetGlobalContext(ctx)
	hook, err := core.CreateHook(key)
	if err != nil {
		return core.ExitAllow
	}
	return core.ExitCode(hook.Run())
}

// RunStandalone runs one hook with process stdio and settings from the app
// config file. It is the whole of the path-guard and markdown-tidy binaries.
func RunStandalone(key string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = core.ExitAllow
		}
	}()

	appCfg := config.LoadAppConfigFromEnvironment()
	ctx, cleanup := newHookContext(key, appCfg, runOptions{
		logEnabled:   appCfg.Logging.Enabled,
		logFormat:    appCfg.Logging.Format,
		responseMode: core.ResponseModeExitCode,
		rotation:     appCfg.Logging.Rotation,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
	})
	defer cleanup()

	return executeHook(key, ctx)
}

// NewRunCmd creates the run command. Hooks write nothing beyond their own
// protocol output, so stdout stays usable by the host.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a hook against the event on stdin",
		ArgsUsage: "<hook-key>",
		Description: `Run a single hook. The Claude Code event is read from stdin.
In exit-code mode a blocked edit exits with status 2 after printing the reason.`,
		Flags: []cli.Flag{
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
			&cli.StringFlag{
				Name:  "response",
				Value: core.ResponseModeExitCode,
				Usage: "How the decision is reported: exit-code or json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: <hook-key>")
			}
			key := args[0]

			if !core.HasHook(key) {
				return fmt.Errorf("hook '%s' not found.\nAvailable hooks: %s", key, strings.Join(core.GetHookKeys(), ", "))
			}

			responseMode := cmd.String("response")
			if !core.IsValidResponseMode(responseMode) {
				return fmt.Errorf("invalid --response '%s'. Valid: %s, %s", responseMode, core.ResponseModeExitCode, core.ResponseModeJSON)
			}

			appCfg := config.LoadAppConfigFromEnvironment()
			logEnabled := cmd.Bool("log") || appCfg.Logging.Enabled
			logFormat := appCfg.Logging.Format
			if cmd.IsSet("log-format") {
				logFormat = cmd.String("log-format")
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}

			root := cmd.Root()
			ctx, cleanup := newHookContext(key, appCfg, runOptions{
				logEnabled:   logEnabled,
				logFormat:    logFormat,
				responseMode: responseMode,
				rotation:     appCfg.Logging.Rotation,
				stdin:        root.Reader,
				stdout:       root.Writer,
			})
			defer cleanup()

			if code := executeHook(key, ctx); code != core.ExitAllow {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

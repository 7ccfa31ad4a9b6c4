package constants

import "path/filepath"

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName        = "Edit Guard"
	BinaryName     = "edit-guard"
	ProjectTagline = "Keeps secrets out of reach and markdown in shape"

	// Module and repository
	ModulePath    = "github.com/klauern/edit-guard"
	RepositoryURL = "https://github.com/klauern/edit-guard"

	// Configuration files (extension decides the decoder)
	ConfigBaseName   = "edit-guard"
	SettingsFileName = "settings.json"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"

	// Command patterns for settings
	CommandPattern = BinaryName + " run"
)

// Hook keys
const (
	HookPathGuard    = "path-guard"
	HookMarkdownTidy = "markdown-tidy"
)

// Tool names reported by Claude Code in tool_name
const (
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
	ToolWrite     = "Write"
)

// FileEditMatcher is the settings.json matcher covering every file-editing tool.
const FileEditMatcher = ToolEdit + "|" + ToolMultiEdit + "|" + ToolWrite

// ConfigExtensions lists the config file extensions in lookup priority order.
var ConfigExtensions = []string{".yml", ".yaml", ".toml", ".json"}

// GetHooksDir returns the .claude/hooks directory under baseDir
func GetHooksDir(baseDir string) string {
	return filepath.Join(baseDir, ClaudeDir, HooksSubDir)
}

// GetSettingsPath returns the .claude/settings.json path under baseDir
func GetSettingsPath(baseDir string) string {
	return filepath.Join(baseDir, ClaudeDir, SettingsFileName)
}

package core

import (
	"encoding/json"
	"time"

	"github.com/klauern/edit-guard/internal/config"
)

// LogEntry represents a detailed log entry for hook inspection
type LogEntry struct {
	Timestamp    string                 `json:"timestamp"`
	InvocationID string                 `json:"invocation_id,omitempty"`
	HookKey      string                 `json:"hook_key"`
	Event        string                 `json:"event"`
	ToolName     string                 `json:"tool_name"`
	RawData      map[string]interface{} `json:"raw_data,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// logHookEvent centralizes structured hook event logging.
// It is a no-op if LoggingEnabled is false or no writer is configured.
// Failures are dropped: hooks never report their own logging problems.
func logHookEvent(ctx *HookContext, hookKey, event, toolName string,
	rawData map[string]interface{}, details map[string]interface{},
) {
	if ctx == nil || !ctx.LoggingEnabled || ctx.LogWriter == nil {
		return
	}

	entry := LogEntry{
		Timestamp:    time.Now().Format(time.RFC3339),
		InvocationID: ctx.InvocationID,
		HookKey:      hookKey,
		Event:        event,
		ToolName:     toolName,
		RawData:      rawData,
		Details:      details,
	}

	var jsonData []byte
	var err error
	if ctx.LoggingFormat == config.LoggingFormatPretty {
		jsonData, err = json.MarshalIndent(entry, "", "  ")
	} else {
		jsonData, err = json.Marshal(entry)
	}
	if err != nil {
		return
	}

	_, _ = ctx.LogWriter.Write(append(jsonData, '\n'))
}

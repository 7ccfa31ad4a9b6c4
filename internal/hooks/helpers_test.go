package hooks

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/klauern/edit-guard/internal/core"
)

// bytesBuffer collects jsonl log output for assertions
type bytesBuffer struct {
	bytes.Buffer
}

func (b *bytesBuffer) entries(t *testing.T) []core.LogEntry {
	t.Helper()
	var entries []core.LogEntry
	for _, line := range strings.Split(strings.TrimSpace(b.String()), "\n") {
		if line == "" {
			continue
		}
		var entry core.LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

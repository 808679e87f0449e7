package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// reserved are the zap keys rendered in fixed positions.
var reserved = map[string]bool{
	"ts": true, "level": true, "msg": true, "logger": true, "caller": true, "stacktrace": true,
}

// FormatLine renders one zap JSON entry as
// "15:04:05 INFO  [syncer] settings saved key=themeMode".
// Lines that are not JSON objects are returned unchanged.
func FormatLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return line
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
		return line
	}

	var b strings.Builder
	if ts, ok := entry["ts"].(string); ok {
		if parsed, err := time.Parse("2006-01-02T15:04:05.000Z0700", ts); err == nil {
			b.WriteString(parsed.Format("15:04:05"))
		} else {
			b.WriteString(ts)
		}
		b.WriteByte(' ')
	}
	if level, ok := entry["level"].(string); ok {
		fmt.Fprintf(&b, "%-5s ", strings.ToUpper(level))
	}
	if name, ok := entry["logger"].(string); ok && name != "" {
		fmt.Fprintf(&b, "[%s] ", name)
	}
	if msg, ok := entry["msg"].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry[k])
	}
	return b.String()
}

// FormatLines applies FormatLine to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line)
	}
	return out
}

package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxEntryBytes bounds a single log entry; zap never writes one this large.
const maxEntryBytes = 1 << 20

// Read returns at most maxLines entries from the end of the sync log at path.
// A non-positive maxLines returns every entry. Blank lines are skipped and a
// missing file yields no entries.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	buf := newTail(maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEntryBytes)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			buf.push(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return buf.lines(), nil
}

// tail keeps the newest entries pushed to it. A non-positive limit keeps all.
type tail struct {
	limit   int
	entries []string
	next    int
	full    bool
}

func newTail(limit int) *tail {
	t := &tail{limit: limit}
	if limit > 0 {
		t.entries = make([]string, 0, limit)
	}
	return t
}

func (t *tail) push(line string) {
	if t.limit <= 0 || len(t.entries) < t.limit {
		t.entries = append(t.entries, line)
		return
	}
	t.entries[t.next] = line
	t.next = (t.next + 1) % t.limit
	t.full = true
}

// lines returns the kept entries oldest first.
func (t *tail) lines() []string {
	if len(t.entries) == 0 {
		return nil
	}
	if !t.full {
		return t.entries
	}
	out := make([]string, 0, len(t.entries))
	out = append(out, t.entries[t.next:]...)
	return append(out, t.entries[:t.next]...)
}

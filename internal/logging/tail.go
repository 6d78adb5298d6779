package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one decoded line of the garenne log file.
type Entry struct {
	Time      time.Time
	Level     zerolog.Level
	Component string
	Message   string
	Error     string
	Fields    map[string]string
	Raw       string
}

// reserved keys are rendered in the entry header rather than as fields.
var reserved = map[string]bool{
	zerolog.TimestampFieldName: true,
	zerolog.LevelFieldName:     true,
	zerolog.MessageFieldName:   true,
	zerolog.ErrorFieldName:     true,
	"component":                true,
	"app":                      true,
}

// maxLineBytes bounds a single log line. Longer lines are skipped.
const maxLineBytes = 1 << 20

// Tail returns at most maxLines entries from the end of the log at path whose
// level is at least minLevel. A missing file yields no entries.
func Tail(path string, maxLines int, minLevel zerolog.Level) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The ring grows with the lines actually kept, so a huge maxLines costs
	// nothing up front.
	var ring []Entry
	next := 0
	reader := bufio.NewReader(file)
	for {
		raw, tooLong, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read log: %w", err)
		}
		if tooLong {
			continue
		}
		line := string(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := ParseEntry(line)
		if entry.Level < minLevel {
			continue
		}
		if len(ring) < maxLines {
			ring = append(ring, entry)
			continue
		}
		ring[next] = entry
		next = (next + 1) % maxLines
	}

	out := make([]Entry, 0, len(ring))
	out = append(out, ring[next:]...)
	return append(out, ring[:next]...), nil
}

// readLine returns the next line without its terminator. A line over
// maxLineBytes is consumed and reported as tooLong with no content.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// ParseEntry decodes one JSON log line. Lines that are not JSON are kept as
// an info entry carrying the raw text.
func ParseEntry(line string) Entry {
	entry := Entry{Level: zerolog.InfoLevel, Raw: line}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		entry.Message = strings.TrimSpace(line)
		return entry
	}

	if v, ok := payload[zerolog.LevelFieldName].(string); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			entry.Level = lvl
		}
	}
	if v, ok := payload[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			entry.Time = ts
		}
	}
	entry.Message, _ = payload[zerolog.MessageFieldName].(string)
	entry.Error, _ = payload[zerolog.ErrorFieldName].(string)
	entry.Component, _ = payload["component"].(string)

	for k, v := range payload {
		if reserved[k] {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]string)
		}
		entry.Fields[k] = fmt.Sprint(v)
	}
	return entry
}

// Format renders an entry on one line, local time first.
func (e Entry) Format() string {
	ts := "-"
	if !e.Time.IsZero() {
		ts = e.Time.In(time.Local).Format("2006-01-02 15:04:05")
	}
	parts := []string{ts, strings.ToUpper(e.Level.String())}
	if e.Component != "" {
		parts = append(parts, "["+e.Component+"]")
	}
	header := strings.Join(parts, " ")
	if e.Message != "" {
		header += " " + e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		header += " " + k + "=" + e.Fields[k]
	}
	if e.Error != "" {
		header += " error=" + e.Error
	}
	return header
}

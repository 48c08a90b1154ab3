package logx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Formatter is the interface for log formatters
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// LogEntry represents a single log entry
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

// Fields is a map of structured data
type Fields map[string]any

// formatTimestamp formats the timestamp based on the config
func formatTimestamp(t time.Time, format string) string {
	if format == "unix" {
		return fmt.Sprintf("%d", t.Unix())
	}
	return t.Format(format)
}

// ConsoleFormatter renders entries as single human-readable lines
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format implements Formatter
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(formatTimestamp(entry.Timestamp, f.config.TimeFormat))
	b.WriteString(" [")
	b.WriteString(entry.Level.String())
	b.WriteString("] ")
	b.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
		}
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// JSONFormatter renders entries as one JSON object per line
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format implements Formatter
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	payload := make(map[string]any, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		payload[k] = v
	}
	payload["time"] = formatTimestamp(entry.Timestamp, f.config.TimeFormat)
	payload["level"] = entry.Level.String()
	payload["message"] = entry.Message

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

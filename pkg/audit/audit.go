// Package audit appends newline-delimited JSON records of configuration
// mutations to a durable, append-only log file.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umeedai/umeed-api/pkg/config"
)

// Entry is a single audit record. One entry is written per mutation, one
// JSON object per line. Entries are never rewritten or deleted.
type Entry struct {
	Timestamp time.Time   `json:"timestamp"`
	Action    string      `json:"action"`
	User      string      `json:"user"`
	Details   interface{} `json:"details"`
}

// Writer appends audit entries.
type Writer interface {
	Append(entry Entry) error
}

// FileWriter serializes entries to a rotating log file. Writes are ordered
// by a mutex so interleaved callers cannot corrupt a line.
type FileWriter struct {
	mu   sync.Mutex
	sink io.WriteCloser
}

// NewFileWriter builds a writer backed by the configured log path. The log
// directory is created lazily on the first append.
func NewFileWriter(cfg config.AuditConfig) *FileWriter {
	return &FileWriter{
		sink: &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		},
	}
}

// Append writes one entry as a single JSON line.
func (w *FileWriter) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.sink.Write(line); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying sink.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sink.Close()
}

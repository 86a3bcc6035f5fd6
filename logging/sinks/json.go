package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"towerdefense/server/logging"
)

// JSONSink appends newline-delimited JSON events to a file. Writes are
// buffered and flushed once the batch fills or the flush interval has
// elapsed since the previous flush; there is no background goroutine, the
// interval is checked on each write (the router's dispatch loop is the
// only caller) and on Close.
type JSONSink struct {
	mu        sync.Mutex
	file      *os.File
	writer    *bufio.Writer
	encoder   *json.Encoder
	pending   int
	maxBatch  int
	interval  time.Duration
	lastFlush time.Time
}

// NewJSONSink opens (or creates) cfg.FilePath for appending.
func NewJSONSink(cfg logging.JSONConfig) (*JSONSink, error) {
	path := cfg.FilePath
	if path == "" {
		path = "events.jsonl"
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = 32
	}
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return &JSONSink{
		file:      file,
		writer:    writer,
		encoder:   encoder,
		maxBatch:  maxBatch,
		interval:  interval,
		lastFlush: time.Now(),
	}, nil
}

// Write satisfies logging.Sink.
func (s *JSONSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.encoder.Encode(event); err != nil {
		return err
	}
	s.pending++
	if s.pending >= s.maxBatch || time.Since(s.lastFlush) >= s.interval {
		return s.flushLocked()
	}
	return nil
}

// Close flushes any buffered events and closes the file.
func (s *JSONSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flushErr := s.flushLocked()
	closeErr := s.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (s *JSONSink) flushLocked() error {
	s.pending = 0
	s.lastFlush = time.Now()
	return s.writer.Flush()
}

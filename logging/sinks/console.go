// Package sinks holds the logging.Sink implementations shipped with the
// server: a line-oriented console sink, a newline-delimited JSON file sink,
// and an in-memory sink for test assertions.
package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"towerdefense/server/logging"
)

var severityNames = map[logging.Severity]string{
	logging.SeverityDebug: "debug",
	logging.SeverityInfo:  "info",
	logging.SeverityWarn:  "warn",
	logging.SeverityError: "error",
}

// ConsoleSink writes one line per event through the standard logger.
type ConsoleSink struct {
	logger *log.Logger
}

// NewConsoleSink constructs a console sink over w.
func NewConsoleSink(w io.Writer, cfg logging.ConsoleConfig) *ConsoleSink {
	return &ConsoleSink{logger: log.New(w, cfg.Prefix, log.LstdFlags)}
}

// Write satisfies logging.Sink.
func (s *ConsoleSink) Write(event logging.Event) error {
	if s.logger == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] tick=%d", event.Type, event.Tick)
	if event.Wave > 0 {
		fmt.Fprintf(&b, " wave=%d", event.Wave)
	}
	fmt.Fprintf(&b, " sev=%s", severityName(event.Severity))
	if ref := entityLabel(event.Actor); ref != "" {
		fmt.Fprintf(&b, " actor=%s", ref)
	}
	if len(event.Targets) > 0 {
		labels := make([]string, 0, len(event.Targets))
		for _, target := range event.Targets {
			labels = append(labels, entityLabel(target))
		}
		fmt.Fprintf(&b, " targets=%s", strings.Join(labels, ","))
	}
	if event.Payload != nil {
		if data, err := json.Marshal(event.Payload); err == nil {
			fmt.Fprintf(&b, " payload=%s", data)
		} else {
			fmt.Fprintf(&b, " payload=%v", event.Payload)
		}
	}
	s.logger.Print(b.String())
	return nil
}

// Close satisfies logging.Sink.
func (s *ConsoleSink) Close(context.Context) error { return nil }

func severityName(sev logging.Severity) string {
	if name, ok := severityNames[sev]; ok {
		return name
	}
	return "unknown"
}

func entityLabel(ref logging.EntityRef) string {
	switch {
	case ref.ID == "" && ref.Kind == "":
		return ""
	case ref.ID == "":
		return string(ref.Kind)
	case ref.Kind == "":
		return ref.ID
	default:
		return string(ref.Kind) + ":" + ref.ID
	}
}

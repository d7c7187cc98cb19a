// Package diagnostics carries per-attempt records of the download strategy
// pipeline to observers. Records are never read back by the engine.
package diagnostics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/drittich/media-device-copier/pkg/logging"
)

// Outcome classifies a single strategy attempt
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeReturnedFalse Outcome = "returned_false"
	OutcomeProtocolError Outcome = "protocol_error"
	OutcomeGenericError  Outcome = "generic_error"
)

// Attempt is the record of one strategy execution
type Attempt struct {
	Strategy   string
	SourcePath string
	Elapsed    time.Duration
	Outcome    Outcome
	// Code is the device response code for OutcomeProtocolError
	Code uint32
	// Err is the failure for the error outcomes
	Err error
}

// ElapsedMillis returns the elapsed time in whole milliseconds
func (a Attempt) ElapsedMillis() int64 {
	return a.Elapsed.Milliseconds()
}

// Succeeded reports whether the attempt transferred the file
func (a Attempt) Succeeded() bool {
	return a.Outcome == OutcomeSuccess
}

func (a Attempt) String() string {
	switch a.Outcome {
	case OutcomeProtocolError:
		return fmt.Sprintf("%s: protocol error 0x%04X (%dms)", a.Strategy, a.Code, a.ElapsedMillis())
	case OutcomeGenericError:
		return fmt.Sprintf("%s: %v (%dms)", a.Strategy, a.Err, a.ElapsedMillis())
	default:
		return fmt.Sprintf("%s: %s (%dms)", a.Strategy, a.Outcome, a.ElapsedMillis())
	}
}

// Sink receives attempt records
type Sink interface {
	Record(ctx context.Context, attempt Attempt)
}

// Discard is a sink that drops every record
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(context.Context, Attempt) {}

// Multi fans records out to several sinks
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) Record(ctx context.Context, attempt Attempt) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, attempt)
		}
	}
}

// Recorder keeps every record in memory
type Recorder struct {
	mu       sync.Mutex
	attempts []Attempt
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(_ context.Context, attempt Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
}

// Attempts returns a copy of the records in arrival order
func (r *Recorder) Attempts() []Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Attempt(nil), r.attempts...)
}

// Strategies returns the strategy names in arrival order
func (r *Recorder) Strategies() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.attempts))
	for i, a := range r.attempts {
		names[i] = a.Strategy
	}
	return names
}

// Reset drops all records
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = nil
}

// LogSink writes records to a logger: successes at debug level, failures at info
type LogSink struct {
	logger logging.Logger
}

// NewLogSink creates a sink for logger
func NewLogSink(logger logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, attempt Attempt) {
	fields := logging.Fields{
		"strategy":   attempt.Strategy,
		"path":       attempt.SourcePath,
		"elapsed_ms": attempt.ElapsedMillis(),
		"outcome":    string(attempt.Outcome),
	}
	switch attempt.Outcome {
	case OutcomeSuccess:
		s.logger.Debug(ctx, "download attempt succeeded", fields)
	case OutcomeReturnedFalse:
		s.logger.Info(ctx, "download attempt returned false", fields)
	case OutcomeProtocolError:
		fields["code"] = fmt.Sprintf("0x%04X", attempt.Code)
		fields["error"] = attempt.Err
		s.logger.Info(ctx, "download attempt failed with device error", fields)
	default:
		fields["error"] = attempt.Err
		s.logger.Info(ctx, "download attempt failed", fields)
	}
}

package strategy

import (
	"context"
	"sync"
	"time"

	"github.com/drittich/media-device-copier/pkg/device"
	"github.com/drittich/media-device-copier/pkg/diagnostics"
)

// Config configures a pipeline
type Config struct {
	// Strategies in execution order. Empty means DefaultStrategies.
	Strategies []Strategy
	// Sink receives one record per attempt. Nil discards.
	Sink diagnostics.Sink
	// Sleep waits before a strategy runs. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// Result is the outcome of one pipeline run
type Result struct {
	Success  bool
	Attempts []diagnostics.Attempt
}

// Succeeded returns the winning attempt, if any
func (r Result) Succeeded() (diagnostics.Attempt, bool) {
	if !r.Success || len(r.Attempts) == 0 {
		return diagnostics.Attempt{}, false
	}
	return r.Attempts[len(r.Attempts)-1], true
}

// Pipeline runs strategies in order until one succeeds
type Pipeline struct {
	mu         sync.RWMutex
	strategies []Strategy
	sink       diagnostics.Sink
	sleep      func(time.Duration)
}

// NewPipeline creates a pipeline from config
func NewPipeline(config Config) *Pipeline {
	p := &Pipeline{
		sink:  config.Sink,
		sleep: config.Sleep,
	}
	if p.sink == nil {
		p.sink = diagnostics.Discard
	}
	if p.sleep == nil {
		p.sleep = time.Sleep
	}
	p.SetStrategies(config.Strategies)
	return p
}

// SetStrategies replaces the strategy list for subsequent runs.
// An empty list restores the defaults.
func (p *Pipeline) SetStrategies(strategies []Strategy) {
	var list []Strategy
	if len(strategies) == 0 {
		list = DefaultStrategies()
	} else {
		list = append([]Strategy(nil), strategies...)
	}

	p.mu.Lock()
	p.strategies = list
	p.mu.Unlock()
}

// Strategies returns a copy of the current strategy list
func (p *Pipeline) Strategies() []Strategy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Strategy(nil), p.strategies...)
}

// Run executes strategies in order and stops at the first success.
// Every attempt is recorded to the sink, with elapsed time including the delay.
func (p *Pipeline) Run(ctx context.Context, sc *Context) Result {
	strategies := p.Strategies()

	var result Result
	for _, s := range strategies {
		start := time.Now()
		if s.Delay > 0 {
			p.sleep(s.Delay)
		}
		ok, err := s.Execute(ctx, sc)

		attempt := diagnostics.Attempt{
			Strategy:   s.Name,
			SourcePath: sc.SourcePath,
			Elapsed:    time.Since(start),
		}
		switch {
		case err != nil:
			attempt.Err = err
			if code, isProtocol := device.ProtocolCode(err); isProtocol {
				attempt.Outcome = diagnostics.OutcomeProtocolError
				attempt.Code = code
			} else {
				attempt.Outcome = diagnostics.OutcomeGenericError
			}
		case ok:
			attempt.Outcome = diagnostics.OutcomeSuccess
		default:
			attempt.Outcome = diagnostics.OutcomeReturnedFalse
		}

		p.sink.Record(ctx, attempt)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Outcome == diagnostics.OutcomeSuccess {
			result.Success = true
			return result
		}
	}
	return result
}

package iocboot

import (
	"sync/atomic"
	"time"

	"github.com/segmentio/stats/v4"
)

// Step is one traced protocol step; End marks its completion.
type Step interface {
	End()
}

// Tracer receives a named start/end event pair for every mutate-registry and
// mutate-factory call, tagged with the processor identity. Implementations
// must be cheap; the protocol calls Start on the bootstrap hot path.
type Tracer interface {
	Start(step string, processor string) Step
}

type nopTracer struct{}

type nopStep struct{}

func (nopTracer) Start(string, string) Step { return nopStep{} }

func (nopStep) End() {}

// defaultTracer holds the process-global tracer hook. Guarded with
// atomic.Value to allow lock-free reads while supporting concurrent updates.
var defaultTracer atomic.Value // stores Tracer

func init() {
	// Initialize with the nop tracer to fix the stored type for atomic.Value.
	defaultTracer.Store(Tracer(nopTracer{}))
}

// SetDefaultTracer installs a process-global tracer used by delegates created
// without WithTracer. Passing nil restores the nop tracer.
func SetDefaultTracer(tracer Tracer) {
	if tracer == nil {
		tracer = nopTracer{}
	}
	defaultTracer.Store(tracer)
}

func loadDefaultTracer() Tracer {
	if tracer, ok := defaultTracer.Load().(Tracer); ok {
		return tracer
	}
	return nopTracer{}
}

// NewLogTracer returns a Tracer that emits start/end events at trace level.
func NewLogTracer(logger Logger) Tracer {
	return &logTracer{logger: logger}
}

type logTracer struct {
	logger Logger
}

func (t *logTracer) Start(step, processor string) Step {
	t.logger.Tracef("step %s started: processor=%s", step, processor)
	return &logStep{
		tracer:    t,
		step:      step,
		processor: processor,
		started:   time.Now(),
	}
}

type logStep struct {
	tracer    *logTracer
	step      string
	processor string
	started   time.Time
}

func (s *logStep) End() {
	s.tracer.logger.Tracef("step %s ended: processor=%s duration=%s",
		s.step, s.processor, time.Since(s.started))
}

// NewStatsTracer returns a Tracer publishing one duration measure per step
// through the given engine, tagged with the processor identity.
func NewStatsTracer(engine *stats.Engine) Tracer {
	return &statsTracer{engine: engine}
}

type statsTracer struct {
	engine *stats.Engine
}

func (t *statsTracer) Start(step, processor string) Step {
	return &statsStep{
		tracer:    t,
		step:      step,
		processor: processor,
		started:   time.Now(),
	}
}

type statsStep struct {
	tracer    *statsTracer
	step      string
	processor string
	started   time.Time
}

func (s *statsStep) End() {
	s.tracer.engine.Observe(s.step, time.Since(s.started).Seconds(),
		stats.Tag{Name: "processor", Value: s.processor})
}

package iocboot

import "github.com/Station-Manager/iocboot/internal/logging"

// Logger is the subset of the logging API the protocol emits on. Satisfied by
// *logging.Logger.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Option configures a Delegate.
type Option func(*Delegate)

// WithTracer installs a step tracer for this delegate only, overriding the
// process-global default.
func WithTracer(tracer Tracer) Option {
	return func(d *Delegate) {
		d.tracer = tracer
	}
}

// WithLogger replaces the delegate's named logger.
func WithLogger(logger Logger) Option {
	return func(d *Delegate) {
		d.logger = logger
	}
}

// Delegate exposes the two bootstrap entry points. It owns no state of its
// own beyond its tracer and logger; the two operations share nothing and are
// always invoked in order: InvokeFactoryProcessors first, RegisterInterceptors
// strictly after, so interceptors never affect which definitions exist.
//
// The whole protocol is single-threaded by contract. A multi-threaded host
// must serialize bootstrap calls externally.
type Delegate struct {
	tracer Tracer
	logger Logger
}

func New(opts ...Option) *Delegate {
	d := &Delegate{}
	for _, opt := range opts {
		opt(d)
	}
	if d.tracer == nil {
		d.tracer = loadDefaultTracer()
	}
	if d.logger == nil {
		d.logger = logging.NewLogger("Bootstrap")
	}
	return d
}

// InvokeFactoryProcessors runs the definition-mutation phase: externally
// supplied processors first, then the container-registered ones in tier
// order, with a drain loop for processors that register more processors.
// Any failing mutate call aborts the phase and propagates.
func (d *Delegate) InvokeFactoryProcessors(factory Factory, external []FactoryProcessor) error {
	if factory == nil {
		return ErrFactoryParamIsNil
	}
	return d.invokeFactoryProcessors(factory, external)
}

// RegisterInterceptors runs the interceptor-registration phase: the
// diagnostic checker first, the interceptor-capable definitions in tier
// order, merged-definition observers re-appended, and the listener detector
// strictly last. Running it twice appends twice; the operation is
// deliberately not idempotent.
func (d *Delegate) RegisterInterceptors(factory Factory, ctx Context) error {
	if factory == nil {
		return ErrFactoryParamIsNil
	}
	if ctx == nil {
		return ErrContextParamIsNil
	}
	return d.registerInterceptors(factory, ctx)
}

package ashley

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds package-wide defaults picked up by engines at creation time.
var Config config = config{
	logger: zap.NewNop(),
}

type config struct {
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
	entityCapacity int
}

// SetLogger sets the logger new engines write to. A nil logger discards.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// SetTracerProvider sets the provider new engines take their tracer from.
// When unset the otel global provider is used.
func (c *config) SetTracerProvider(tp trace.TracerProvider) {
	c.tracerProvider = tp
}

// SetEntityCapacity pre-sizes the entity list of new engines.
func (c *config) SetEntityCapacity(n int) {
	c.entityCapacity = n
}

func (c *config) tracerProviderOrGlobal() trace.TracerProvider {
	if c.tracerProvider != nil {
		return c.tracerProvider
	}
	return otel.GetTracerProvider()
}

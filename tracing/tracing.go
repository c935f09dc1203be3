// Copyright 2026 SpotHero
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spothero/jobportal/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CorrelationIDCtxKeyType is the type used to uniquely place the trace header in contexts
type CorrelationIDCtxKeyType int

// CorrelationIDCtxKey is the key into any context.Context  which maps to the
// correlation id of the given context. This correlation ID can be
// conveyed to external clients in order to correlate external systems with
// tracing and logging.
const CorrelationIDCtxKey CorrelationIDCtxKeyType = iota

// instrumentationName names the tracer used by this package
const instrumentationName = "github.com/spothero/jobportal/tracing"

// Supported exporters and samplers
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"

	SamplerAlways = "always"
	SamplerNever  = "never"
	SamplerRatio  = "ratio"
)

// Config defines the necessary configuration for instantiating a Tracer
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Exporter is "otlp" (gRPC) or "stdout"
	Exporter     string
	OTLPEndpoint string
	SamplerType  string
	SamplerParam float64
	OTLPInsecure bool
	Enabled      bool
	// writer overrides the stdout exporter destination
	writer io.Writer
}

// TracerProvider configures the global OpenTelemetry tracer provider and text map propagator. The
// returned function flushes and stops the exporter and must be called on shutdown. When tracing is
// disabled spans are still created, so that correlation ids work, but never exported.
func (c Config) TracerProvider() (func(context.Context) error, error) {
	if c.ServiceName == "" {
		return nil, errors.New("tracing: no service name specified")
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(c.ServiceName),
		semconv.ServiceVersionKey.String(c.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(c.Environment),
	)
	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if c.Enabled {
		sampler, err := c.sampler()
		if err != nil {
			return nil, err
		}
		exporter, err := c.exporter()
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithSampler(sampler), sdktrace.WithBatcher(exporter))
	}

	tracerProvider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Get(context.Background()).Info(
		"tracer configured",
		zap.Bool("enabled", c.Enabled),
		zap.String("exporter", c.Exporter),
	)
	return tracerProvider.Shutdown, nil
}

func (c Config) sampler() (sdktrace.Sampler, error) {
	switch c.SamplerType {
	case "", SamplerAlways:
		return sdktrace.ParentBased(sdktrace.AlwaysSample()), nil
	case SamplerNever:
		return sdktrace.NeverSample(), nil
	case SamplerRatio:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SamplerParam)), nil
	default:
		return nil, fmt.Errorf("tracing: unknown sampler type %q", c.SamplerType)
	}
}

func (c Config) exporter() (sdktrace.SpanExporter, error) {
	switch c.Exporter {
	case "", ExporterOTLP:
		opts := []otlptracegrpc.Option{}
		if c.OTLPEndpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(c.OTLPEndpoint))
		}
		if c.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("tracing: failed to create otlp exporter: %w", err)
		}
		return exporter, nil
	case ExporterStdout:
		w := c.writer
		if w == nil {
			w = os.Stdout
		}
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("tracing: failed to create stdout exporter: %w", err)
		}
		return exporter, nil
	default:
		return nil, fmt.Errorf("tracing: unknown exporter %q", c.Exporter)
	}
}

// StartSpanFromContext starts a span named spanName as a child of any span on ctx.
func StartSpanFromContext(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (trace.Span, context.Context) {
	spanCtx, span := otel.Tracer(instrumentationName).Start(ctx, spanName, opts...)
	return span, spanCtx
}

// EmbedCorrelationID embeds the current Trace ID as the correlation ID in the context logger
func EmbedCorrelationID(ctx context.Context) context.Context {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ctx
	}
	correlationID := sc.TraceID().String()
	ctx = log.NewContext(ctx, log.Get(ctx).With(zap.String("correlation_id", correlationID)))
	return context.WithValue(ctx, CorrelationIDCtxKey, correlationID)
}

// GetCorrelationID returns the correlation ID associated with the given
// Context. This function only produces meaningful results for Contexts
// associated with http.Requests which have passed through
// tracing.HTTPServerMiddleware.
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDCtxKey).(string); ok {
		return correlationID
	}
	return ""
}

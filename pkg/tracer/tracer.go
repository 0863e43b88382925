// Copyright (c) 2020 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package tracer

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	_service = "iotex-donation"
	_tracer  = "iotex-donation-tracer"
)

type (
	// Option the tracer provider option
	Option func(ops *optionParams) error

	optionParams struct {
		serviceName   string
		endpoint      string // the jaeger endpoint
		instanceID    string // the ID of this service instance
		samplingRatio string // the sampling ratio of trace, a decimal in [0, 1]
	}
)

// WithServiceName defines service name
func WithServiceName(name string) Option {
	return func(ops *optionParams) error {
		ops.serviceName = name
		return nil
	}
}

// WithEndpoint defines the full URL to the collector
func WithEndpoint(endpoint string) Option {
	return func(ops *optionParams) error {
		ops.endpoint = endpoint
		return nil
	}
}

// WithInstanceID defines the instance ID
func WithInstanceID(id string) Option {
	return func(ops *optionParams) error {
		ops.instanceID = id
		return nil
	}
}

// WithSamplingRatio defines the sampling ratio
func WithSamplingRatio(rate string) Option {
	return func(ops *optionParams) error {
		ops.samplingRatio = rate
		return nil
	}
}

// NewProvider creates a trace provider exporting to jaeger, it returns nil when no endpoint is set
func NewProvider(opts ...Option) (*tracesdk.TracerProvider, error) {
	ops := optionParams{
		serviceName: _service,
	}
	for _, opt := range opts {
		if err := opt(&ops); err != nil {
			return nil, err
		}
	}
	if ops.endpoint == "" {
		return nil, nil
	}
	sampler := tracesdk.AlwaysSample()
	if ops.samplingRatio != "" {
		ratio, err := strconv.ParseFloat(ops.samplingRatio, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid sampling ratio %s", ops.samplingRatio)
		}
		sampler = tracesdk.TraceIDRatioBased(ratio)
	}
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(ops.endpoint)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create jaeger exporter")
	}
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithSampler(sampler),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ops.serviceName),
			semconv.ServiceInstanceIDKey.String(ops.instanceID),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// NewSpan creates a span under the global tracer provider
func NewSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(_tracer).Start(ctx, spanName, opts...)
}

// SpanFromContext returns the current span from ctx
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

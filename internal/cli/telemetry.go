package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

type telemetryConfig struct {
	Endpoint    string
	Protocol    string
	Insecure    bool
	Headers     map[string]string
	ServiceName string
}

func telemetryConfigFromFlags(c *cli.Context) (*telemetryConfig, error) {
	headers, err := parseHeaders(c.StringSlice("header"))
	if err != nil {
		return nil, err
	}
	cfg := &telemetryConfig{
		Endpoint:    c.String("otel-exporter-otlp-endpoint"),
		Protocol:    c.String("protocol"),
		Insecure:    c.Bool("insecure"),
		Headers:     headers,
		ServiceName: c.String("service-name"),
	}
	if cfg.Protocol == "" {
		cfg.Protocol = "grpc"
	}
	if cfg.Protocol != "grpc" && cfg.Protocol != "http" {
		return nil, fmt.Errorf("unknown protocol %q, want one of: grpc, http", cfg.Protocol)
	}
	return cfg, nil
}

// userAgent identifies the exporters to the collector.
func userAgent() grpc.DialOption {
	return grpc.WithUserAgent("jrand-gen/" + appVersion)
}

func newTraceExporter(ctx context.Context, cfg *telemetryConfig) (*otlptrace.Exporter, error) {
	if cfg.Protocol == "http" {
		httpExpOpt := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			httpExpOpt = append(httpExpOpt, otlptracehttp.WithInsecure())
		}
		if len(cfg.Headers) > 0 {
			httpExpOpt = append(httpExpOpt, otlptracehttp.WithHeaders(cfg.Headers))
		}
		return otlptracehttp.New(ctx, httpExpOpt...)
	}

	grpcExpOpt := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithDialOption(userAgent()),
	}
	if cfg.Insecure {
		grpcExpOpt = append(grpcExpOpt, otlptracegrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		grpcExpOpt = append(grpcExpOpt, otlptracegrpc.WithHeaders(cfg.Headers))
	}
	return otlptracegrpc.New(ctx, grpcExpOpt...)
}

func newMetricExporter(ctx context.Context, cfg *telemetryConfig) (sdkmetric.Exporter, error) {
	if cfg.Protocol == "http" {
		httpExpOpt := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			httpExpOpt = append(httpExpOpt, otlpmetrichttp.WithInsecure())
		}
		if len(cfg.Headers) > 0 {
			httpExpOpt = append(httpExpOpt, otlpmetrichttp.WithHeaders(cfg.Headers))
		}
		return otlpmetrichttp.New(ctx, httpExpOpt...)
	}

	grpcExpOpt := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithDialOption(userAgent()),
	}
	if cfg.Insecure {
		grpcExpOpt = append(grpcExpOpt, otlpmetricgrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		grpcExpOpt = append(grpcExpOpt, otlpmetricgrpc.WithHeaders(cfg.Headers))
	}
	return otlpmetricgrpc.New(ctx, grpcExpOpt...)
}

func newLogExporter(ctx context.Context, cfg *telemetryConfig) (sdklog.Exporter, error) {
	if cfg.Protocol == "http" {
		httpExpOpt := []otlploghttp.Option{
			otlploghttp.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			httpExpOpt = append(httpExpOpt, otlploghttp.WithInsecure())
		}
		if len(cfg.Headers) > 0 {
			httpExpOpt = append(httpExpOpt, otlploghttp.WithHeaders(cfg.Headers))
		}
		return otlploghttp.New(ctx, httpExpOpt...)
	}

	grpcExpOpt := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.Endpoint),
		otlploggrpc.WithDialOption(userAgent()),
	}
	if cfg.Insecure {
		grpcExpOpt = append(grpcExpOpt, otlploggrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		grpcExpOpt = append(grpcExpOpt, otlploggrpc.WithHeaders(cfg.Headers))
	}
	return otlploggrpc.New(ctx, grpcExpOpt...)
}

// setupTelemetry installs global tracer, meter and logger providers exporting
// over OTLP. Without an endpoint the global no-op providers stay in place. The
// returned func flushes and stops the providers and restores the previous ones.
func setupTelemetry(ctx context.Context, c *cli.Context) (func(context.Context), error) {
	cfg, err := telemetryConfigFromFlags(c)
	if err != nil {
		return nil, err
	}
	if cfg.Endpoint == "" {
		return func(context.Context) {}, nil
	}

	if cfg.Protocol == "grpc" {
		grpcZap.ReplaceGrpcLoggerV2(logger.WithOptions(
			zap.AddCallerSkip(3),
		))
		logger.Info("starting gRPC exporters", zap.String("endpoint", cfg.Endpoint))
	} else {
		logger.Info("starting HTTP exporters", zap.String("endpoint", cfg.Endpoint))
	}

	traceExp, err := newTraceExporter(ctx, cfg)
	if err != nil {
		logger.Error("failed to obtain OTLP trace exporter", zap.Error(err))
		return nil, err
	}
	metricExp, err := newMetricExporter(ctx, cfg)
	if err != nil {
		logger.Error("failed to obtain OTLP metric exporter", zap.Error(err))
		return nil, errors.Join(err, traceExp.Shutdown(ctx))
	}
	logExp, err := newLogExporter(ctx, cfg)
	if err != nil {
		logger.Error("failed to obtain OTLP log exporter", zap.Error(err))
		return nil, errors.Join(err, traceExp.Shutdown(ctx), metricExp.Shutdown(ctx))
	}

	res := resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
		semconv.ServiceVersionKey.String(appVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	tracerProvider.RegisterSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExp, sdktrace.WithBatchTimeout(time.Second)))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp, sdkmetric.WithInterval(10*time.Second))),
	)

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp,
			sdklog.WithExportInterval(time.Second),
		)),
	)

	prevTP, prevMP, prevLP := otel.GetTracerProvider(), otel.GetMeterProvider(), global.GetLoggerProvider()
	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	global.SetLoggerProvider(loggerProvider)

	return func(ctx context.Context) {
		logger.Info("stopping the telemetry providers")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.Error("failed to stop the tracer provider", zap.Error(err))
		}
		if err := meterProvider.Shutdown(ctx); err != nil {
			logger.Error("failed to stop the meter provider", zap.Error(err))
		}
		if err := loggerProvider.Shutdown(ctx); err != nil {
			logger.Error("failed to stop the logger provider", zap.Error(err))
		}
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		global.SetLoggerProvider(prevLP)
	}, nil
}

// shutdownWithTimeout gives the exporters a bounded time to flush.
func shutdownWithTimeout(shutdown func(context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	shutdown(ctx)
}

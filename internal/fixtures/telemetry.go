package fixtures

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// instruments holds the metric instruments and the OpenTelemetry logger of one
// run. They come from the global providers, which are no-ops unless an exporter
// was installed.
type instruments struct {
	files      metric.Int64Counter
	values     metric.Int64Counter
	duration   metric.Float64Histogram
	mismatches metric.Int64Counter
	logger     otellog.Logger
}

func newInstruments() *instruments {
	meter := otel.Meter(tracerName)
	in := &instruments{logger: global.GetLoggerProvider().Logger(tracerName)}

	var err error
	if in.files, err = meter.Int64Counter("jrand.fixture.files",
		metric.WithDescription("Fixture files processed, by kind and status"),
		metric.WithUnit("{file}"),
	); err != nil {
		otel.Handle(err)
	}
	if in.values, err = meter.Int64Counter("jrand.fixture.values",
		metric.WithDescription("Values written to fixture files"),
		metric.WithUnit("{value}"),
	); err != nil {
		otel.Handle(err)
	}
	if in.duration, err = meter.Float64Histogram("jrand.fixture.write.duration",
		metric.WithDescription("Time spent writing one fixture file"),
		metric.WithUnit("s"),
	); err != nil {
		otel.Handle(err)
	}
	if in.mismatches, err = meter.Int64Counter("jrand.fixture.mismatches",
		metric.WithDescription("Fixture files that failed verification"),
		metric.WithUnit("{file}"),
	); err != nil {
		otel.Handle(err)
	}
	return in
}

func (in *instruments) recordWrite(ctx context.Context, res FileResult, elapsed time.Duration) {
	status := statusOK
	if res.Err != nil {
		status = statusError
	}
	kind := attribute.String("fixture.kind", string(res.Kind))
	in.files.Add(ctx, 1, metric.WithAttributes(kind, attribute.String("fixture.status", status)))
	in.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(kind))

	if res.Err != nil {
		in.emit(ctx, otellog.SeverityError, "writing generated test data failed",
			otellog.String("fixture.kind", string(res.Kind)),
			otellog.String("fixture.path", res.Path),
			otellog.String("error", res.Err.Error()),
		)
		return
	}
	in.values.Add(ctx, int64(res.Tokens), metric.WithAttributes(kind))
	in.emit(ctx, otellog.SeverityInfo, "fixture written",
		otellog.String("fixture.kind", string(res.Kind)),
		otellog.String("fixture.path", res.Path),
		otellog.Int("fixture.tokens", res.Tokens),
		otellog.String("fixture.sha256", res.SHA256),
	)
}

func (in *instruments) recordMismatch(ctx context.Context, r VerifyResult) {
	in.mismatches.Add(ctx, 1, metric.WithAttributes(attribute.String("fixture.kind", string(r.Kind))))

	attrs := []otellog.KeyValue{
		otellog.String("fixture.kind", string(r.Kind)),
		otellog.String("fixture.path", r.Path),
		otellog.Int("fixture.index", r.Index),
	}
	if r.Err != nil {
		attrs = append(attrs, otellog.String("error", r.Err.Error()))
	}
	in.emit(ctx, otellog.SeverityWarn, "fixture mismatch", attrs...)
}

func (in *instruments) emit(ctx context.Context, sev otellog.Severity, body string, attrs ...otellog.KeyValue) {
	now := time.Now()
	var rec otellog.Record
	rec.SetTimestamp(now)
	rec.SetObservedTimestamp(now)
	rec.SetSeverity(sev)
	rec.SetSeverityText(severityText(sev))
	rec.SetBody(otellog.StringValue(body))
	rec.AddAttributes(attrs...)
	in.logger.Emit(ctx, rec)
}

func severityText(sev otellog.Severity) string {
	switch {
	case sev >= otellog.SeverityError:
		return "ERROR"
	case sev >= otellog.SeverityWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

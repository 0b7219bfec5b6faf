package telemetry

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
)

// FaultSpanName nombre del span creado cuando se reporta una falla sin span activo.
const FaultSpanName = "ledger.fault"

// LogReporter escribe las fallas de infraestructura en el log estructurado.
type LogReporter struct {
	log zerolog.Logger
}

// NewLogReporter construye el reporter sobre el logger de la aplicación.
func NewLogReporter(log zerolog.Logger) *LogReporter {
	return &LogReporter{log: log}
}

// Report registra la falla en nivel error con operación y payload.
func (r *LogReporter) Report(_ context.Context, operation string, err error, payload any) {
	r.log.Error().
		Err(err).
		Str("operation", operation).
		Interface("payload", payload).
		Msg("falla inesperada")
}

// TraceReporter adjunta la falla al span activo (o a uno nuevo) de OpenTelemetry.
type TraceReporter struct {
	tracer trace.Tracer
}

// NewTraceReporter construye el reporter con el tracer indicado.
func NewTraceReporter(tracer trace.Tracer) *TraceReporter {
	return &TraceReporter{tracer: tracer}
}

// Report marca el span con el error y los atributos operation/payload.
func (r *TraceReporter) Report(ctx context.Context, operation string, err error, payload any) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		_, span = r.tracer.Start(ctx, FaultSpanName)
		defer span.End()
	}
	attrs := []attribute.KeyValue{attribute.String("operation", operation)}
	if payload != nil {
		if b, jerr := json.Marshal(payload); jerr == nil {
			attrs = append(attrs, attribute.String("payload", string(b)))
		}
	}
	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())
}

// MultiReporter reenvía cada reporte a todos los reporters.
type MultiReporter []ports.ErrorReporter

// Report delega en cada reporter.
func (m MultiReporter) Report(ctx context.Context, operation string, err error, payload any) {
	for _, r := range m {
		r.Report(ctx, operation, err, payload)
	}
}

var (
	_ ports.ErrorReporter = (*LogReporter)(nil)
	_ ports.ErrorReporter = (*TraceReporter)(nil)
	_ ports.ErrorReporter = MultiReporter(nil)
)

package ports

import "context"

// ErrorReporter define el puerto de salida hacia la telemetría de errores.
// Solo recibe fallas inesperadas (infraestructura); las violaciones de reglas de negocio
// nunca se reportan. Se invoca en los puntos de entrada de cada caso de uso, no dentro de la lógica.
type ErrorReporter interface {
	// Report registra err etiquetado con la operación (p. ej. "sales.upsert") y el payload de la petición.
	Report(ctx context.Context, operation string, err error, payload any)
}

// NopErrorReporter descarta los reportes.
type NopErrorReporter struct{}

// Report no hace nada.
func (NopErrorReporter) Report(context.Context, string, error, any) {}

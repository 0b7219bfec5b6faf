package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInactiveEntity    = errors.New("entidad inactiva")
	ErrSaleCanceled      = fmt.Errorf("la venta está anulada: %w", ErrConflict)
)

// ErrorKind clasifica los errores de negocio para que el caller decida sin comparar strings.
type ErrorKind string

const (
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindInactiveEntity    ErrorKind = "INACTIVE_ENTITY"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindConflict          ErrorKind = "CONFLICT"
	KindForbidden         ErrorKind = "FORBIDDEN"
)

// BusinessError error recuperable de regla de negocio, con mensaje apto para el usuario.
// No debe enviarse a telemetría.
type BusinessError struct {
	Kind    ErrorKind
	Message string
	Err     error // sentinel asociado (ErrInsufficientStock, ErrNotFound, ...)
}

func (e *BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *BusinessError) Unwrap() error { return e.Err }

// NewBusinessError construye un error de negocio a partir del sentinel; el Kind se deduce del sentinel.
func NewBusinessError(sentinel error, format string, args ...any) *BusinessError {
	kind, _ := kindOfSentinel(sentinel)
	return &BusinessError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// InsufficientStockError describe el faltante: entidad, requerido, disponible y unidad.
func InsufficientStockError(name string, required, available decimal.Decimal, unit string) *BusinessError {
	msg := fmt.Sprintf("stock insuficiente de %s: requerido %s, disponible %s", name, required.String(), available.String())
	if unit != "" {
		msg = fmt.Sprintf("stock insuficiente de %s: requerido %s %s, disponible %s %s",
			name, required.String(), unit, available.String(), unit)
	}
	return &BusinessError{Kind: KindInsufficientStock, Message: msg, Err: ErrInsufficientStock}
}

// KindOf devuelve el tipo de error de negocio, o false si err no es de negocio (falla de infraestructura).
func KindOf(err error) (ErrorKind, bool) {
	if err == nil {
		return "", false
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return kindOfSentinel(err)
}

// IsBusinessError indica si err es una violación de regla de negocio (no se reporta a telemetría).
func IsBusinessError(err error) bool {
	_, ok := KindOf(err)
	return ok
}

func kindOfSentinel(err error) (ErrorKind, bool) {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock, true
	case errors.Is(err, ErrInactiveEntity):
		return KindInactiveEntity, true
	case errors.Is(err, ErrNotFound):
		return KindNotFound, true
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput, true
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return KindConflict, true
	case errors.Is(err, ErrForbidden):
		return KindForbidden, true
	}
	return "", false
}

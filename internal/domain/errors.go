package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// ValidationError acumula todos los fallos de validación de un request de
// movimiento. Recuperable localmente; no se mutó ningún estado.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// NewValidationError construye el error con los mensajes acumulados.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// ConflictError rechazo de un débito que dejaría un saldo negativo.
// Incluye el contexto del faltante; no se mutó ningún estado.
type ConflictError struct {
	SKU       string
	Warehouse string
	Location  string
	Requested int64
	Available int64
}

func (e *ConflictError) Error() string {
	loc := e.Warehouse
	if e.Location != "" {
		loc += "/" + e.Location
	}
	return fmt.Sprintf("stock insuficiente para %s en %s: solicitado %d, disponible %d",
		e.SKU, loc, e.Requested, e.Available)
}

func (e *ConflictError) Unwrap() error { return ErrInsufficientStock }

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores de validación del pedido. Todos cumplen errors.Is(err, ErrInvalidInput).
var (
	ErrEmptyOrder         = fmt.Errorf("%w: el pedido debe tener al menos una línea", ErrInvalidInput)
	ErrInvalidQuantity    = fmt.Errorf("%w: la cantidad debe ser un entero positivo", ErrInvalidInput)
	ErrInvalidPrice       = fmt.Errorf("%w: el precio debe ser un decimal no negativo con máximo 2 decimales", ErrInvalidInput)
	ErrInvalidType        = fmt.Errorf("%w: tipo de pedido inválido", ErrInvalidInput)
	ErrDuplicateOrderItem = fmt.Errorf("%w: el producto ya está en el pedido", ErrInvalidInput)
)

// Errores de numeración de documentos (pedidos y facturas).
var (
	// ErrDuplicateIdentifier el número ya existe en la empresa. El cliente puede reintentar con otro número o sin número.
	ErrDuplicateIdentifier = fmt.Errorf("%w: el número de documento ya existe en la empresa", ErrDuplicate)
	// ErrIdentifierExhausted no se encontró un número libre dentro del límite de intentos. Es transitorio.
	ErrIdentifierExhausted = errors.New("no se pudo generar un número de documento único, intente de nuevo")
)

// ErrTransactionFailure falla de almacenamiento dentro de la secuencia atómica. Ver TxError.
var ErrTransactionFailure = errors.New("fallo de transacción")

// TxError envuelve el error original de almacenamiento con la etapa en la que ocurrió.
// Cuando se devuelve, la transacción ya fue revertida.
type TxError struct {
	Stage string
	Err   error
}

func (e *TxError) Error() string {
	return fmt.Sprintf("transacción revertida (etapa %s): %v", e.Stage, e.Err)
}

// Unwrap expone la causa original.
func (e *TxError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrTransactionFailure).
func (e *TxError) Is(target error) bool { return target == ErrTransactionFailure }

// IsBusiness indica si err pertenece a la taxonomía de negocio (respuestas 4xx o agotamiento de numeración),
// en contraposición a un fallo inesperado de almacenamiento.
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrNotFound, ErrForbidden, ErrDuplicate,
		ErrConflict, ErrIdentifierExhausted, ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package pets

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrStorageRead  = errors.New("storage read error")
	ErrStorageWrite = errors.New("storage write error")
	ErrDuplicateKey = errors.New("pet id already exists")
	ErrNotFound     = errors.New("pet not found")
	ErrFormat       = errors.New("invalid data format")
)

// FormatError describe la primera fila inválida de un import estricto.
// errors.Is(err, ErrFormat) es true para cualquier *FormatError.
type FormatError struct {
	Line   int   // 1-based; 0 si no se conoce
	Fields int   // campos encontrados en la fila
	Err    error // error del parser CSV, si lo hubo
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: line %d: %v", ErrFormat, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: line %d has %d fields, want %d", ErrFormat, e.Line, e.Fields, FieldCount)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// ReadError y WriteError envuelven un error de I/O con la categoría de storage.
func ReadError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageRead, err)
}

func WriteError(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageWrite, err)
}

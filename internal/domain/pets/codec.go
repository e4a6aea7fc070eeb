package pets

import (
	"encoding/csv"
	"errors"
	"io"

	"pet-adoption/internal/platform/csvfile"
)

// ToRows convierte la colección al formato de filas del archivo.
func ToRows(items []Pet) [][]string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, p.Fields())
	}
	return rows
}

// FromRowsLenient descarta en silencio las filas que no tienen FieldCount
// campos. Devuelve también cuántas descartó.
func FromRowsLenient(rows [][]string) ([]Pet, int) {
	out := make([]Pet, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		p, ok := FromFields(row)
		if !ok {
			dropped++
			continue
		}
		out = append(out, p)
	}
	return out, dropped
}

// FromRowsStrict falla con *FormatError ante la primera fila inválida
// y en ese caso no devuelve ningún registro.
func FromRowsStrict(rows [][]string) ([]Pet, error) {
	out := make([]Pet, 0, len(rows))
	for i, row := range rows {
		p, ok := FromFields(row)
		if !ok {
			return nil, &FormatError{Line: i + 1, Fields: len(row)}
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteCSV escribe la colección en w con el formato del archivo de storage.
func WriteCSV(w io.Writer, items []Pet) error {
	if err := csvfile.Write(w, ToRows(items)); err != nil {
		return WriteError(err)
	}
	return nil
}

// ReadCSVStrict lee una colección completa desde r (import estricto).
func ReadCSVStrict(r io.Reader) ([]Pet, error) {
	rows, err := csvfile.ReadStrict(r)
	if err != nil {
		return nil, parseFailure(err)
	}
	return FromRowsStrict(rows)
}

// ExportFile reemplaza path con la colección.
func ExportFile(path string, items []Pet) error {
	if err := csvfile.WriteFile(path, ToRows(items)); err != nil {
		return WriteError(err)
	}
	return nil
}

// ImportFile lee path en modo estricto. No escribe nada.
func ImportFile(path string) ([]Pet, error) {
	rows, err := csvfile.ReadFileStrict(path)
	if err != nil {
		return nil, parseFailure(err)
	}
	return FromRowsStrict(rows)
}

// parseFailure separa errores de formato (CSV mal formado) de errores de I/O.
func parseFailure(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &FormatError{Line: perr.Line, Err: perr.Err}
	}
	return ReadError(err)
}

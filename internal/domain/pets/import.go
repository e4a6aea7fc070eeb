package pets

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ImportMode decide qué hacer con los registros importados.
// Leer el archivo nunca escribe; la escritura depende del modo.
type ImportMode string

const (
	ImportPreview ImportMode = "preview" // solo parsea y devuelve
	ImportReplace ImportMode = "replace" // la colección pasa a ser exactamente el lote
	ImportMerge   ImportMode = "merge"   // agrega ids nuevos; en colisión gana el existente
)

func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ImportPreview:
		return ImportPreview, nil
	case ImportReplace:
		return ImportReplace, nil
	case ImportMerge:
		return ImportMerge, nil
	default:
		return "", fmt.Errorf("%w: unknown import mode %q", ErrInvalidInput, s)
	}
}

type ImportResult struct {
	Mode    ImportMode
	Records []Pet    // lote parseado, en orden de archivo
	Added   int      // registros efectivamente escritos
	Skipped []string // ids no escritos (merge: ya existían o repetidos en el lote)
}

// Import lee path en modo estricto y aplica mode.
// Si el repo implementa FileTransfer, la lectura la hace el repo.
func (s *Service) Import(ctx context.Context, path string, mode ImportMode) (ImportResult, error) {
	if strings.TrimSpace(path) == "" {
		return ImportResult{}, fmt.Errorf("%w: import path is required", ErrInvalidInput)
	}

	var (
		items []Pet
		err   error
	)
	if t, ok := s.repo.(FileTransfer); ok {
		items, err = t.Import(ctx, path)
	} else {
		items, err = ImportFile(path)
	}
	if err != nil {
		return ImportResult{}, err
	}
	return s.Apply(ctx, items, mode)
}

// ImportFrom es Import leyendo desde r.
func (s *Service) ImportFrom(ctx context.Context, r io.Reader, mode ImportMode) (ImportResult, error) {
	items, err := ReadCSVStrict(r)
	if err != nil {
		return ImportResult{}, err
	}
	return s.Apply(ctx, items, mode)
}

// Apply escribe un lote ya parseado según mode.
func (s *Service) Apply(ctx context.Context, items []Pet, mode ImportMode) (ImportResult, error) {
	res := ImportResult{Mode: mode, Records: items}

	switch mode {
	case ImportPreview, "":
		res.Mode = ImportPreview
		return res, nil

	case ImportReplace:
		seen := make(map[string]struct{}, len(items))
		for _, p := range items {
			if _, dup := seen[p.ID]; dup {
				return ImportResult{}, fmt.Errorf("%w: %q appears more than once in import", ErrDuplicateKey, p.ID)
			}
			seen[p.ID] = struct{}{}
		}
		if err := s.repo.ReplaceAll(ctx, items); err != nil {
			return ImportResult{}, err
		}
		res.Added = len(items)
		return res, nil

	case ImportMerge:
		if m, ok := s.repo.(Merger); ok {
			added, skipped, err := m.Merge(ctx, items)
			if err != nil {
				return ImportResult{}, err
			}
			res.Added, res.Skipped = added, skipped
			return res, nil
		}

		// sin Merger: leer y reescribir son dos llamadas separadas al repo
		current, err := s.repo.FetchAll(ctx)
		if err != nil {
			return ImportResult{}, err
		}
		merged, skipped := MergeInto(current, items)
		res.Added, res.Skipped = len(merged)-len(current), skipped

		if res.Added == 0 {
			return res, nil
		}
		if err := s.repo.ReplaceAll(ctx, merged); err != nil {
			return ImportResult{}, err
		}
		return res, nil

	default:
		return ImportResult{}, fmt.Errorf("%w: unknown import mode %q", ErrInvalidInput, mode)
	}
}

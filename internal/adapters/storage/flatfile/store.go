// Package flatfile es el Record Store: la colección de mascotas vive en un
// único archivo CSV de 7 columnas sin header.
//
// No hay estado en memoria. Cada lectura relee el archivo completo; Add
// agrega una fila al final y Update/Remove/ReplaceAll reescriben el archivo
// entero (escritura atómica vía csvfile.WriteFile).
package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/csvfile"
	"pet-adoption/internal/platform/logger"
)

type Store struct {
	// mu serializa operaciones dentro del proceso (el server HTTP es concurrente).
	// Entre procesos no hay lock: gana la última escritura.
	mu   sync.Mutex
	path string
	log  logger.Logger
}

var (
	_ pets.Repository   = (*Store)(nil)
	_ pets.Merger       = (*Store)(nil)
	_ pets.FileTransfer = (*Store)(nil)
)

// New crea un Store sobre path. El archivo puede no existir todavía.
func New(path string, log logger.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("flatfile: storage path required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path: path,
		log:  log.With(map[string]any{"store": path}),
	}, nil
}

func (s *Store) Path() string { return s.path }

// FetchAll devuelve los registros válidos en orden de archivo.
// Un archivo inexistente es una colección vacía.
func (s *Store) FetchAll(ctx context.Context) ([]pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchAll(ctx)
}

func (s *Store) fetchAll(ctx context.Context) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := csvfile.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []pets.Pet{}, nil
		}
		return nil, pets.ReadError(err)
	}

	items, dropped := pets.FromRowsLenient(rows)
	if dropped > 0 {
		s.log.Warn("malformed rows ignored", map[string]any{
			"dropped": dropped,
			"valid":   len(items),
		})
	}
	return items, nil
}

func (s *Store) Add(ctx context.Context, p pets.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}
	for _, cur := range items {
		if cur.ID == p.ID {
			return fmt.Errorf("%w: %q", pets.ErrDuplicateKey, p.ID)
		}
	}

	if err := csvfile.AppendFile(s.path, p.Fields()); err != nil {
		return pets.WriteError(err)
	}

	s.log.Info("pet added", map[string]any{"pet_id": p.ID})
	return nil
}

// Update aplica el patch a cada registro con ese id, en su misma posición.
// Devuelve la primera coincidencia ya modificada.
func (s *Store) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.fetchAll(ctx)
	if err != nil {
		return pets.Pet{}, err
	}

	first, matched := -1, 0
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i] = patch.Apply(items[i])
		if first < 0 {
			first = i
		}
		matched++
	}
	if first < 0 {
		return pets.Pet{}, fmt.Errorf("%w: %q", pets.ErrNotFound, id)
	}

	if err := s.rewrite(items); err != nil {
		return pets.Pet{}, err
	}

	s.log.Info("pet updated", map[string]any{"pet_id": id, "updated": matched})
	return items[first], nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]pets.Pet, 0, len(items))
	for _, p := range items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%w: %q", pets.ErrNotFound, id)
	}

	if err := s.rewrite(kept); err != nil {
		return err
	}

	s.log.Info("pet removed", map[string]any{"pet_id": id, "removed": len(items) - len(kept)})
	return nil
}

// ReplaceAll reescribe el archivo con exactamente items.
func (s *Store) ReplaceAll(ctx context.Context, items []pets.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.rewrite(items); err != nil {
		return err
	}

	s.log.Info("collection replaced", map[string]any{"count": len(items)})
	return nil
}

// Merge agrega los registros con ids nuevos y reescribe una sola vez,
// todo bajo el mismo lock. No escribe si no hay nada nuevo.
func (s *Store) Merge(ctx context.Context, items []pets.Pet) (int, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.fetchAll(ctx)
	if err != nil {
		return 0, nil, err
	}

	merged, skipped := pets.MergeInto(current, items)
	added := len(merged) - len(current)
	if added == 0 {
		return 0, skipped, nil
	}
	if err := s.rewrite(merged); err != nil {
		return 0, nil, err
	}

	s.log.Info("collection merged", map[string]any{"added": added, "skipped": len(skipped)})
	return added, skipped, nil
}

// Export escribe la colección actual (lo que devuelve FetchAll) en dst.
func (s *Store) Export(ctx context.Context, dst string) error {
	items, err := s.FetchAll(ctx)
	if err != nil {
		return err
	}
	if err := pets.ExportFile(dst, items); err != nil {
		return err
	}

	s.log.Info("collection exported", map[string]any{"dst": dst, "count": len(items)})
	return nil
}

// Import lee src en modo estricto y devuelve los registros sin escribir nada.
// Qué hacer con ellos (reemplazar o mezclar) lo decide el caller.
func (s *Store) Import(ctx context.Context, src string) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := pets.ImportFile(src)
	if err != nil {
		return nil, err
	}

	s.log.Debug("collection parsed for import", map[string]any{"src": src, "count": len(items)})
	return items, nil
}

func (s *Store) rewrite(items []pets.Pet) error {
	if err := csvfile.WriteFile(s.path, pets.ToRows(items)); err != nil {
		return pets.WriteError(err)
	}
	return nil
}

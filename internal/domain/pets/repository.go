package pets

import "context"

// Repository es el dueño de la colección persistida.
// Cada llamada relee el storage: no hay cache entre operaciones.
//
// Los ids se comparan por igualdad exacta de string. Si hay ids repetidos,
// Update modifica todas las coincidencias y Remove las borra todas.
type Repository interface {
	FetchAll(ctx context.Context) ([]Pet, error)
	Add(ctx context.Context, p Pet) error
	Update(ctx context.Context, id string, patch Patch) (Pet, error)
	Remove(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []Pet) error
}

// Merger lo implementan los repos que pueden hacer el merge de un import
// como una sola operación (sin que otra escritura se cuele en el medio).
type Merger interface {
	Merge(ctx context.Context, items []Pet) (added int, skipped []string, err error)
}

// FileTransfer lo implementan los repos que exportan e importan archivos
// por su cuenta. Import solo parsea: no escribe en el repo.
type FileTransfer interface {
	Export(ctx context.Context, dst string) error
	Import(ctx context.Context, src string) ([]Pet, error)
}

// MergeInto agrega a current los items con ids nuevos, en orden de lote.
// Un id que ya está (en current o antes en el mismo lote) va a skipped.
func MergeInto(current, items []Pet) (merged []Pet, skipped []string) {
	seen := make(map[string]struct{}, len(current)+len(items))
	for _, p := range current {
		seen[p.ID] = struct{}{}
	}

	merged = make([]Pet, len(current), len(current)+len(items))
	copy(merged, current)
	for _, p := range items {
		if _, exists := seen[p.ID]; exists {
			skipped = append(skipped, p.ID)
			continue
		}
		seen[p.ID] = struct{}{}
		merged = append(merged, p)
	}
	return merged, skipped
}

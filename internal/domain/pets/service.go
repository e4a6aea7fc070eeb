package pets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	newID func() string // nil: el id es obligatorio en Add
}

type Option func(*Service)

// WithGeneratedIDs hace que Add genere un uuid cuando el id viene vacío.
func WithGeneratedIDs() Option {
	return func(s *Service) { s.newID = uuid.NewString }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AddInput struct {
	ID          string // opcional solo con WithGeneratedIDs
	Name        string
	Species     string
	Age         string
	Gender      string
	Weight      string
	Description string
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.FetchAll(ctx)
}

// Add valida que estén todos los campos (como el formulario original)
// y delega en el repo, que es quien detecta ids duplicados.
func (s *Service) Add(ctx context.Context, in AddInput) (Pet, error) {
	p := Pet{
		ID:          strings.TrimSpace(in.ID),
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Age:         strings.TrimSpace(in.Age),
		Gender:      strings.TrimSpace(in.Gender),
		Weight:      strings.TrimSpace(in.Weight),
		Description: strings.TrimSpace(in.Description),
	}

	if p.ID == "" && s.newID != nil {
		p.ID = s.newID()
	}
	for _, v := range p.Fields() {
		if v == "" {
			return Pet{}, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
		}
	}

	if err := s.repo.Add(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update aplica solo los campos no vacíos del patch.
// El id se pasa tal cual al repo: la comparación es exacta.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, fmt.Errorf("%w: pet id is required", ErrInvalidInput)
	}

	patch = Patch{
		Name:        strings.TrimSpace(patch.Name),
		Species:     strings.TrimSpace(patch.Species),
		Age:         strings.TrimSpace(patch.Age),
		Gender:      strings.TrimSpace(patch.Gender),
		Weight:      strings.TrimSpace(patch.Weight),
		Description: strings.TrimSpace(patch.Description),
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: pet id is required", ErrInvalidInput)
	}
	return s.repo.Remove(ctx, id)
}

// Export escribe la colección actual en path (mismo formato del storage).
// Si el repo implementa FileTransfer, exporta el repo.
func (s *Service) Export(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: export path is required", ErrInvalidInput)
	}
	if t, ok := s.repo.(FileTransfer); ok {
		return t.Export(ctx, path)
	}
	items, err := s.repo.FetchAll(ctx)
	if err != nil {
		return err
	}
	return ExportFile(path, items)
}

// ExportTo escribe la colección actual en w (descarga HTTP, stdout).
func (s *Service) ExportTo(ctx context.Context, w io.Writer) error {
	items, err := s.repo.FetchAll(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, items)
}

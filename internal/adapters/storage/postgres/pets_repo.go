package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-adoption/internal/domain/pets"
)

// PetsRepo implementa pets.Repository sobre la tabla adoptable_pets.
// ReplaceAll corre en una transacción; el resto son statements sueltos.
type PetsRepo struct {
	db *sql.DB
}

var (
	_ pets.Repository = (*PetsRepo)(nil)
	_ pets.Merger     = (*PetsRepo)(nil)
)

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) FetchAll(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, species, age, gender, weight, description
		FROM adoptable_pets
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, pets.ReadError(err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Species,
			&p.Age,
			&p.Gender,
			&p.Weight,
			&p.Description,
		); err != nil {
			return nil, pets.ReadError(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pets.ReadError(err)
	}
	return out, nil
}

func (r *PetsRepo) Add(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO adoptable_pets (id, name, species, age, gender, weight, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Age,
		p.Gender,
		p.Weight,
		p.Description,
	)
	if err != nil {
		return pets.WriteError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %q", pets.ErrDuplicateKey, p.ID)
	}
	return nil
}

// Update: string vacío en el patch = conservar la columna (NULLIF + COALESCE).
func (r *PetsRepo) Update(ctx context.Context, id string, patch pets.Patch) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE adoptable_pets
		SET
			name        = COALESCE(NULLIF($2, ''), name),
			species     = COALESCE(NULLIF($3, ''), species),
			age         = COALESCE(NULLIF($4, ''), age),
			gender      = COALESCE(NULLIF($5, ''), gender),
			weight      = COALESCE(NULLIF($6, ''), weight),
			description = COALESCE(NULLIF($7, ''), description)
		WHERE id = $1
		RETURNING id, name, species, age, gender, weight, description
	`,
		id,
		patch.Name,
		patch.Species,
		patch.Age,
		patch.Gender,
		patch.Weight,
		patch.Description,
	)

	var p pets.Pet
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Age,
		&p.Gender,
		&p.Weight,
		&p.Description,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, fmt.Errorf("%w: %q", pets.ErrNotFound, id)
		}
		return pets.Pet{}, pets.WriteError(err)
	}
	return p, nil
}

func (r *PetsRepo) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM adoptable_pets WHERE id = $1`, id)
	if err != nil {
		return pets.WriteError(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %q", pets.ErrNotFound, id)
	}
	return nil
}

func (r *PetsRepo) ReplaceAll(ctx context.Context, items []pets.Pet) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.WriteError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM adoptable_pets`); err != nil {
		return pets.WriteError(err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO adoptable_pets (id, name, species, age, gender, weight, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`)
	if err != nil {
		return pets.WriteError(err)
	}
	defer stmt.Close()

	for _, p := range items {
		if _, err = stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.Species,
			p.Age,
			p.Gender,
			p.Weight,
			p.Description,
		); err != nil {
			return pets.WriteError(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return pets.WriteError(err)
	}
	return nil
}

// Merge inserta en una transacción; ON CONFLICT deja intacto el existente.
func (r *PetsRepo) Merge(ctx context.Context, items []pets.Pet) (added int, skipped []string, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, pets.WriteError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO adoptable_pets (id, name, species, age, gender, weight, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return 0, nil, pets.WriteError(err)
	}
	defer stmt.Close()

	for _, p := range items {
		res, execErr := stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.Species,
			p.Age,
			p.Gender,
			p.Weight,
			p.Description,
		)
		if execErr != nil {
			err = pets.WriteError(execErr)
			return 0, nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			skipped = append(skipped, p.ID)
			continue
		}
		added++
	}

	if err = tx.Commit(); err != nil {
		return 0, nil, pets.WriteError(err)
	}
	return added, skipped, nil
}

package generations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const generationColumns = `id, storage_key, mime_type, size_bytes, checksum, color_scheme, font_size, font_family, enhanced, created_at`

// Create inserts a generation record.
func (r *PGRepo) Create(ctx context.Context, gen Generation) error {
	const query = `
INSERT INTO generations (` + generationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		gen.ID,
		gen.StorageKey,
		gen.MimeType,
		gen.SizeBytes,
		gen.Checksum,
		gen.ColorScheme,
		gen.FontSize,
		gen.FontFamily,
		gen.Enhanced,
		gen.CreatedAt,
	)
	return err
}

// GetByID returns a generation by id. Ids that are not UUIDs cannot match the
// id column and report ErrNotFound without a query.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Generation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Generation{}, ErrNotFound
	}
	const query = `
SELECT ` + generationColumns + `
FROM generations
WHERE id = $1
LIMIT 1`
	return scanGeneration(r.DB.QueryRowContext(ctx, query, id))
}

// Latest returns the newest generation.
func (r *PGRepo) Latest(ctx context.Context) (Generation, error) {
	const query = `
SELECT ` + generationColumns + `
FROM generations
ORDER BY created_at DESC
LIMIT 1`
	return scanGeneration(r.DB.QueryRowContext(ctx, query))
}

func scanGeneration(row *sql.Row) (Generation, error) {
	var gen Generation
	err := row.Scan(
		&gen.ID,
		&gen.StorageKey,
		&gen.MimeType,
		&gen.SizeBytes,
		&gen.Checksum,
		&gen.ColorScheme,
		&gen.FontSize,
		&gen.FontFamily,
		&gen.Enhanced,
		&gen.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Generation{}, ErrNotFound
		}
		return Generation{}, err
	}
	return gen, nil
}

var _ Repo = (*PGRepo)(nil)

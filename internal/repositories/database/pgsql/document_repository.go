package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	"github.com/visaops/evisa_backend/internal/models"
	"github.com/visaops/evisa_backend/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for the document registry.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, owner_id, type, file_name, content_type, size_bytes, storage_key, status, expiry_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.OwnerID,
		&m.Type,
		&m.FileName,
		&m.ContentType,
		&m.SizeBytes,
		&m.StorageKey,
		&m.Status,
		&m.ExpiryDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDocument persists a new registry record.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.OwnerID,
		m.Type,
		m.FileName,
		m.ContentType,
		m.SizeBytes,
		m.StorageKey,
		m.Status,
		m.ExpiryDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("document %s: %w", m.DocumentID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a registry record.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by id %s: %w", documentID, err)
	}

	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// ListDocumentsByOwner retrieves all registry records owned by a user,
// newest first.
func (r *PgxDocumentRepository) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE owner_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	modelDocs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Document, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents for owner %s: %w", ownerID, err)
	}

	return mapping.ToDomainDocumentSlice(modelDocs), nil
}

// UpdateDocumentStatus sets the registry-level verification status.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string) error {
	query := `
		UPDATE documents SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, string(status), time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument removes a registry record.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

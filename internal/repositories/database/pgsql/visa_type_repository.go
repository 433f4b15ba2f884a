package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	"github.com/visaops/evisa_backend/internal/models"
	"github.com/visaops/evisa_backend/internal/utils/mapping"
)

type PgxVisaTypeRepository struct {
	BaseRepository
}

// newPgxVisaTypeRepository creates a new repository for visa type catalog data.
func newPgxVisaTypeRepository(pool *pgxpool.Pool) portsrepo.VisaTypeRepositoryWithTx {
	return &PgxVisaTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.VisaTypeRepositoryWithTx = (*PgxVisaTypeRepository)(nil)

const visaTypeColumns = `
	code, name, description, category, duration, eligibility, required_documents,
	processing, fees, is_active, is_public,
	stat_total, stat_approved, stat_rejected, stat_avg_processing_days, stat_last_updated,
	created_at, created_by, last_updated_at, last_updated_by`

func scanVisaType(row pgx.Row) (models.VisaType, error) {
	var m models.VisaType
	err := row.Scan(
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.Duration,
		&m.Eligibility,
		&m.RequiredDocuments,
		&m.Processing,
		&m.Fees,
		&m.IsActive,
		&m.IsPublic,
		&m.StatTotal,
		&m.StatApproved,
		&m.StatRejected,
		&m.StatAvgProcessingDays,
		&m.StatLastUpdated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveVisaType inserts a new catalog entry. Code and name collisions map to
// apperrors.ErrDuplicate.
func (r *PgxVisaTypeRepository) SaveVisaType(ctx context.Context, visaType domain.VisaType) error {
	m := mapping.ToModelVisaType(visaType)

	query := `
		INSERT INTO visa_types (` + visaTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Description,
		m.Category,
		m.Duration,
		m.Eligibility,
		m.RequiredDocuments,
		m.Processing,
		m.Fees,
		m.IsActive,
		m.IsPublic,
		m.StatTotal,
		m.StatApproved,
		m.StatRejected,
		m.StatAvgProcessingDays,
		m.StatLastUpdated,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if pgErr.ConstraintName == "visa_types_name_key" {
				return fmt.Errorf("visa type name %s: %w", m.Name, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("visa type %s: %w", m.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save visa type %s: %w", m.Code, err)
	}
	return nil
}

// FindVisaTypeByCode retrieves a catalog entry by its unique code.
func (r *PgxVisaTypeRepository) FindVisaTypeByCode(ctx context.Context, code string) (*domain.VisaType, error) {
	query := `SELECT ` + visaTypeColumns + ` FROM visa_types WHERE code = $1;`

	m, err := scanVisaType(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find visa type by code %s: %w", code, err)
	}

	domainVT := mapping.ToDomainVisaType(m)
	return &domainVT, nil
}

// ListVisaTypes retrieves catalog entries, optionally restricted to the
// active public subset applicants may see.
func (r *PgxVisaTypeRepository) ListVisaTypes(ctx context.Context, publicOnly bool) ([]domain.VisaType, error) {
	query := `SELECT ` + visaTypeColumns + ` FROM visa_types`
	if publicOnly {
		query += ` WHERE is_active AND is_public`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query visa types: %w", err)
	}
	defer rows.Close()

	modelVTs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.VisaType, error) {
		return scanVisaType(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan visa types: %w", err)
	}

	return mapping.ToDomainVisaTypeSlice(modelVTs), nil
}

// UpdateVisaType replaces the mutable fields of an existing entry. The code
// is the immutable key.
func (r *PgxVisaTypeRepository) UpdateVisaType(ctx context.Context, visaType domain.VisaType) error {
	m := mapping.ToModelVisaType(visaType)

	query := `
		UPDATE visa_types SET
			name = $2,
			description = $3,
			category = $4,
			duration = $5,
			eligibility = $6,
			required_documents = $7,
			processing = $8,
			fees = $9,
			is_active = $10,
			is_public = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Name,
		m.Description,
		m.Category,
		m.Duration,
		m.Eligibility,
		m.RequiredDocuments,
		m.Processing,
		m.Fees,
		m.IsActive,
		m.IsPublic,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("visa type %s: %w", m.Code, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update visa type %s: %w", m.Code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatistics writes the cached statistics snapshot without touching any
// other column, so a recompute never races an admin edit.
func (r *PgxVisaTypeRepository) UpdateStatistics(ctx context.Context, code string, stats domain.VisaTypeStatistics) error {
	query := `
		UPDATE visa_types SET
			stat_total = $2,
			stat_approved = $3,
			stat_rejected = $4,
			stat_avg_processing_days = $5,
			stat_last_updated = $6
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		code,
		stats.TotalApplications,
		stats.Approved,
		stats.Rejected,
		stats.AvgProcessingDays,
		stats.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update statistics for visa type %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visaops/evisa_backend/internal/apperrors"
	"github.com/visaops/evisa_backend/internal/core/domain"
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	"github.com/visaops/evisa_backend/internal/models"
	"github.com/visaops/evisa_backend/internal/utils/mapping"
)

type PgxApplicationRepository struct {
	BaseRepository
}

// newPgxApplicationRepository creates a new repository for application data.
func newPgxApplicationRepository(pool *pgxpool.Pool) portsrepo.ApplicationRepositoryWithTx {
	return &PgxApplicationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ApplicationRepositoryWithTx = (*PgxApplicationRepository)(nil)

const applicationColumns = `
	application_id, application_number, applicant_id,
	visa_type_code, processing_tier, fee_amount, fee_currency, processing_days, mandatory_documents,
	personal_info, travel_info, financial_info, emergency_contact, documents,
	status, rejection_reason, submitted_at, processed_at, approved_at, rejected_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanApplication(row pgx.Row) (models.Application, error) {
	var m models.Application
	err := row.Scan(
		&m.ApplicationID,
		&m.ApplicationNumber,
		&m.ApplicantID,
		&m.VisaTypeCode,
		&m.ProcessingTier,
		&m.FeeAmount,
		&m.FeeCurrency,
		&m.ProcessingDays,
		&m.MandatoryDocuments,
		&m.PersonalInfo,
		&m.TravelInfo,
		&m.FinancialInfo,
		&m.EmergencyContact,
		&m.Documents,
		&m.Status,
		&m.RejectionReason,
		&m.SubmittedAt,
		&m.ProcessedAt,
		&m.ApprovedAt,
		&m.RejectedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// NextApplicationSequence atomically increments and returns the per-year
// counter. The upsert makes the first application of a year create the row;
// concurrent callers serialise on the row lock and each sees a distinct value.
func (r *PgxApplicationRepository) NextApplicationSequence(ctx context.Context, year int) (int64, error) {
	query := `
		INSERT INTO application_sequences (year, value)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET value = application_sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to advance application sequence for year %d: %w", year, err)
	}
	return value, nil
}

// CreateApplication inserts the application row and its seeded status history
// entries in one transaction.
func (r *PgxApplicationRepository) CreateApplication(ctx context.Context, app domain.Application) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertApplication(ctx, tx, app); err != nil {
		return err
	}
	for _, entry := range app.StatusHistory {
		if err := insertHistoryEntry(ctx, tx, app.ApplicationID, entry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func insertApplication(ctx context.Context, tx pgx.Tx, app domain.Application) error {
	m := mapping.ToModelApplication(app)

	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := tx.Exec(ctx, query,
		m.ApplicationID,
		m.ApplicationNumber,
		m.ApplicantID,
		m.VisaTypeCode,
		m.ProcessingTier,
		m.FeeAmount,
		m.FeeCurrency,
		m.ProcessingDays,
		m.MandatoryDocuments,
		m.PersonalInfo,
		m.TravelInfo,
		m.FinancialInfo,
		m.EmergencyContact,
		m.Documents,
		m.Status,
		m.RejectionReason,
		m.SubmittedAt,
		m.ProcessedAt,
		m.ApprovedAt,
		m.RejectedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("application %s: %w", m.ApplicationNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert application %s: %w", m.ApplicationID, err)
	}
	return nil
}

func insertHistoryEntry(ctx context.Context, tx pgx.Tx, applicationID string, entry domain.StatusHistoryEntry) error {
	query := `
		INSERT INTO application_status_history (entry_id, application_id, status, changed_by, changed_at, notes, notified)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		uuid.NewString(),
		applicationID,
		string(entry.Status),
		entry.ChangedBy,
		entry.ChangedAt,
		entry.Notes,
		entry.Notified,
	)
	if err != nil {
		return fmt.Errorf("failed to insert status history for application %s: %w", applicationID, err)
	}
	return nil
}

// FindApplicationByID retrieves an application with its status history and
// admin notes attached.
func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_id = $1;`
	return r.findOne(ctx, query, applicationID)
}

// FindApplicationByNumber retrieves an application by its human-readable number.
func (r *PgxApplicationRepository) FindApplicationByNumber(ctx context.Context, applicationNumber string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE application_number = $1;`
	return r.findOne(ctx, query, applicationNumber)
}

func (r *PgxApplicationRepository) findOne(ctx context.Context, query string, arg any) (*domain.Application, error) {
	m, err := scanApplication(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	app := mapping.ToDomainApplication(m)
	if app.StatusHistory, err = r.loadHistory(ctx, app.ApplicationID); err != nil {
		return nil, err
	}
	if app.AdminNotes, err = r.loadNotes(ctx, app.ApplicationID); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *PgxApplicationRepository) loadHistory(ctx context.Context, applicationID string) ([]domain.StatusHistoryEntry, error) {
	query := `
		SELECT entry_id, application_id, status, changed_by, changed_at, notes, notified
		FROM application_status_history
		WHERE application_id = $1
		ORDER BY changed_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history for application %s: %w", applicationID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatusHistoryEntry, error) {
		var e models.StatusHistoryEntry
		err := row.Scan(&e.EntryID, &e.ApplicationID, &e.Status, &e.ChangedBy, &e.ChangedAt, &e.Notes, &e.Notified)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan status history for application %s: %w", applicationID, err)
	}

	return mapping.ToDomainStatusHistorySlice(modelEntries), nil
}

func (r *PgxApplicationRepository) loadNotes(ctx context.Context, applicationID string) ([]domain.AdminNote, error) {
	query := `
		SELECT note_id, application_id, note, added_by, added_at, internal
		FROM application_admin_notes
		WHERE application_id = $1
		ORDER BY added_at, note_id;
	`
	rows, err := r.Pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin notes for application %s: %w", applicationID, err)
	}
	defer rows.Close()

	modelNotes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AdminNote, error) {
		var n models.AdminNote
		err := row.Scan(&n.NoteID, &n.ApplicationID, &n.Note, &n.AddedBy, &n.AddedAt, &n.Internal)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin notes for application %s: %w", applicationID, err)
	}

	return mapping.ToDomainAdminNoteSlice(modelNotes), nil
}

// ListApplicationsByApplicant retrieves all applications owned by an
// applicant, newest first, without history or notes.
func (r *PgxApplicationRepository) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC;`
	return r.list(ctx, query, applicantID)
}

// ListApplicationsByStatus retrieves all applications in a given status,
// oldest first so reviewers work the queue in arrival order.
func (r *PgxApplicationRepository) ListApplicationsByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE status = $1 ORDER BY created_at;`
	return r.list(ctx, query, string(status))
}

// ListApplicationsByVisaType retrieves all applications referencing a visa
// type code, without history or notes.
func (r *PgxApplicationRepository) ListApplicationsByVisaType(ctx context.Context, visaTypeCode string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE visa_type_code = $1 ORDER BY created_at;`
	return r.list(ctx, query, visaTypeCode)
}

func (r *PgxApplicationRepository) list(ctx context.Context, query string, arg any) ([]domain.Application, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	modelApps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Application, error) {
		return scanApplication(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}

	apps := make([]domain.Application, len(modelApps))
	for i, m := range modelApps {
		apps[i] = mapping.ToDomainApplication(m)
	}
	return apps, nil
}

// CountApplicationsByVisaType counts applications referencing a visa type code.
func (r *PgxApplicationRepository) CountApplicationsByVisaType(ctx context.Context, visaTypeCode string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE visa_type_code = $1;`, visaTypeCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications for visa type %s: %w", visaTypeCode, err)
	}
	return count, nil
}

// UpdateApplication replaces the applicant-editable fields. Status, history,
// and the lifecycle timestamps are deliberately not written here; those
// belong to ApplyTransition.
func (r *PgxApplicationRepository) UpdateApplication(ctx context.Context, app domain.Application) error {
	m := mapping.ToModelApplication(app)

	query := `
		UPDATE applications SET
			personal_info = $2,
			travel_info = $3,
			financial_info = $4,
			emergency_contact = $5,
			documents = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE application_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ApplicationID,
		m.PersonalInfo,
		m.TravelInfo,
		m.FinancialInfo,
		m.EmergencyContact,
		m.Documents,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update application %s: %w", m.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyTransition writes the new status, the lifecycle timestamps, and the
// history entry in one transaction. The status update is guarded by the
// expected current status; losing the race leaves the row untouched and
// yields apperrors.ErrConcurrentModification.
func (r *PgxApplicationRepository) ApplyTransition(ctx context.Context, app domain.Application, expectedStatus domain.ApplicationStatus, entry domain.StatusHistoryEntry) error {
	m := mapping.ToModelApplication(app)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE applications SET
			status = $3,
			rejection_reason = $4,
			submitted_at = $5,
			processed_at = $6,
			approved_at = $7,
			rejected_at = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE application_id = $1 AND status = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.ApplicationID,
		string(expectedStatus),
		m.Status,
		m.RejectionReason,
		m.SubmittedAt,
		m.ProcessedAt,
		m.ApprovedAt,
		m.RejectedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to transition application %s: %w", m.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or someone changed the status first.
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM applications WHERE application_id = $1;`, m.ApplicationID).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to re-read application %s: %w", m.ApplicationID, err)
		}
		return fmt.Errorf("application %s is %s, expected %s: %w", m.ApplicationID, status, expectedStatus, apperrors.ErrConcurrentModification)
	}

	if err := insertHistoryEntry(ctx, tx, app.ApplicationID, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// AddAdminNote appends one staff annotation.
func (r *PgxApplicationRepository) AddAdminNote(ctx context.Context, applicationID string, note domain.AdminNote) error {
	query := `
		INSERT INTO application_admin_notes (note_id, application_id, note, added_by, added_at, internal)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		uuid.NewString(),
		applicationID,
		note.Note,
		note.AddedBy,
		note.AddedAt,
		note.Internal,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to add admin note for application %s: %w", applicationID, err)
	}
	return nil
}

// DeleteApplication removes an application row; history and notes go with it
// via ON DELETE CASCADE.
func (r *PgxApplicationRepository) DeleteApplication(ctx context.Context, applicationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM applications WHERE application_id = $1;`, applicationID)
	if err != nil {
		return fmt.Errorf("failed to delete application %s: %w", applicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		VisaTypeRepo:    newPgxVisaTypeRepository(dbPool),
		ApplicationRepo: newPgxApplicationRepository(dbPool),
		DocumentRepo:    newPgxDocumentRepository(dbPool),
	}
}

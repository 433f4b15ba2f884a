package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	VisaTypeRepo    VisaTypeRepositoryWithTx
	ApplicationRepo ApplicationRepositoryWithTx
	DocumentRepo    DocumentRepositoryWithTx
}

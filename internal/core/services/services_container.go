package services

import (
	portsrepo "github.com/visaops/evisa_backend/internal/core/ports/repositories"
	portssvc "github.com/visaops/evisa_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.Notifier, store portssvc.DocumentStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Catalog service first since application creation depends on it for
	// eligibility checks and fee resolution.
	container.VisaType = NewVisaTypeService(repos.VisaTypeRepo, repos.ApplicationRepo)

	container.Application = NewApplicationService(repos.ApplicationRepo, repos.DocumentRepo, container.VisaType)
	container.Lifecycle = NewLifecycleService(repos.ApplicationRepo, notifier)
	container.Document = NewDocumentService(repos.DocumentRepo, store)
	container.Statistics = NewStatisticsService(repos.VisaTypeRepo, repos.ApplicationRepo)

	return container
}

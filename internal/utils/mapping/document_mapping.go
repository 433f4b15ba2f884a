package mapping

import (
	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/models"
)

// ToModelDocument converts a domain Document to its persistence model.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		OwnerID:     d.OwnerID,
		Type:        string(d.Type),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		Status:      string(d.Status),
		ExpiryDate:  d.ExpiryDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a persistence model Document to its domain form.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		OwnerID:     m.OwnerID,
		Type:        domain.DocumentType(m.Type),
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		StorageKey:  m.StorageKey,
		Status:      domain.DocumentStatus(m.Status),
		ExpiryDate:  m.ExpiryDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model documents.
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	out := make([]domain.Document, len(ms))
	for i, m := range ms {
		out[i] = ToDomainDocument(m)
	}
	return out
}

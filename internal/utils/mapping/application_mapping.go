package mapping

import (
	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/models"
)

// ToModelApplication converts a domain Application to its persistence model.
// Status history and admin notes are persisted in their own tables and are
// not part of the application row.
func ToModelApplication(d domain.Application) models.Application {
	docs := make([]models.ApplicationDocument, len(d.Documents))
	for i, doc := range d.Documents {
		docs[i] = models.ApplicationDocument{
			DocumentID: doc.DocumentID,
			Type:       string(doc.Type),
			FileName:   doc.FileName,
			Verified:   doc.Verified,
			VerifiedBy: doc.VerifiedBy,
			VerifiedAt: doc.VerifiedAt,
			Notes:      doc.Notes,
			AttachedAt: doc.AttachedAt,
		}
	}

	mandatory := make([]string, len(d.MandatoryDocumentTypes))
	for i, t := range d.MandatoryDocumentTypes {
		mandatory[i] = string(t)
	}

	return models.Application{
		ApplicationID:      d.ApplicationID,
		ApplicationNumber:  d.ApplicationNumber,
		ApplicantID:        d.ApplicantID,
		VisaTypeCode:       d.VisaTypeCode,
		ProcessingTier:     string(d.ProcessingTier),
		FeeAmount:          d.Fee.Amount,
		FeeCurrency:        d.Fee.Currency,
		ProcessingDays:     d.ProcessingDays,
		MandatoryDocuments: mandatory,
		PersonalInfo: models.PersonalInfo{
			FirstName:      d.PersonalInfo.FirstName,
			LastName:       d.PersonalInfo.LastName,
			DateOfBirth:    d.PersonalInfo.DateOfBirth,
			Nationality:    d.PersonalInfo.Nationality,
			PassportNumber: d.PersonalInfo.PassportNumber,
			PassportExpiry: d.PersonalInfo.PassportExpiry,
			Email:          d.PersonalInfo.Email,
			Phone:          d.PersonalInfo.Phone,
			Address:        d.PersonalInfo.Address,
		},
		TravelInfo: models.TravelInfo{
			Purpose:        d.TravelInfo.Purpose,
			ArrivalDate:    d.TravelInfo.ArrivalDate,
			DepartureDate:  d.TravelInfo.DepartureDate,
			DurationOfStay: d.TravelInfo.DurationOfStay,
			EntryPort:      d.TravelInfo.EntryPort,
			Accommodation:  d.TravelInfo.Accommodation,
		},
		FinancialInfo: models.FinancialInfo{
			MonthlyIncome:  d.FinancialInfo.MonthlyIncome,
			FundsAvailable: d.FinancialInfo.FundsAvailable,
			Currency:       d.FinancialInfo.Currency,
			SponsorName:    d.FinancialInfo.SponsorName,
		},
		EmergencyContact: models.EmergencyContact{
			Name:         d.EmergencyContact.Name,
			Relationship: d.EmergencyContact.Relationship,
			Phone:        d.EmergencyContact.Phone,
		},
		Documents:       docs,
		Status:          string(d.Status),
		RejectionReason: d.RejectionReason,
		SubmittedAt:     d.SubmittedAt,
		ProcessedAt:     d.ProcessedAt,
		ApprovedAt:      d.ApprovedAt,
		RejectedAt:      d.RejectedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApplication converts a persistence model Application to its domain
// form. History and notes are attached separately by the repository.
func ToDomainApplication(m models.Application) domain.Application {
	docs := make([]domain.ApplicationDocument, len(m.Documents))
	for i, doc := range m.Documents {
		docs[i] = domain.ApplicationDocument{
			DocumentID: doc.DocumentID,
			Type:       domain.DocumentType(doc.Type),
			FileName:   doc.FileName,
			Verified:   doc.Verified,
			VerifiedBy: doc.VerifiedBy,
			VerifiedAt: doc.VerifiedAt,
			Notes:      doc.Notes,
			AttachedAt: doc.AttachedAt,
		}
	}

	mandatory := make([]domain.DocumentType, len(m.MandatoryDocuments))
	for i, t := range m.MandatoryDocuments {
		mandatory[i] = domain.DocumentType(t)
	}

	return domain.Application{
		ApplicationID:          m.ApplicationID,
		ApplicationNumber:      m.ApplicationNumber,
		ApplicantID:            m.ApplicantID,
		VisaTypeCode:           m.VisaTypeCode,
		ProcessingTier:         domain.ProcessingTier(m.ProcessingTier),
		Fee:                    domain.Money{Amount: m.FeeAmount, Currency: m.FeeCurrency},
		ProcessingDays:         m.ProcessingDays,
		MandatoryDocumentTypes: mandatory,
		PersonalInfo: domain.PersonalInfo{
			FirstName:      m.PersonalInfo.FirstName,
			LastName:       m.PersonalInfo.LastName,
			DateOfBirth:    m.PersonalInfo.DateOfBirth,
			Nationality:    m.PersonalInfo.Nationality,
			PassportNumber: m.PersonalInfo.PassportNumber,
			PassportExpiry: m.PersonalInfo.PassportExpiry,
			Email:          m.PersonalInfo.Email,
			Phone:          m.PersonalInfo.Phone,
			Address:        m.PersonalInfo.Address,
		},
		TravelInfo: domain.TravelInfo{
			Purpose:        m.TravelInfo.Purpose,
			ArrivalDate:    m.TravelInfo.ArrivalDate,
			DepartureDate:  m.TravelInfo.DepartureDate,
			DurationOfStay: m.TravelInfo.DurationOfStay,
			EntryPort:      m.TravelInfo.EntryPort,
			Accommodation:  m.TravelInfo.Accommodation,
		},
		FinancialInfo: domain.FinancialInfo{
			MonthlyIncome:  m.FinancialInfo.MonthlyIncome,
			FundsAvailable: m.FinancialInfo.FundsAvailable,
			Currency:       m.FinancialInfo.Currency,
			SponsorName:    m.FinancialInfo.SponsorName,
		},
		EmergencyContact: domain.EmergencyContact{
			Name:         m.EmergencyContact.Name,
			Relationship: m.EmergencyContact.Relationship,
			Phone:        m.EmergencyContact.Phone,
		},
		Documents:       docs,
		Status:          domain.ApplicationStatus(m.Status),
		RejectionReason: m.RejectionReason,
		SubmittedAt:     m.SubmittedAt,
		ProcessedAt:     m.ProcessedAt,
		ApprovedAt:      m.ApprovedAt,
		RejectedAt:      m.RejectedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStatusHistoryEntry converts one history row to its domain form.
func ToDomainStatusHistoryEntry(m models.StatusHistoryEntry) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		Status:    domain.ApplicationStatus(m.Status),
		ChangedBy: m.ChangedBy,
		ChangedAt: m.ChangedAt,
		Notes:     m.Notes,
		Notified:  m.Notified,
	}
}

// ToDomainStatusHistorySlice converts history rows, preserving order.
func ToDomainStatusHistorySlice(ms []models.StatusHistoryEntry) []domain.StatusHistoryEntry {
	out := make([]domain.StatusHistoryEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainStatusHistoryEntry(m)
	}
	return out
}

// ToDomainAdminNote converts one admin note row to its domain form.
func ToDomainAdminNote(m models.AdminNote) domain.AdminNote {
	return domain.AdminNote{
		Note:     m.Note,
		AddedBy:  m.AddedBy,
		AddedAt:  m.AddedAt,
		Internal: m.Internal,
	}
}

// ToDomainAdminNoteSlice converts admin note rows, preserving order.
func ToDomainAdminNoteSlice(ms []models.AdminNote) []domain.AdminNote {
	out := make([]domain.AdminNote, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAdminNote(m)
	}
	return out
}

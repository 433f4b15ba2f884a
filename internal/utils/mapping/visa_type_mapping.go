package mapping

import (
	"github.com/visaops/evisa_backend/internal/core/domain"
	"github.com/visaops/evisa_backend/internal/models"
)

// ToModelVisaType converts a domain VisaType to its persistence model.
func ToModelVisaType(d domain.VisaType) models.VisaType {
	reqs := make([]models.DocumentRequirement, len(d.RequiredDocuments))
	for i, r := range d.RequiredDocuments {
		reqs[i] = models.DocumentRequirement{
			Type:      string(r.Type),
			Mandatory: r.Mandatory,
			Formats:   r.Formats,
			MaxSizeMB: r.MaxSizeMB,
		}
	}

	return models.VisaType{
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		Category:    string(d.Category),
		Duration: models.VisaDuration{
			MaxStayDays:   d.Duration.MaxStayDays,
			ValidityDays:  d.Duration.ValidityDays,
			MultipleEntry: d.Duration.MultipleEntry,
		},
		Eligibility: models.EligibilityRules{
			AllowedNationalities:  d.Eligibility.AllowedNationalities,
			ExcludedNationalities: d.Eligibility.ExcludedNationalities,
			MinAge:                d.Eligibility.MinAge,
			MaxAge:                d.Eligibility.MaxAge,
		},
		RequiredDocuments: reqs,
		Processing: models.ProcessingTimes{
			StandardDays: d.Processing.StandardDays,
			UrgentDays:   d.Processing.UrgentDays,
			ExpressDays:  d.Processing.ExpressDays,
		},
		Fees:                  toModelFeeSchedule(d.Fees),
		IsActive:              d.Settings.Active,
		IsPublic:              d.Settings.Public,
		StatTotal:             d.Statistics.TotalApplications,
		StatApproved:          d.Statistics.Approved,
		StatRejected:          d.Statistics.Rejected,
		StatAvgProcessingDays: d.Statistics.AvgProcessingDays,
		StatLastUpdated:       d.Statistics.LastUpdated,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVisaType converts a persistence model VisaType to its domain form.
func ToDomainVisaType(m models.VisaType) domain.VisaType {
	reqs := make([]domain.DocumentRequirement, len(m.RequiredDocuments))
	for i, r := range m.RequiredDocuments {
		reqs[i] = domain.DocumentRequirement{
			Type:      domain.DocumentType(r.Type),
			Mandatory: r.Mandatory,
			Formats:   r.Formats,
			MaxSizeMB: r.MaxSizeMB,
		}
	}

	return domain.VisaType{
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		Category:    domain.VisaCategory(m.Category),
		Duration: domain.VisaDuration{
			MaxStayDays:   m.Duration.MaxStayDays,
			ValidityDays:  m.Duration.ValidityDays,
			MultipleEntry: m.Duration.MultipleEntry,
		},
		Eligibility: domain.EligibilityRules{
			AllowedNationalities:  m.Eligibility.AllowedNationalities,
			ExcludedNationalities: m.Eligibility.ExcludedNationalities,
			MinAge:                m.Eligibility.MinAge,
			MaxAge:                m.Eligibility.MaxAge,
		},
		RequiredDocuments: reqs,
		Processing: domain.ProcessingTimes{
			StandardDays: m.Processing.StandardDays,
			UrgentDays:   m.Processing.UrgentDays,
			ExpressDays:  m.Processing.ExpressDays,
		},
		Fees: toDomainFeeSchedule(m.Fees),
		Settings: domain.VisaTypeSettings{
			Active: m.IsActive,
			Public: m.IsPublic,
		},
		Statistics: domain.VisaTypeStatistics{
			TotalApplications: m.StatTotal,
			Approved:          m.StatApproved,
			Rejected:          m.StatRejected,
			AvgProcessingDays: m.StatAvgProcessingDays,
			LastUpdated:       m.StatLastUpdated,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVisaTypeSlice converts a slice of model visa types.
func ToDomainVisaTypeSlice(ms []models.VisaType) []domain.VisaType {
	out := make([]domain.VisaType, len(ms))
	for i, m := range ms {
		out[i] = ToDomainVisaType(m)
	}
	return out
}

func toModelFeeSchedule(d domain.FeeSchedule) models.FeeSchedule {
	fees := models.FeeSchedule{
		Standard: models.Money{Amount: d.Standard.Amount, Currency: d.Standard.Currency},
	}
	if d.Urgent != nil {
		fees.Urgent = &models.Money{Amount: d.Urgent.Amount, Currency: d.Urgent.Currency}
	}
	if d.Express != nil {
		fees.Express = &models.Money{Amount: d.Express.Amount, Currency: d.Express.Currency}
	}
	return fees
}

func toDomainFeeSchedule(m models.FeeSchedule) domain.FeeSchedule {
	fees := domain.FeeSchedule{
		Standard: domain.Money{Amount: m.Standard.Amount, Currency: m.Standard.Currency},
	}
	if m.Urgent != nil {
		fees.Urgent = &domain.Money{Amount: m.Urgent.Amount, Currency: m.Urgent.Currency}
	}
	if m.Express != nil {
		fees.Express = &domain.Money{Amount: m.Express.Amount, Currency: m.Express.Currency}
	}
	return fees
}

package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/visaops/evisa_backend/internal/core/domain"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.ApplicationStatus
		to   domain.ApplicationStatus
		want bool
	}{
		{"draft to submitted", domain.StatusDraft, domain.StatusSubmitted, true},
		{"submitted to under review", domain.StatusSubmitted, domain.StatusUnderReview, true},
		{"under review to additional docs", domain.StatusUnderReview, domain.StatusAdditionalDocs, true},
		{"additional docs back to under review", domain.StatusAdditionalDocs, domain.StatusUnderReview, true},
		{"under review to interview", domain.StatusUnderReview, domain.StatusInterviewScheduled, true},
		{"under review straight to approved", domain.StatusUnderReview, domain.StatusApproved, true},
		{"interview to rejected", domain.StatusInterviewScheduled, domain.StatusRejected, true},
		{"draft skips to under review", domain.StatusDraft, domain.StatusUnderReview, false},
		{"draft skips to approved", domain.StatusDraft, domain.StatusApproved, false},
		{"submitted back to draft", domain.StatusSubmitted, domain.StatusDraft, false},
		{"cancel from draft", domain.StatusDraft, domain.StatusCancelled, true},
		{"cancel from interview", domain.StatusInterviewScheduled, domain.StatusCancelled, true},
		{"cancel from approved", domain.StatusApproved, domain.StatusCancelled, false},
		{"approved has no outgoing", domain.StatusApproved, domain.StatusUnderReview, false},
		{"rejected has no outgoing", domain.StatusRejected, domain.StatusUnderReview, false},
		{"cancelled has no outgoing", domain.StatusCancelled, domain.StatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransitionTo(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, domain.IsTerminalStatus(domain.StatusApproved))
	assert.True(t, domain.IsTerminalStatus(domain.StatusRejected))
	assert.True(t, domain.IsTerminalStatus(domain.StatusCancelled))
	assert.False(t, domain.IsTerminalStatus(domain.StatusDraft))
	assert.False(t, domain.IsTerminalStatus(domain.StatusUnderReview))
}

func TestApplication_RecomputeDurationOfStay(t *testing.T) {
	arrival := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		departure time.Time
		want      int
	}{
		{"exact ten days", arrival.AddDate(0, 0, 10), 10},
		{"partial day rounds up", arrival.Add(10*24*time.Hour + 6*time.Hour), 11},
		{"same day", arrival, 0},
		{"departure before arrival", arrival.AddDate(0, 0, -1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := domain.Application{
				TravelInfo: domain.TravelInfo{
					ArrivalDate:    arrival,
					DepartureDate:  tt.departure,
					DurationOfStay: 999, // stale value must be overwritten
				},
			}
			app.RecomputeDurationOfStay()
			assert.Equal(t, tt.want, app.TravelInfo.DurationOfStay)
		})
	}
}

func TestApplication_DocumentCompletionPercent(t *testing.T) {
	app := domain.Application{
		MandatoryDocumentTypes: []domain.DocumentType{
			domain.DocPassportCopy, domain.DocPhoto, domain.DocBankStatement,
		},
	}

	assert.Equal(t, 0, app.DocumentCompletionPercent())

	app.Documents = append(app.Documents, domain.ApplicationDocument{DocumentID: "d1", Type: domain.DocPassportCopy})
	assert.Equal(t, 33, app.DocumentCompletionPercent())

	app.Documents = append(app.Documents, domain.ApplicationDocument{DocumentID: "d2", Type: domain.DocPhoto})
	assert.Equal(t, 66, app.DocumentCompletionPercent())

	// a second document of an already-present type changes nothing
	app.Documents = append(app.Documents, domain.ApplicationDocument{DocumentID: "d3", Type: domain.DocPhoto})
	assert.Equal(t, 66, app.DocumentCompletionPercent())

	app.Documents = append(app.Documents, domain.ApplicationDocument{DocumentID: "d4", Type: domain.DocBankStatement})
	assert.Equal(t, 100, app.DocumentCompletionPercent())
}

func TestApplication_DocumentCompletionPercent_NoMandatory(t *testing.T) {
	app := domain.Application{}
	assert.Equal(t, 100, app.DocumentCompletionPercent())
}

func TestApplication_ExpectedCompletionDate(t *testing.T) {
	app := domain.Application{ProcessingDays: 15}
	assert.Nil(t, app.ExpectedCompletionDate())

	submitted := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	app.SubmittedAt = &submitted

	got := app.ExpectedCompletionDate()
	assert.NotNil(t, got)
	assert.Equal(t, submitted.AddDate(0, 0, 15), *got)
}

func TestApplication_DaysSinceSubmission(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	app := domain.Application{}
	assert.Equal(t, 0, app.DaysSinceSubmission(now))

	submitted := now.AddDate(0, 0, -7)
	app.SubmittedAt = &submitted
	assert.Equal(t, 7, app.DaysSinceSubmission(now))
}

func TestApplication_IsEditable(t *testing.T) {
	app := domain.Application{Status: domain.StatusDraft}
	assert.True(t, app.IsEditable())

	app.Status = domain.StatusAdditionalDocs
	assert.True(t, app.IsEditable())

	for _, s := range []domain.ApplicationStatus{
		domain.StatusSubmitted, domain.StatusUnderReview, domain.StatusInterviewScheduled,
		domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled,
	} {
		app.Status = s
		assert.False(t, app.IsEditable(), "status %s must not be editable", s)
	}
}

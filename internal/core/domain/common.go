package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // Actor ID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // Actor ID reference
}

// ActorRole distinguishes the two roles the engine recognises. Identity is
// resolved by the authentication collaborator; the engine trusts the
// descriptor as given.
type ActorRole string

const (
	RoleApplicant ActorRole = "APPLICANT"
	RoleAdmin     ActorRole = "ADMIN"
)

// Actor is the opaque descriptor of whoever is performing an operation.
type Actor struct {
	ActorID string    `json:"actorID"`
	Role    ActorRole `json:"role"`
}

// IsAdmin reports whether the actor carries staff privileges.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

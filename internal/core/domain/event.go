package domain

import "time"

// LifecycleEvent is the notification-worthy fact emitted on every successful
// status transition. Delivery belongs to the notification collaborator; a
// failure to deliver never rolls back the transition that produced the event.
type LifecycleEvent struct {
	ApplicationID     string            `json:"applicationID"`
	ApplicationNumber string            `json:"applicationNumber"`
	ApplicantID       string            `json:"applicantID"`
	FromStatus        ApplicationStatus `json:"fromStatus"`
	ToStatus          ApplicationStatus `json:"toStatus"`
	Note              string            `json:"note,omitempty"`
	Notify            bool              `json:"notify"`
	OccurredAt        time.Time         `json:"occurredAt"`
}

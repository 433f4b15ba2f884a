package models

import "time"

// Document is the persistence model for one document registry row. The file
// bytes live with the external storage collaborator under StorageKey.
type Document struct {
	DocumentID  string     `json:"documentID"`
	OwnerID     string     `json:"ownerID"`
	Type        string     `json:"type"`
	FileName    string     `json:"fileName"`
	ContentType string     `json:"contentType"`
	SizeBytes   int64      `json:"sizeBytes"`
	StorageKey  string     `json:"storageKey"`
	Status      string     `json:"status"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	AuditFields
}

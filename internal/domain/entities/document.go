package entities

import "time"

// DocumentStatus represents the lifecycle of a generated manifiesto.

type DocumentStatus string

const (
	DocumentStatusGenerating DocumentStatus = "generating"
	DocumentStatusCompleted  DocumentStatus = "completed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// DocumentTypeManifiesto is the only document type produced today.
const DocumentTypeManifiesto = "manifiesto"

// Document is a generated transport document.
//
// Storage model (Postgres, table documents):
//   - PK: id
//   - index on session_id
//
// Entities keeps the nine normalized values used to render the file.
type Document struct {
	ID           string               `json:"id"`
	SessionID    string               `json:"session_id"`
	Type         string               `json:"type"`
	FileName     string               `json:"file_name"`
	ObjectKey    string               `json:"object_key,omitempty"`
	Status       DocumentStatus       `json:"status"`
	Entities     map[FieldName]string `json:"entities"`
	Content      string               `json:"content,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

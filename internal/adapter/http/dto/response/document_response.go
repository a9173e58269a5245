package response

import (
	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase"
	"time"
)

type DocumentResponse struct {
	DocumentID   string            `json:"document_id"`
	SessionID    string            `json:"session_id"`
	Type         string            `json:"type"`
	FileName     string            `json:"file_name"`
	Status       string            `json:"status"`
	Entities     map[string]string `json:"entities"`
	ErrorMessage string            `json:"error_message,omitempty"`
	DownloadURL  string            `json:"download_url,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func FromDocument(d entities.Document) DocumentResponse {
	values := make(map[string]string, len(d.Entities))
	for k, v := range d.Entities {
		values[string(k)] = v
	}
	return DocumentResponse{
		DocumentID:   d.ID,
		SessionID:    d.SessionID,
		Type:         d.Type,
		FileName:     d.FileName,
		Status:       string(d.Status),
		Entities:     values,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDocumentView(v usecase.DocumentView) DocumentResponse {
	out := FromDocument(v.Document)
	out.DownloadURL = v.DownloadURL
	return out
}

func FromDocuments(list []entities.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, FromDocument(d))
	}
	return out
}

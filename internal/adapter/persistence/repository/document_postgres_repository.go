package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentPostgresRepository wraps the SQL used by the API and the worker for
// generated documents.
type DocumentPostgresRepository struct {
	pool *pgxpool.Pool
}

var _ interfaces.IDocumentRepository = (*DocumentPostgresRepository)(nil)

func NewDocumentPostgresRepository(pool *pgxpool.Pool) *DocumentPostgresRepository {
	return &DocumentPostgresRepository{pool: pool}
}

// Create inserts the document in generating state.
func (r *DocumentPostgresRepository) Create(ctx context.Context, d entities.Document) (entities.Document, error) {
	now := time.Now().UTC()
	d.Status = entities.DocumentStatusGenerating
	d.CreatedAt = now
	d.UpdatedAt = now
	if d.Type == "" {
		d.Type = entities.DocumentTypeManifiesto
	}
	raw, err := json.Marshal(d.Entities)
	if err != nil {
		return entities.Document{}, fmt.Errorf("marshal entities: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO documents (id, session_id, type, file_name, status, entities, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, d.ID, d.SessionID, d.Type, d.FileName, d.Status, raw, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return entities.Document{}, fmt.Errorf("insert document: %w", err)
	}
	return d, nil
}

const documentColumns = `id, session_id, type, file_name, object_key, status, entities, COALESCE(content,''), error_message, created_at, updated_at`

// GetByID returns a zero Document when the id is unknown.
func (r *DocumentPostgresRepository) GetByID(ctx context.Context, id string) (entities.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id=$1`, id)
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.Document{}, nil
		}
		return entities.Document{}, fmt.Errorf("select document: %w", err)
	}
	return d, nil
}

func (r *DocumentPostgresRepository) ListBySessionID(ctx context.Context, sessionID string) ([]entities.Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+documentColumns+` FROM documents WHERE session_id=$1 ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []entities.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// MarkCompleted stores the artifact reference and its extracted text.
func (r *DocumentPostgresRepository) MarkCompleted(ctx context.Context, id, objectKey, content string) error {
	return r.updateStatus(ctx, id, entities.DocumentStatusCompleted, &objectKey, &content, nil)
}

// MarkFailed records the last failure message.
func (r *DocumentPostgresRepository) MarkFailed(ctx context.Context, id, msg string) error {
	return r.updateStatus(ctx, id, entities.DocumentStatusFailed, nil, nil, &msg)
}

func (r *DocumentPostgresRepository) updateStatus(ctx context.Context, id string, status entities.DocumentStatus, objectKey, content, errorMsg *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE documents
		SET status=$1,
			object_key = COALESCE($2, object_key),
			content = COALESCE($3, content),
			error_message = $4,
			updated_at=$5
		WHERE id=$6
	`, status, objectKey, content, errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

func scanDocument(row pgx.Row) (entities.Document, error) {
	var (
		d         entities.Document
		objectKey sql.NullString
		errorMsg  sql.NullString
		raw       []byte
	)
	if err := row.Scan(&d.ID, &d.SessionID, &d.Type, &d.FileName, &objectKey, &d.Status, &raw, &d.Content, &errorMsg, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return entities.Document{}, err
	}
	if objectKey.Valid {
		d.ObjectKey = objectKey.String
	}
	if errorMsg.Valid {
		d.ErrorMessage = errorMsg.String
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d.Entities); err != nil {
			return entities.Document{}, fmt.Errorf("decode entities: %w", err)
		}
	}
	return d, nil
}

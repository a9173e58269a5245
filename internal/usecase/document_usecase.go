package usecase

import (
	"context"
	"errors"
	"log"
	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"
	"strings"
	"time"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidDocumentID = errors.New("invalid document id")
)

const defaultDownloadTTL = 15 * time.Minute

// DocumentView is a generated document plus a short-lived download URL. The
// URL is empty until the document is completed.
type DocumentView struct {
	Document    entities.Document
	DownloadURL string
}

// IDocumentUseCase exposes generated manifiestos.

type IDocumentUseCase interface {
	GetByID(ctx context.Context, id string) (DocumentView, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]entities.Document, error)
}

type DocumentUseCase struct {
	repo    interfaces.IDocumentRepository
	storage interfaces.IDocumentStorage
	ttl     time.Duration
}

var _ IDocumentUseCase = (*DocumentUseCase)(nil)

func NewDocumentUseCase(repo interfaces.IDocumentRepository, storage interfaces.IDocumentStorage, ttl time.Duration) *DocumentUseCase {
	if ttl <= 0 {
		ttl = defaultDownloadTTL
	}
	return &DocumentUseCase{repo: repo, storage: storage, ttl: ttl}
}

func (u *DocumentUseCase) GetByID(ctx context.Context, id string) (DocumentView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DocumentView{}, ErrInvalidDocumentID
	}

	doc, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return DocumentView{}, err
	}
	if doc.ID == "" {
		return DocumentView{}, ErrDocumentNotFound
	}

	view := DocumentView{Document: doc}
	if doc.Status == entities.DocumentStatusCompleted && doc.ObjectKey != "" && u.storage != nil {
		url, err := u.storage.PresignURL(ctx, doc.ObjectKey, u.ttl)
		if err != nil {
			log.Printf("[document][usecase] presign failed document_id=%s err=%v", doc.ID, err)
			return DocumentView{}, err
		}
		view.DownloadURL = url
	}
	return view, nil
}

func (u *DocumentUseCase) ListBySessionID(ctx context.Context, sessionID string) ([]entities.Document, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	return u.repo.ListBySessionID(ctx, sessionID)
}

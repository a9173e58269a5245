package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"manifiesto_bot/internal/domain/entities"
	mock_interfaces "manifiesto_bot/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestDocumentUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewDocumentUseCase(nil, nil, 0)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidDocumentID) {
			t.Fatalf("expected ErrInvalidDocumentID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDocumentRepository(ctrl)
		uc := NewDocumentUseCase(repo, nil, 0)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Document{}, nil)
		if _, err := uc.GetByID(context.Background(), "doc-1"); !errors.Is(err, ErrDocumentNotFound) {
			t.Fatalf("expected ErrDocumentNotFound, got %v", err)
		}
	})

	t.Run("generating has no download url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDocumentRepository(ctrl)
		store := mock_interfaces.NewMockIDocumentStorage(ctrl)
		uc := NewDocumentUseCase(repo, store, 0)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Document{ID: "doc-1", ObjectKey: "k", Status: entities.DocumentStatusGenerating}, nil)
		view, err := uc.GetByID(context.Background(), "doc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.DownloadURL != "" {
			t.Fatalf("expected no url, got %q", view.DownloadURL)
		}
	})

	t.Run("completed is presigned with the configured ttl", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDocumentRepository(ctrl)
		store := mock_interfaces.NewMockIDocumentStorage(ctrl)
		uc := NewDocumentUseCase(repo, store, 5*time.Minute)

		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Document{ID: "doc-1", ObjectKey: "k", Status: entities.DocumentStatusCompleted}, nil)
		store.EXPECT().PresignURL(gomock.Any(), "k", 5*time.Minute).Return("https://minio/k?sig", nil)

		view, err := uc.GetByID(context.Background(), "doc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.DownloadURL != "https://minio/k?sig" || view.Document.ID != "doc-1" {
			t.Fatalf("unexpected view: %+v", view)
		}
	})

	t.Run("presign error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIDocumentRepository(ctrl)
		store := mock_interfaces.NewMockIDocumentStorage(ctrl)
		uc := NewDocumentUseCase(repo, store, 0)

		boom := errors.New("minio down")
		repo.EXPECT().GetByID(gomock.Any(), "doc-1").Return(entities.Document{ID: "doc-1", ObjectKey: "k", Status: entities.DocumentStatusCompleted}, nil)
		store.EXPECT().PresignURL(gomock.Any(), "k", defaultDownloadTTL).Return("", boom)

		if _, err := uc.GetByID(context.Background(), "doc-1"); !errors.Is(err, boom) {
			t.Fatalf("expected presign error, got %v", err)
		}
	})
}

func TestDocumentUseCase_ListBySessionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIDocumentRepository(ctrl)
	uc := NewDocumentUseCase(repo, nil, 0)

	if _, err := uc.ListBySessionID(context.Background(), ""); !errors.Is(err, ErrInvalidSessionID) {
		t.Fatalf("expected ErrInvalidSessionID, got %v", err)
	}

	repo.EXPECT().ListBySessionID(gomock.Any(), "chat-1").Return([]entities.Document{{ID: "a"}, {ID: "b"}}, nil)
	docs, err := uc.ListBySessionID(context.Background(), " chat-1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

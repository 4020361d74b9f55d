package newsapp

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/mpetrov/news-backend/internal/db"
)

// Repository is the persistence surface the managers need. Implemented
// by db.Repository; tests substitute a stub.
type Repository interface {
	News(ctx context.Context, page, pageSize int) ([]db.News, error)
	NewsCount(ctx context.Context) (int, error)
	NewsByID(ctx context.Context, newsID int) (*db.News, error)
	CreateNews(ctx context.Context, news *db.News) error
	UpdateNews(ctx context.Context, news *db.News) error
	DeleteNews(ctx context.Context, newsID int) error
	UserByID(ctx context.Context, userID int) (*db.User, error)
	SetUserProfile(ctx context.Context, userID int, image string) error
}

// ImageStore is the stored-image surface: validate against configured
// limits, move an upload under a generated name, remove by name.
type ImageStore interface {
	Validate(size int64, contentType string) error
	Save(file *multipart.FileHeader) (string, error)
	Remove(name string) error
}

type Manager struct {
	repo   Repository
	images ImageStore
	log    *slog.Logger
}

func NewManager(repo Repository, images ImageStore, log *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		images: images,
		log:    log,
	}
}

// News returns one page of news plus listing metadata. Out-of-range
// page and pageSize values clamp to defaults.
func (m *Manager) News(ctx context.Context, page, pageSize int) ([]News, Metadata, error) {
	page = NormalizePage(page)
	pageSize = NormalizePageSize(pageSize)

	dbNews, err := m.repo.News(ctx, page, pageSize)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("db get news: %w", err)
	}

	count, err := m.repo.NewsCount(ctx)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("db get news count: %w", err)
	}

	meta := Metadata{
		TotalPages:   TotalPages(count, pageSize),
		CurrentPage:  page,
		CurrentLimit: pageSize,
	}

	return NewNewsList(dbNews), meta, nil
}

// NewsByID returns the news row or nil when absent; absence is not an
// error here, the handler degrades it to a null-news success.
func (m *Manager) NewsByID(ctx context.Context, newsID int) (*News, error) {
	dbNews, err := m.repo.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if dbNews == nil {
		return nil, nil
	}

	news := NewNews(dbNews)
	return &news, nil
}

// CreateNews validates and stores the image, then persists the row.
// The move strictly precedes the insert: a failed move never leaves a
// row pointing at a missing file.
func (m *Manager) CreateNews(ctx context.Context, userID int, in NewsInput, image *multipart.FileHeader) (*News, error) {
	if image == nil {
		return nil, imageRequired("image")
	}

	if err := m.images.Validate(image.Size, image.Header.Get("Content-Type")); err != nil {
		return nil, &ImageError{Field: "image", Reason: err.Error()}
	}

	name, err := m.images.Save(image)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	row := &db.News{
		Title:   in.Title,
		Content: in.Content,
		Image:   &name,
		UserID:  userID,
	}

	if err := m.repo.CreateNews(ctx, row); err != nil {
		if rmErr := m.images.Remove(name); rmErr != nil {
			m.log.Error("failed to remove image after insert failure", "image", name, "error", rmErr)
		}
		return nil, fmt.Errorf("db create news: %w", err)
	}

	return m.NewsByID(ctx, row.ID)
}

// UpdateNews mutates a row after the ownership check. A replacement
// image is saved before the old one is removed, so the final state has
// exactly one valid current image.
func (m *Manager) UpdateNews(ctx context.Context, newsID, userID int, in NewsInput, image *multipart.FileHeader) (*News, error) {
	row, err := m.repo.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if row == nil {
		return nil, ErrNewsNotFound
	}

	if row.UserID != userID {
		return nil, ErrNotOwner
	}

	var oldImage *string
	if image != nil {
		if err := m.images.Validate(image.Size, image.Header.Get("Content-Type")); err != nil {
			return nil, &ImageError{Field: "image", Reason: err.Error()}
		}

		name, err := m.images.Save(image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}

		oldImage = row.Image
		row.Image = &name
	}

	row.Title = in.Title
	row.Content = in.Content

	if err := m.repo.UpdateNews(ctx, row); err != nil {
		if image != nil && row.Image != nil {
			if rmErr := m.images.Remove(*row.Image); rmErr != nil {
				m.log.Error("failed to remove image after update failure", "image", *row.Image, "error", rmErr)
			}
		}
		return nil, fmt.Errorf("db update news: %w", err)
	}

	if oldImage != nil {
		if err := m.images.Remove(*oldImage); err != nil {
			m.log.Error("failed to remove replaced image", "image", *oldImage, "error", err)
		}
	}

	return m.NewsByID(ctx, newsID)
}

// DeleteNews removes the stored image and the row after the ownership
// check.
func (m *Manager) DeleteNews(ctx context.Context, newsID, userID int) error {
	row, err := m.repo.NewsByID(ctx, newsID)
	if err != nil {
		return fmt.Errorf("db get news by id: %w", err)
	} else if row == nil {
		return ErrNewsNotFound
	}

	if row.UserID != userID {
		return ErrNotOwner
	}

	if row.Image != nil {
		if err := m.images.Remove(*row.Image); err != nil {
			return fmt.Errorf("remove image: %w", err)
		}
	}

	if err := m.repo.DeleteNews(ctx, newsID); err != nil {
		return fmt.Errorf("db delete news: %w", err)
	}

	return nil
}

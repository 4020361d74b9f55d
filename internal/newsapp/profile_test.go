package newsapp

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/news-backend/internal/db"
)

func TestManager_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the acting user", func(t *testing.T) {
		repo := &mockRepository{
			userByIDFunc: func(ctx context.Context, userID int) (*db.User, error) {
				assert.Equal(t, 3, userID)
				return &db.User{ID: 3, Name: "Alice", Email: "alice@example.com"}, nil
			},
		}
		m := NewManager(repo, &mockImageStore{}, noOpLogger())

		user, err := m.Profile(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		m := NewManager(&mockRepository{}, &mockImageStore{}, noOpLogger())

		_, err := m.Profile(ctx, 3)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestManager_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("foreign id is rejected before anything runs", func(t *testing.T) {
		persisted := false
		repo := &mockRepository{
			setUserProfileFunc: func(ctx context.Context, userID int, image string) error {
				persisted = true
				return nil
			},
		}
		m := NewManager(repo, &mockImageStore{}, noOpLogger())

		_, err := m.UpdateProfile(ctx, 7, 3, fileHeader("me.png", "image/png", 100))
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.False(t, persisted)
	})

	t.Run("missing file is a profile field error", func(t *testing.T) {
		m := NewManager(&mockRepository{}, &mockImageStore{}, noOpLogger())

		_, err := m.UpdateProfile(ctx, 3, 3, nil)
		var imgErr *ImageError
		require.ErrorAs(t, err, &imgErr)
		assert.Equal(t, "profile", imgErr.Field)
	})

	t.Run("success persists the generated name and drops the old file", func(t *testing.T) {
		var persistedName string
		repo := &mockRepository{
			userByIDFunc: func(ctx context.Context, userID int) (*db.User, error) {
				return &db.User{ID: 3, Name: "Alice", Profile: strPtr("old-profile.png")}, nil
			},
			setUserProfileFunc: func(ctx context.Context, userID int, image string) error {
				assert.Equal(t, 3, userID)
				persistedName = image
				return nil
			},
		}
		store := &mockImageStore{
			saveFunc: func(file *multipart.FileHeader) (string, error) {
				return "fresh.png", nil
			},
		}
		m := NewManager(repo, store, noOpLogger())

		user, err := m.UpdateProfile(ctx, 3, 3, fileHeader("me.png", "image/png", 100))
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "fresh.png", persistedName)
		assert.Equal(t, []string{"old-profile.png"}, store.removed)
	})
}

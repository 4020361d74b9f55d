package newsapp

import (
	"context"
	"fmt"
	"mime/multipart"
)

// Profile returns the acting user.
func (m *Manager) Profile(ctx context.Context, userID int) (*User, error) {
	dbUser, err := m.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("db get user by id: %w", err)
	} else if dbUser == nil {
		return nil, ErrUserNotFound
	}

	return NewUser(dbUser), nil
}

// UpdateProfile replaces the user's profile image. Only the session's
// own user id may be targeted; the validate/save/persist order mirrors
// news creation.
func (m *Manager) UpdateProfile(ctx context.Context, sessionUserID, targetUserID int, image *multipart.FileHeader) (*User, error) {
	if sessionUserID != targetUserID {
		return nil, ErrNotOwner
	}

	if image == nil {
		return nil, imageRequired("profile")
	}

	if err := m.images.Validate(image.Size, image.Header.Get("Content-Type")); err != nil {
		return nil, &ImageError{Field: "profile", Reason: err.Error()}
	}

	dbUser, err := m.repo.UserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("db get user by id: %w", err)
	} else if dbUser == nil {
		return nil, ErrUserNotFound
	}

	name, err := m.images.Save(image)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	if err := m.repo.SetUserProfile(ctx, targetUserID, name); err != nil {
		if rmErr := m.images.Remove(name); rmErr != nil {
			m.log.Error("failed to remove image after profile update failure", "image", name, "error", rmErr)
		}
		return nil, fmt.Errorf("db set user profile: %w", err)
	}

	if dbUser.Profile != nil {
		if err := m.images.Remove(*dbUser.Profile); err != nil {
			m.log.Error("failed to remove replaced profile image", "image", *dbUser.Profile, "error", err)
		}
	}

	return m.Profile(ctx, targetUserID)
}

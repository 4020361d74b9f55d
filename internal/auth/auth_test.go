package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mpetrov/news-backend/internal/db"
)

type mockRepository struct {
	userByEmailFunc func(ctx context.Context, email string) (*db.User, error)
	createUserFunc  func(ctx context.Context, user *db.User) error
}

func (m *mockRepository) UserByEmail(ctx context.Context, email string) (*db.User, error) {
	if m.userByEmailFunc != nil {
		return m.userByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockRepository) CreateUser(ctx context.Context, user *db.User) error {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, user)
	}
	return nil
}

func testConfig() Config {
	return Config{
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with hashed password and returns valid token", func(t *testing.T) {
		var created *db.User
		repo := &mockRepository{
			createUserFunc: func(ctx context.Context, user *db.User) error {
				user.ID = 9
				created = user
				return nil
			},
		}
		s := NewService(repo, testConfig())

		token, user, err := s.Register(ctx, "Alice", "alice@example.com", "secret123")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEqual(t, "secret123", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))

		userID, err := s.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 9, userID)
		assert.Equal(t, 9, user.ID)
	})

	t.Run("taken email", func(t *testing.T) {
		repo := &mockRepository{
			userByEmailFunc: func(ctx context.Context, email string) (*db.User, error) {
				return &db.User{ID: 1, Email: email}, nil
			},
		}
		s := NewService(repo, testConfig())

		_, _, err := s.Register(ctx, "Alice", "alice@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate insert maps to taken email", func(t *testing.T) {
		repo := &mockRepository{
			createUserFunc: func(ctx context.Context, user *db.User) error {
				return db.ErrDuplicateEmail
			},
		}
		s := NewService(repo, testConfig())

		_, _, err := s.Register(ctx, "Alice", "alice@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockRepository{
		userByEmailFunc: func(ctx context.Context, email string) (*db.User, error) {
			if email == "alice@example.com" {
				return &db.User{ID: 4, Email: email, PasswordHash: string(hash)}, nil
			}
			return nil, nil
		},
	}
	s := NewService(repo, testConfig())

	t.Run("valid credentials issue a token for the user", func(t *testing.T) {
		token, user, err := s.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, 4, user.ID)

		userID, err := s.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 4, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := s.Login(ctx, "alice@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := s.Login(ctx, "bob@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_ValidateToken(t *testing.T) {
	s := NewService(&mockRepository{}, testConfig())

	t.Run("garbage token", func(t *testing.T) {
		_, err := s.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(&mockRepository{}, Config{Secret: "other-secret", TokenTTL: time.Hour})
		token, err := other.IssueToken(5)
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewService(&mockRepository{}, Config{Secret: "test-secret", TokenTTL: -time.Hour})
		token, err := expired.IssueToken(5)
		require.NoError(t, err)

		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mpetrov/news-backend/internal/db"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// Repository is the user-persistence surface the auth service needs.
type Repository interface {
	UserByEmail(ctx context.Context, email string) (*db.User, error)
	CreateUser(ctx context.Context, user *db.User) error
}

type Service struct {
	repo Repository
	cfg  Config
}

func NewService(repo Repository, cfg Config) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
	}
}

type accessClaims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// Register creates a user with a bcrypt-hashed password and returns a
// signed access token for it.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, *db.User, error) {
	existing, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("db get user by email: %w", err)
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, fmt.Errorf("db create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Login verifies the password and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *db.User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("db get user by email: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// IssueToken signs an HS256 access token carrying the user id.
func (s *Service) IssueToken(userID int) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the signature and expiry and returns the user id.
func (s *Service) ValidateToken(tokenStr string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, ErrInvalidToken
			}
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

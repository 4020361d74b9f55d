package images

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Validator checks a candidate upload against configured limits before
// anything touches the disk.
type Validator struct {
	MaxSize      int64
	AllowedTypes []string
}

// Validate accepts or rejects a file by its size and declared media type.
// The returned error carries the human-readable rejection reason.
func (v Validator) Validate(size int64, contentType string) error {
	if size <= 0 {
		return fmt.Errorf("image is empty")
	}
	if size > v.MaxSize {
		return fmt.Errorf("image must be less than %d MB", v.MaxSize>>20)
	}

	for _, allowed := range v.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return nil
		}
	}

	return fmt.Errorf("image must be one of: %s", strings.Join(v.AllowedTypes, ", "))
}

// RandomName generates a collision-resistant filename keeping the
// original file's extension.
func RandomName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// Store owns the public images directory.
type Store struct {
	dir       string
	validator Validator
}

func NewStore(dir string, validator Validator) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &Store{
		dir:       dir,
		validator: validator,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Validate(size int64, contentType string) error {
	return s.validator.Validate(size, contentType)
}

// Save writes the upload under a generated name and returns that name.
// The file is written to a temp path first and renamed into place, so a
// failed write never leaves a partial file at the final name.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	name := RandomName(file.Filename)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move upload: %w", err)
	}

	return name, nil
}

// Remove deletes a stored image. A missing file is not an error, the
// goal state is simply "file gone".
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("invalid image name: %q", name)
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	return nil
}

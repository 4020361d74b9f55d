package newsapp

import "time"

// Author is the narrow owner projection embedded in news.
type Author struct {
	ID      int
	Name    string
	Profile *string
}

type News struct {
	ID        int
	Title     string
	Content   string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    *Author
}

type User struct {
	ID      int
	Name    string
	Email   string
	Profile *string
}

// NewsInput is the validated payload for create and update.
type NewsInput struct {
	Title   string
	Content string
}

// Metadata describes the window a listing returned.
type Metadata struct {
	TotalPages   int
	CurrentPage  int
	CurrentLimit int
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage clamps the raw page value: non-positive input falls back
// to the default, it is never rejected.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizePageSize clamps the raw limit value into [1, MaxPageSize].
func NormalizePageSize(pageSize int) int {
	if pageSize < 1 || pageSize > MaxPageSize {
		return DefaultPageSize
	}
	return pageSize
}

// TotalPages derives the page count for a window size; zero rows means
// zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

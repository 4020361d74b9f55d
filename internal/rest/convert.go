package rest

import (
	"github.com/mpetrov/news-backend/internal/db"
	"github.com/mpetrov/news-backend/internal/newsapp"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewAuthor(a *newsapp.Author) *Author {
	if a == nil {
		return nil
	}

	return &Author{
		ID:      a.ID,
		Name:    a.Name,
		Profile: a.Profile,
	}
}

func NewNews(n newsapp.News) News {
	return News{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Image:     n.Image,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		User:      NewAuthor(n.Author),
	}
}

func NewMetadata(m newsapp.Metadata) Metadata {
	return Metadata{
		TotalPages:   m.TotalPages,
		CurrentPage:  m.CurrentPage,
		CurrentLimit: m.CurrentLimit,
	}
}

func NewUser(u *newsapp.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Profile: u.Profile,
	}
}

func NewUserFromDB(u *db.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Profile: u.Profile,
	}
}

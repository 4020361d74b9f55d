package newsapp

import "github.com/mpetrov/news-backend/internal/db"

func NewAuthor(u *db.User) *Author {
	if u == nil {
		return nil
	}

	return &Author{
		ID:      u.ID,
		Name:    u.Name,
		Profile: u.Profile,
	}
}

func NewNews(n *db.News) News {
	news := News{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Author:    NewAuthor(n.User),
	}

	if n.Image != nil {
		news.Image = *n.Image
	}

	return news
}

func NewNewsList(list []db.News) []News {
	result := make([]News, len(list))
	for i := range list {
		result[i] = NewNews(&list[i])
	}
	return result
}

func NewUser(u *db.User) *User {
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

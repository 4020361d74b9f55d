package rest

import "time"

type Author struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Profile *string `json:"profile"`
}

type News struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *Author   `json:"user"`
}

type User struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Profile *string `json:"profile"`
}

type Metadata struct {
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	CurrentLimit int `json:"currentLimit"`
}

// NewsForm is the request body schema for create and update.
type NewsForm struct {
	Title   string `json:"title" form:"title" validate:"required,min=5,max=190"`
	Content string `json:"content" form:"content" validate:"required,min=10,max=30000"`
}

type RegisterForm struct {
	Name            string `json:"name" form:"name" validate:"required,min=2,max=190"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=100"`
	PasswordConfirm string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Response envelopes. HTTP status mirrors the status field where present.

type newsListResponse struct {
	Status   int      `json:"status"`
	News     []News   `json:"news"`
	Metadata Metadata `json:"metadata"`
}

type newsResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	News    *News  `json:"news"`
}

type profileResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

type authResponse struct {
	Status      int    `json:"status"`
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusMessageResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type errorsResponse struct {
	Errors map[string]string `json:"errors"`
}

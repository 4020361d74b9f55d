package db

import (
	"time"
)

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	Title     string    `pg:"title,use_zero"`
	Content   string    `pg:"content,use_zero"`
	Image     *string   `pg:"image"`
	UserID    int       `pg:"user_id,use_zero"`
	CreatedAt time.Time `pg:"created_at,use_zero"`
	UpdatedAt time.Time `pg:"updated_at,use_zero"`

	User *User `pg:"fk:user_id,rel:has-one"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int       `pg:"id,pk"`
	Name         string    `pg:"name,use_zero"`
	Email        string    `pg:"email,use_zero"`
	PasswordHash string    `pg:"password,use_zero"`
	Profile      *string   `pg:"profile"`
	CreatedAt    time.Time `pg:"created_at,use_zero"`
	UpdatedAt    time.Time `pg:"updated_at,use_zero"`
}

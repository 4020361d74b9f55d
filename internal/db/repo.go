package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

var ErrDuplicateEmail = errors.New("email already taken")

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
	}

	return nil
}

// usersProjection narrows the joined owner to the columns the API exposes.
func usersProjection(q *orm.Query) (*orm.Query, error) {
	return q.Column("id", "name", "profile"), nil
}

// News retrieves one page of news in insertion order, each row joined with
// a narrow projection of its owner (id, name, profile).
func (r *Repository) News(ctx context.Context, page, pageSize int) ([]News, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf(
			"page or pageSize must be greater than 0: page=%d, pageSize=%d",
			page, pageSize,
		)
	}

	offset := (page - 1) * pageSize

	var news []News
	err := r.db.ModelContext(ctx, &news).
		Relation("User", usersProjection).
		OrderExpr(`"t"."id" ASC`).
		Limit(pageSize).
		Offset(offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	return news, nil
}

func (r *Repository) NewsCount(ctx context.Context) (int, error) {
	count, err := r.db.ModelContext(ctx, (*News)(nil)).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get news count: %w", err)
	}

	return count, nil
}

func (r *Repository) NewsByID(ctx context.Context, newsID int) (*News, error) {
	news := &News{}
	err := r.db.ModelContext(ctx, news).
		Relation("User", usersProjection).
		Where(`"t"."id" = ?`, newsID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

func (r *Repository) CreateNews(ctx context.Context, news *News) error {
	now := time.Now()
	news.CreatedAt = now
	news.UpdatedAt = now

	if _, err := r.db.ModelContext(ctx, news).Insert(); err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	return nil
}

func (r *Repository) UpdateNews(ctx context.Context, news *News) error {
	news.UpdatedAt = time.Now()

	res, err := r.db.ModelContext(ctx, news).
		Column("title", "content", "image", "updated_at").
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}

	return nil
}

func (r *Repository) DeleteNews(ctx context.Context, newsID int) error {
	res, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."id" = ?`, newsID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}

	return nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."id" = ?`, userID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."email" = ?`, email).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		var pgErr pg.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// SetUserProfile stores the generated profile image name for the user.
func (r *Repository) SetUserProfile(ctx context.Context, userID int, image string) error {
	res, err := r.db.ModelContext(ctx, (*User)(nil)).
		Set(`"profile" = ?`, image).
		Set(`"updated_at" = ?`, time.Now()).
		Where(`"t"."id" = ?`, userID).
		Update()
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	if res.RowsAffected() == 0 {
		return pg.ErrNoRows
	}

	return nil
}

// ReferencedImages returns every image filename some news row or user
// profile still points at. Used by the orphan sweeper.
func (r *Repository) ReferencedImages(ctx context.Context) (map[string]struct{}, error) {
	var newsRows []News
	err := r.db.ModelContext(ctx, &newsRows).
		Column("image").
		Where(`"t"."image" IS NOT NULL`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query news images: %w", err)
	}

	var userRows []User
	err = r.db.ModelContext(ctx, &userRows).
		Column("profile").
		Where(`"t"."profile" IS NOT NULL`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query profile images: %w", err)
	}

	refs := make(map[string]struct{}, len(newsRows)+len(userRows))
	for _, row := range newsRows {
		if row.Image != nil {
			refs[*row.Image] = struct{}{}
		}
	}
	for _, row := range userRows {
		if row.Profile != nil {
			refs[*row.Profile] = struct{}{}
		}
	}

	return refs, nil
}

package repository

import (
	"context"

	"moviesbackend/internal/model"

	"gorm.io/gorm"
)

// GenreRepository defines CRUD operations for Genre.
//
// Uniqueness and non-null rules live in the schema, not here: a violating
// insert comes back as gorm.ErrDuplicatedKey (SQLSTATE 23505 translated by
// the driver) and callers decide how to surface it.
type GenreRepository interface {
	Create(ctx context.Context, g *model.Genre) error
	List(ctx context.Context) ([]model.Genre, error)
	FindByID(ctx context.Context, id int64) (*model.Genre, error)
	FindByName(ctx context.Context, name string) (*model.Genre, error)
	Update(ctx context.Context, g *model.Genre) error
	Delete(ctx context.Context, id int64) error
}

type genreRepository struct{ db *gorm.DB }

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *model.Genre) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *genreRepository) List(ctx context.Context) ([]model.Genre, error) {
	var list []model.Genre
	err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error
	return list, err
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*model.Genre, error) {
	var g model.Genre
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	var g model.Genre
	err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) Update(ctx context.Context, g *model.Genre) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *genreRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Genre{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

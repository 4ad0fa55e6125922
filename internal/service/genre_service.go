package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"moviesbackend/internal/dto"
	"moviesbackend/internal/model"
	"moviesbackend/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	genreListCacheKey = "genres:all"
	genreCacheTTL     = 1 * time.Hour
)

var (
	ErrGenreNotFound  = errors.New("genre not found")
	ErrGenreNameInUse = errors.New("a genre with that name already exists")
	ErrEmptyGenreName = errors.New("genre name required")
)

// GenreService defines business operations for movie genres.
//
// Reads go through a Redis cache-aside layer; a dead cache degrades to
// plain DB reads, never to an error. Writes invalidate before returning.
type GenreService interface {
	Create(ctx context.Context, req dto.CreateGenreRequest) (dto.GenreResponse, error)
	List(ctx context.Context) ([]dto.GenreResponse, error)
	GetByID(ctx context.Context, id int64) (dto.GenreResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateGenreRequest) (dto.GenreResponse, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	repo repository.GenreRepository
	rdb  *redis.Client
}

func NewGenreService(repo repository.GenreRepository, rdb *redis.Client) GenreService {
	return &genreService{repo: repo, rdb: rdb}
}

// mapGenre converts a model to a DTO response.
func mapGenre(g model.Genre) dto.GenreResponse {
	return dto.GenreResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

func genreCacheKey(id int64) string { return fmt.Sprintf("genre:%d", id) }

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreRequest) (dto.GenreResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.GenreResponse{}, ErrEmptyGenreName
	}

	// Friendly pre-check; the unique index remains the authority.
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.GenreResponse{}, err
	}
	if existing != nil {
		return dto.GenreResponse{}, ErrGenreNameInUse
	}

	g := &model.Genre{Name: name}
	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.GenreResponse{}, ErrGenreNameInUse
		}
		return dto.GenreResponse{}, err
	}

	s.invalidate(genreListCacheKey)
	return mapGenre(*g), nil
}

func (s *genreService) List(ctx context.Context) ([]dto.GenreResponse, error) {
	// 1. Try Redis cache
	if cached, err := s.rdb.Get(ctx, genreListCacheKey).Bytes(); err == nil {
		var resp []dto.GenreResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			return resp, nil
		}
	}

	// 2. Cache miss — query DB
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, mapGenre(g))
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = s.rdb.Set(context.Background(), genreListCacheKey, b, genreCacheTTL).Err()
	}

	return resp, nil
}

func (s *genreService) GetByID(ctx context.Context, id int64) (dto.GenreResponse, error) {
	key := genreCacheKey(id)

	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var resp dto.GenreResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			return resp, nil
		}
	}

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GenreResponse{}, ErrGenreNotFound
		}
		return dto.GenreResponse{}, err
	}

	resp := mapGenre(*g)
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = s.rdb.Set(context.Background(), key, b, genreCacheTTL).Err()
	}
	return resp, nil
}

func (s *genreService) Update(ctx context.Context, id int64, req dto.UpdateGenreRequest) (dto.GenreResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.GenreResponse{}, ErrEmptyGenreName
	}

	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GenreResponse{}, ErrGenreNotFound
		}
		return dto.GenreResponse{}, err
	}

	// Check uniqueness if name is changing
	if name != g.Name {
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GenreResponse{}, err
		}
		if existing != nil && existing.ID != id {
			return dto.GenreResponse{}, ErrGenreNameInUse
		}
	}

	g.Name = name
	if err := s.repo.Update(ctx, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.GenreResponse{}, ErrGenreNameInUse
		}
		return dto.GenreResponse{}, err
	}

	s.invalidate(genreListCacheKey, genreCacheKey(id))
	return mapGenre(*g), nil
}

func (s *genreService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	s.invalidate(genreListCacheKey, genreCacheKey(id))
	return nil
}

// invalidate drops cache keys after a mutation. Best effort: a dead Redis
// must not fail the write, the TTL bounds staleness either way.
func (s *genreService) invalidate(keys ...string) {
	_ = s.rdb.Del(context.Background(), keys...).Err()
}

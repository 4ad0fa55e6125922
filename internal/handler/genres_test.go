package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"moviesbackend/internal/dto"
	"moviesbackend/internal/model"
	"moviesbackend/internal/repository"
	"moviesbackend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory GenreRepository ─────────────────────────────────────────────────

type memGenreRepo struct {
	genres map[int64]*model.Genre
	nextID int64
}

func newMemGenreRepo() *memGenreRepo {
	return &memGenreRepo{genres: make(map[int64]*model.Genre), nextID: 1}
}

func (r *memGenreRepo) Create(_ context.Context, g *model.Genre) error {
	for _, existing := range r.genres {
		if existing.Name == g.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	g.ID = r.nextID
	r.nextID++
	g.CreatedAt = time.Now()
	r.genres[g.ID] = g
	return nil
}

func (r *memGenreRepo) List(_ context.Context) ([]model.Genre, error) {
	result := make([]model.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memGenreRepo) FindByID(_ context.Context, id int64) (*model.Genre, error) {
	g, ok := r.genres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *memGenreRepo) FindByName(_ context.Context, name string) (*model.Genre, error) {
	for _, g := range r.genres {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memGenreRepo) Update(_ context.Context, g *model.Genre) error {
	if _, ok := r.genres[g.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.genres[g.ID] = g
	return nil
}

func (r *memGenreRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.genres[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.genres, id)
	return nil
}

var _ repository.GenreRepository = (*memGenreRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func setupGenresRouter() (*gin.Engine, *memGenreRepo) {
	gin.SetMode(gin.TestMode)
	repo := newMemGenreRepo()
	h := NewGenresHandler(service.NewGenreService(repo, deadRedis()))

	r := gin.New()
	r.POST("/v1/genres", h.Create)
	r.GET("/v1/genres", h.List)
	r.GET("/v1/genres/:id", h.GetByID)
	r.PUT("/v1/genres/:id", h.Update)
	r.DELETE("/v1/genres/:id", h.Delete)
	return r, repo
}

func perform(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedRepoGenre(repo *memGenreRepo, name string) *model.Genre {
	g := &model.Genre{ID: repo.nextID, Name: name, CreatedAt: time.Now()}
	repo.nextID++
	repo.genres[g.ID] = g
	return g
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreateGenreEndpoint(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "POST", "/v1/genres", map[string]string{"name": "Drama"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.GenreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Drama", resp.Name)
	assert.Positive(t, resp.ID)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreateGenreEndpoint_Duplicate(t *testing.T) {
	r, repo := setupGenresRouter()
	seedRepoGenre(repo, "Drama")

	w := perform(t, r, "POST", "/v1/genres", map[string]string{"name": "Drama"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreateGenreEndpoint_MissingName(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "POST", "/v1/genres", map[string]string{})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Name")
}

func TestCreateGenreEndpoint_WhitespaceName(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "POST", "/v1/genres", map[string]string{"name": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGenreEndpoint_MalformedJSON(t *testing.T) {
	r, _ := setupGenresRouter()

	req := httptest.NewRequest("POST", "/v1/genres", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func TestListGenresEndpoint(t *testing.T) {
	r, repo := setupGenresRouter()
	seedRepoGenre(repo, "Western")
	seedRepoGenre(repo, "Animation")

	w := perform(t, r, "GET", "/v1/genres", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.GenreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Animation", resp[0].Name)
}

func TestGetGenreEndpoint(t *testing.T) {
	r, repo := setupGenresRouter()
	g := seedRepoGenre(repo, "Horror")

	w := perform(t, r, "GET", fmt.Sprintf("/v1/genres/%d", g.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.GenreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Horror", resp.Name)
}

func TestGetGenreEndpoint_InvalidID(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "GET", "/v1/genres/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGenreEndpoint_NotFound(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "GET", "/v1/genres/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── Update / Delete ───────────────────────────────────────────────────────────

func TestUpdateGenreEndpoint(t *testing.T) {
	r, repo := setupGenresRouter()
	g := seedRepoGenre(repo, "Sci-Fi")

	w := perform(t, r, "PUT", fmt.Sprintf("/v1/genres/%d", g.ID), map[string]string{"name": "Science Fiction"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.GenreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Science Fiction", resp.Name)
}

func TestUpdateGenreEndpoint_Conflict(t *testing.T) {
	r, repo := setupGenresRouter()
	seedRepoGenre(repo, "Action")
	g := seedRepoGenre(repo, "Adventure")

	w := perform(t, r, "PUT", fmt.Sprintf("/v1/genres/%d", g.ID), map[string]string{"name": "Action"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateGenreEndpoint_NotFound(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "PUT", "/v1/genres/404", map[string]string{"name": "Mystery"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGenreEndpoint(t *testing.T) {
	r, repo := setupGenresRouter()
	g := seedRepoGenre(repo, "Fantasy")

	w := perform(t, r, "DELETE", fmt.Sprintf("/v1/genres/%d", g.ID), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.genres)
}

func TestDeleteGenreEndpoint_NotFound(t *testing.T) {
	r, _ := setupGenresRouter()

	w := perform(t, r, "DELETE", "/v1/genres/404", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"moviesbackend/internal/apierror"
	"moviesbackend/internal/dto"
	"moviesbackend/internal/service"

	"github.com/gin-gonic/gin"
)

type GenresHandler struct{ svc service.GenreService }

func NewGenresHandler(svc service.GenreService) *GenresHandler {
	return &GenresHandler{svc: svc}
}

func parseGenreID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid genre id"))
		return 0, false
	}
	return id, true
}

// Create POST /v1/genres
func (h *GenresHandler) Create(c *gin.Context) {
	var req dto.CreateGenreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGenreNameInUse):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEmptyGenreName):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to create genre"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List all genres (no authentication)
// @Tags genres
// @Produce json
// @Success 200 {array} dto.GenreResponse
// @Router /v1/genres [get]
func (h *GenresHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list genres"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary Get a genre by id (no authentication)
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} dto.GenreResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/genres/{id} [get]
func (h *GenresHandler) GetByID(c *gin.Context) {
	id, ok := parseGenreID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to fetch genre"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update PUT /v1/genres/:id
func (h *GenresHandler) Update(c *gin.Context) {
	id, ok := parseGenreID(c)
	if !ok {
		return
	}
	var req dto.UpdateGenreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGenreNotFound):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrGenreNameInUse):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEmptyGenreName):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to update genre"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /v1/genres/:id
func (h *GenresHandler) Delete(c *gin.Context) {
	id, ok := parseGenreID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to delete genre"))
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

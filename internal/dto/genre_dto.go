package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateGenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GenreResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

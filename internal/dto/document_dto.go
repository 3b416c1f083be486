package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddDocumentRequest struct {
	Title      string   `json:"title" validate:"required,min=3"`
	Content    string   `json:"content" validate:"required,min=10"`
	Source     string   `json:"source" validate:"required"`
	Categories []string `json:"categories" validate:"omitempty,dive,min=1"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	Categories []string  `json:"categories,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalDocument is one entry in the Q&A knowledge base. The embedding is
// computed once at insert time and only changes via the re-embed script.
type MedicalDocument struct {
	Id         uuid.UUID
	Title      string
	Content    string
	Source     string
	Categories []string
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

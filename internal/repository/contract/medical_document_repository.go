package contract

import (
	"context"

	"github.com/google/uuid"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/repository/specification"
)

// ScoredMedicalDocument pairs a document with its cosine similarity to a
// query vector, in [0,1].
type ScoredMedicalDocument struct {
	Document   *entity.MedicalDocument
	Similarity float64
}

type MedicalDocumentRepository interface {
	Create(ctx context.Context, doc *entity.MedicalDocument) error
	CreateBulk(ctx context.Context, docs []*entity.MedicalDocument) error
	Update(ctx context.Context, doc *entity.MedicalDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MedicalDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MedicalDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore retrieves documents above the similarity
	// threshold, ordered by similarity descending, at most limit rows.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, specs ...specification.Specification) ([]*ScoredMedicalDocument, error)
}

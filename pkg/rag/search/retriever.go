// Package search formulates similarity queries over the medical document
// store.
package search

import (
	"context"

	"healthlync-be/internal/repository/contract"
	"healthlync-be/internal/repository/specification"
)

// Options tune a retrieval. Zero values fall back to the configured defaults
// at the service layer.
type Options struct {
	Limit      int
	Threshold  float64
	Categories []string
}

type Retriever struct {
	documents contract.MedicalDocumentRepository
}

func NewRetriever(documents contract.MedicalDocumentRepository) *Retriever {
	return &Retriever{documents: documents}
}

// Search returns at most opts.Limit documents whose cosine similarity to the
// query embedding meets opts.Threshold, most similar first. An empty result
// is valid, not an error.
func (r *Retriever) Search(ctx context.Context, queryEmbedding []float32, opts Options) ([]*contract.ScoredMedicalDocument, error) {
	specs := make([]specification.Specification, 0, len(opts.Categories))
	for _, category := range opts.Categories {
		specs = append(specs, specification.HasCategory{Category: category})
	}

	return r.documents.SearchSimilarWithScore(ctx, queryEmbedding, opts.Limit, opts.Threshold, specs...)
}

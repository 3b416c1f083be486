package embedding

import "context"

// MaxInputChars caps embedding input length. Longer texts are truncated
// before being sent to the provider.
const MaxInputChars = 8000

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) (*EmbeddingResponse, error)
	Dimensions() int
}

type EmbeddingResponse struct {
	Values []float32
	Model  string
}

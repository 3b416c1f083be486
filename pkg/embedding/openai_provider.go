package embedding

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/pkg/utils"
)

// OpenAIProvider implements EmbeddingProvider using the OpenAI embeddings API.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

func NewOpenAIProvider(apiKey, baseURL, model string, dimensions int) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, apperrors.NewConfiguration("OPENAI_API_KEY is not set")
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	if dimensions <= 0 {
		dimensions = 1536
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
	}, nil
}

func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	if text == "" {
		return nil, apperrors.NewValidation("embedding input is empty")
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{utils.Truncate(text, MaxInputChars)},
		Model:          openai.EmbeddingModel(p.model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
		Dimensions:     p.dimensions,
	})
	if err != nil {
		return nil, wrapOpenAIError("openai embedding", err)
	}

	if len(resp.Data) == 0 {
		return nil, apperrors.NewProvider("openai embedding", 0, "empty embedding response", nil)
	}

	return &EmbeddingResponse{
		Values: resp.Data[0].Embedding,
		Model:  string(resp.Model),
	}, nil
}

// wrapOpenAIError extracts the upstream HTTP status from go-openai error types.
func wrapOpenAIError(provider string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewProvider(provider, apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperrors.NewProvider(provider, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}
	return apperrors.NewProvider(provider, 0, err.Error(), err)
}

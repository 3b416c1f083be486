package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthlync-be/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "", 0)
	require.Error(t, err)
}

func TestNewOpenAIProviderDefaults(t *testing.T) {
	p, err := NewOpenAIProvider("test-key", "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1536, p.Dimensions())
}

func TestOpenAIGenerateRejectsEmptyInput(t *testing.T) {
	p, err := NewOpenAIProvider("test-key", "", "text-embedding-3-small", 1536)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text-embedding-3-small", body["model"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, "text-embedding-3-small", 3)
	require.NoError(t, err)

	res, err := p.Generate(context.Background(), "cholesterol and heart disease")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, res.Values)
	assert.Equal(t, "text-embedding-3-small", res.Model)
}

func TestOpenAIGenerateStableForSameInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.4, 0.5, 0.6}},
			},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, "text-embedding-3-small", 3)
	require.NoError(t, err)

	// Two calls with the same text must produce the same vector, so stored
	// document embeddings stay comparable with later query embeddings.
	first, err := p.Generate(context.Background(), "cholesterol and heart disease")
	require.NoError(t, err)
	second, err := p.Generate(context.Background(), "cholesterol and heart disease")
	require.NoError(t, err)

	assert.Equal(t, first.Values, second.Values)
	assert.Equal(t, first.Model, second.Model)
}

func TestOpenAIGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "rate limit exceeded",
				"type":    "rate_limit_error",
			},
		})
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("test-key", srv.URL, "text-embedding-3-small", 3)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "some text")
	require.Error(t, err)
	assert.True(t, apperrors.IsProvider(err))

	var provErr *apperrors.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusTooManyRequests, provErr.UpstreamStatus)
}

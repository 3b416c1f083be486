package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"healthlync-be/internal/dto"
	"healthlync-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRagService struct {
	askRes    *dto.AskResponse
	askErr    error
	searchRes *dto.SearchResponse
	searchErr error
}

func (m *mockRagService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	return m.askRes, m.askErr
}

func (m *mockRagService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	return m.searchRes, m.searchErr
}

type mockDocumentService struct{}

func (m *mockDocumentService) Add(ctx context.Context, req *dto.AddDocumentRequest) (*dto.DocumentResponse, error) {
	return &dto.DocumentResponse{Id: uuid.New(), Title: req.Title}, nil
}

func (m *mockDocumentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	return nil, nil
}

func (m *mockDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newTestApp(rag *mockRagService) *fiber.App {
	app := fiber.New()
	c := NewRagController(rag, &mockDocumentService{})
	c.RegisterRoutes(app.Group("/api"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return res.StatusCode, parsed
}

func TestAskSuccessShape(t *testing.T) {
	rag := &mockRagService{
		askRes: &dto.AskResponse{
			Success:  true,
			Response: "ApoB is the better marker.",
			Sources: []dto.SourceDTO{
				{Title: "Doc A", Source: "Peter Attia MD", Similarity: 0.9},
			},
			Timestamp:   time.Now(),
			ContextUsed: true,
		},
	}
	app := newTestApp(rag)

	status, body := postJSON(t, app, "/api/rag/ask", dto.AskRequest{Query: "Why measure ApoB?"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ApoB is the better marker.", body["response"])
	assert.Equal(t, true, body["contextUsed"])

	sources, ok := body["sources"].([]interface{})
	require.True(t, ok)
	require.Len(t, sources, 1)
}

func TestAskValidationError(t *testing.T) {
	rag := &mockRagService{askErr: apperrors.NewValidation("Query is required")}
	app := newTestApp(rag)

	status, body := postJSON(t, app, "/api/rag/ask", dto.AskRequest{Query: ""})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Query is required", body["error"])
}

func TestAskTimeoutError(t *testing.T) {
	rag := &mockRagService{askErr: apperrors.NewTimeout("Request timeout - try a simpler query")}
	app := newTestApp(rag)

	status, body := postJSON(t, app, "/api/rag/ask", dto.AskRequest{Query: "slow question"})

	assert.Equal(t, fiber.StatusGatewayTimeout, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Request timeout - try a simpler query", body["error"])
}

func TestAskGenericError(t *testing.T) {
	rag := &mockRagService{askErr: apperrors.NewProvider("openai", 500, "boom", nil)}
	app := newTestApp(rag)

	status, body := postJSON(t, app, "/api/rag/ask", dto.AskRequest{Query: "anything"})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to process query", body["error"])
	assert.NotEmpty(t, body["details"])
}

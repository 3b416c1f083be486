package service

import (
	"context"
	"testing"
	"time"

	"healthlync-be/internal/config"
	"healthlync-be/internal/constant"
	"healthlync-be/internal/dto"
	"healthlync-be/internal/entity"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/pkg/embedding"
	"healthlync-be/pkg/llm"
	"healthlync-be/pkg/rag/profile"
	"healthlync-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEmbeddingProvider struct {
	calls  int
	values []float32
	err    error
	block  chan struct{}
}

func (m *mockEmbeddingProvider) Generate(ctx context.Context, text string) (*embedding.EmbeddingResponse, error) {
	m.calls++
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return nil, m.err
	}
	return &embedding.EmbeddingResponse{Values: m.values, Model: "test-model"}, nil
}

func (m *mockEmbeddingProvider) Dimensions() int {
	return len(m.values)
}

type mockLLMProvider struct {
	calls    int
	response string
	err      error
	block    chan struct{}
	history  []llm.Message
}

func (m *mockLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	m.calls++
	m.history = history
	if m.block != nil {
		<-m.block
	}
	return m.response, m.err
}

func (m *mockLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type mockDocumentRepository struct {
	searchCalls int
	results     []*contract.ScoredMedicalDocument
	err         error
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *entity.MedicalDocument) error {
	return nil
}
func (m *mockDocumentRepository) CreateBulk(ctx context.Context, docs []*entity.MedicalDocument) error {
	return nil
}
func (m *mockDocumentRepository) Update(ctx context.Context, doc *entity.MedicalDocument) error {
	return nil
}
func (m *mockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (m *mockDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MedicalDocument, error) {
	return nil, nil
}
func (m *mockDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MedicalDocument, error) {
	return nil, nil
}
func (m *mockDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (m *mockDocumentRepository) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, threshold float64, specs ...specification.Specification) ([]*contract.ScoredMedicalDocument, error) {
	m.searchCalls++
	return m.results, m.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testRagConfig() config.RagConfig {
	return config.RagConfig{
		MatchThreshold: 0.3,
		MatchCount:     5,
		TimeoutSeconds: 25,
	}
}

func newTestRagService(emb *mockEmbeddingProvider, llmMock *mockLLMProvider, repo *mockDocumentRepository, cfg config.RagConfig) IRagService {
	return NewRagService(emb, llmMock, search.NewRetriever(repo), cfg, nopLogger{})
}

func TestRagAskRejectsEmptyQuery(t *testing.T) {
	svc := newTestRagService(&mockEmbeddingProvider{}, &mockLLMProvider{}, &mockDocumentRepository{}, testRagConfig())

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := svc.Ask(context.Background(), &dto.AskRequest{Query: query})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}
}

func TestRagAskBloodTypeShortcut(t *testing.T) {
	emb := &mockEmbeddingProvider{values: []float32{0.1, 0.2}}
	llmMock := &mockLLMProvider{response: "should not be called"}
	repo := &mockDocumentRepository{}
	svc := newTestRagService(emb, llmMock, repo, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Query: "What is my blood type?",
		UserContext: &profile.UserContext{
			Profile: &profile.Profile{BloodType: "O+"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Your blood type is O+.", res.Response)
	assert.True(t, res.ContextUsed)
	assert.Empty(t, res.Sources)

	// The shortcut must not touch the embedding or retrieval path
	assert.Equal(t, 0, emb.calls)
	assert.Equal(t, 0, repo.searchCalls)
	assert.Equal(t, 0, llmMock.calls)
}

func TestRagAskBloodTypeMissingFromProfile(t *testing.T) {
	svc := newTestRagService(&mockEmbeddingProvider{}, &mockLLMProvider{}, &mockDocumentRepository{}, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Query: "what is my blood type",
		UserContext: &profile.UserContext{
			Profile: &profile.Profile{Age: 40},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, constant.NoBloodTypeMessage, res.Response)
}

func TestRagAskPersonalQuestionWithoutProfile(t *testing.T) {
	emb := &mockEmbeddingProvider{values: []float32{0.1}}
	llmMock := &mockLLMProvider{response: "nope"}
	repo := &mockDocumentRepository{}
	svc := newTestRagService(emb, llmMock, repo, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "what are my lab results"})

	require.NoError(t, err)
	assert.Equal(t, constant.NoProfileMessage, res.Response)
	assert.False(t, res.ContextUsed)
	assert.Equal(t, 0, emb.calls)
	assert.Equal(t, 0, llmMock.calls)
}

func TestRagAskPersonalQuestionUsesEnrichedPrompt(t *testing.T) {
	llmMock := &mockLLMProvider{response: "Your recent glucose looks normal."}
	svc := newTestRagService(&mockEmbeddingProvider{}, llmMock, &mockDocumentRepository{}, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Query: "How are my lab values trending?",
		UserContext: &profile.UserContext{
			Profile: &profile.Profile{Age: 52, Sex: "Male"},
			RecentLabValues: map[string]profile.LabValueSummary{
				"Glucose": {Value: 5.1, Unit: "mmol/L"},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Your recent glucose looks normal.", res.Response)
	assert.True(t, res.ContextUsed)

	require.Len(t, llmMock.history, 2)
	assert.Contains(t, llmMock.history[1].Content, "52 year old male")
	assert.Contains(t, llmMock.history[1].Content, "Glucose: 5.1 mmol/L")
}

func TestRagAskFallbackOnEmptyRetrieval(t *testing.T) {
	emb := &mockEmbeddingProvider{values: []float32{0.1, 0.2, 0.3}}
	llmMock := &mockLLMProvider{response: "unused"}
	repo := &mockDocumentRepository{results: nil}
	svc := newTestRagService(emb, llmMock, repo, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "What causes high ApoB?"})

	require.NoError(t, err)
	assert.Equal(t, constant.FallbackMessage, res.Response)
	assert.False(t, res.ContextUsed)
	assert.Empty(t, res.Sources)

	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, 0, llmMock.calls)
}

func TestRagAskAnswersWithSources(t *testing.T) {
	docs := []*contract.ScoredMedicalDocument{
		{
			Document: &entity.MedicalDocument{
				Id:      uuid.New(),
				Title:   "Understanding cardiovascular disease",
				Content: "ApoB particles drive atherosclerosis.",
				Source:  "Peter Attia MD",
			},
			Similarity: 0.87,
		},
		{
			Document: &entity.MedicalDocument{
				Id:      uuid.New(),
				Title:   "Cholesterol basics",
				Content: "LDL is one of several lipoproteins.",
				Source:  "Peter Attia MD",
			},
			Similarity: 0.64,
		},
	}

	emb := &mockEmbeddingProvider{values: []float32{0.5, 0.5}}
	llmMock := &mockLLMProvider{response: "ApoB is the better marker."}
	repo := &mockDocumentRepository{results: docs}
	svc := newTestRagService(emb, llmMock, repo, testRagConfig())

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "Why measure ApoB?"})

	require.NoError(t, err)
	assert.Equal(t, "ApoB is the better marker.", res.Response)
	assert.True(t, res.ContextUsed)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, "Understanding cardiovascular disease", res.Sources[0].Title)
	assert.InDelta(t, 0.87, res.Sources[0].Similarity, 0.001)

	// System prompt carries the retrieved context
	require.Len(t, llmMock.history, 2)
	assert.Contains(t, llmMock.history[0].Content, "Source: Understanding cardiovascular disease")
	assert.Contains(t, llmMock.history[0].Content, "ApoB particles drive atherosclerosis.")
}

func TestRagAskTimesOut(t *testing.T) {
	cfg := testRagConfig()
	cfg.TimeoutSeconds = 1

	// Provider never returns; the deadline has to fire
	emb := &mockEmbeddingProvider{values: []float32{0.1}, block: make(chan struct{})}
	svc := newTestRagService(emb, &mockLLMProvider{}, &mockDocumentRepository{}, cfg)

	start := time.Now()
	_, err := svc.Ask(context.Background(), &dto.AskRequest{Query: "What causes high ApoB?"})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
	assert.Equal(t, "Request timeout - try a simpler query", err.Error())
	assert.Less(t, elapsed, 3*time.Second)
}

func TestRagSearchMapsResults(t *testing.T) {
	docs := []*contract.ScoredMedicalDocument{
		{
			Document: &entity.MedicalDocument{
				Id:         uuid.New(),
				Title:      "Cholesterol basics",
				Content:    "LDL is one of several lipoproteins circulating in blood.",
				Source:     "Peter Attia MD",
				Categories: []string{"cholesterol"},
			},
			Similarity: 0.71,
		},
	}

	emb := &mockEmbeddingProvider{values: []float32{0.2}}
	repo := &mockDocumentRepository{results: docs}
	svc := newTestRagService(emb, &mockLLMProvider{}, repo, testRagConfig())

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "cholesterol"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Cholesterol basics", res.Results[0].Title)
	assert.Equal(t, []string{"cholesterol"}, res.Results[0].Categories)
	assert.InDelta(t, 0.71, res.Results[0].Similarity, 0.001)
}

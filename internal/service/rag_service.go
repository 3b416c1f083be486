package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"healthlync-be/internal/config"
	"healthlync-be/internal/constant"
	"healthlync-be/internal/dto"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/pkg/logger"
	"healthlync-be/pkg/embedding"
	"healthlync-be/pkg/llm"
	"healthlync-be/pkg/rag/profile"
	"healthlync-be/pkg/rag/prompt"
	"healthlync-be/pkg/rag/search"
	"healthlync-be/pkg/utils"
)

type IRagService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type ragService struct {
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	retriever         *search.Retriever
	ragConfig         config.RagConfig
	log               logger.ILogger
}

func NewRagService(
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	retriever *search.Retriever,
	ragConfig config.RagConfig,
	log logger.ILogger,
) IRagService {
	return &ragService{
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		retriever:         retriever,
		ragConfig:         ragConfig,
		log:               log,
	}
}

// Ask runs the full Q&A pipeline under a hard deadline. A slow provider call
// must not hold the connection past the configured timeout.
func (s *ragService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.NewValidation("Query is required")
	}

	timeout := time.Duration(s.ragConfig.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type askResult struct {
		res *dto.AskResponse
		err error
	}
	done := make(chan askResult, 1)

	go func() {
		res, err := s.answer(ctx, req)
		done <- askResult{res: res, err: err}
	}()

	select {
	case r := <-done:
		return r.res, r.err
	case <-ctx.Done():
		s.log.Warn("rag", "query timed out", map[string]interface{}{
			"timeout_seconds": s.ragConfig.TimeoutSeconds,
		})
		return nil, apperrors.NewTimeout("Request timeout - try a simpler query")
	}
}

func (s *ragService) answer(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	query := strings.TrimSpace(req.Query)

	// Questions about the user's own data skip document retrieval entirely.
	if profile.IsPersonalQuestion(query, constant.PersonalQuestionPatterns) {
		return s.answerPersonal(ctx, query, req.UserContext)
	}

	embedRes, err := s.embeddingProvider.Generate(ctx, query)
	if err != nil {
		return nil, err
	}

	docs, err := s.retriever.Search(ctx, embedRes.Values, search.Options{
		Limit:      s.limitOrDefault(req.Limit),
		Threshold:  s.thresholdOrDefault(req.Threshold),
		Categories: req.Categories,
	})
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return &dto.AskResponse{
			Success:     true,
			Response:    constant.FallbackMessage,
			Sources:     []dto.SourceDTO{},
			Timestamp:   time.Now(),
			ContextUsed: false,
		}, nil
	}

	contextText := prompt.BuildContext(docs)
	userMessage := prompt.EnrichQuery(query, req.UserContext)
	messages := prompt.BuildMessages(userMessage, contextText)

	response, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SourceDTO, len(docs))
	for i, doc := range docs {
		sources[i] = dto.SourceDTO{
			Title:      doc.Document.Title,
			Source:     doc.Document.Source,
			Similarity: doc.Similarity,
		}
	}

	s.log.Info("rag", "query answered", map[string]interface{}{
		"documents": len(docs),
		"top_score": docs[0].Similarity,
	})

	return &dto.AskResponse{
		Success:     true,
		Response:    response,
		Sources:     sources,
		Timestamp:   time.Now(),
		ContextUsed: true,
	}, nil
}

func (s *ragService) answerPersonal(ctx context.Context, query string, userContext *profile.UserContext) (*dto.AskResponse, error) {
	if userContext == nil || userContext.Profile == nil {
		return &dto.AskResponse{
			Success:     true,
			Response:    constant.NoProfileMessage,
			Sources:     []dto.SourceDTO{},
			Timestamp:   time.Now(),
			ContextUsed: false,
		}, nil
	}

	// Blood type is a stored fact, not something to ask a model about.
	if profile.AsksBloodType(query) {
		response := constant.NoBloodTypeMessage
		if bt := userContext.Profile.BloodType; bt != "" && bt != "Unknown" {
			response = fmt.Sprintf("Your blood type is %s.", userContext.Profile.BloodType)
		}
		return &dto.AskResponse{
			Success:     true,
			Response:    response,
			Sources:     []dto.SourceDTO{},
			Timestamp:   time.Now(),
			ContextUsed: true,
		}, nil
	}

	messages := prompt.BuildPersonalMessages(query, userContext)
	response, err := s.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		Success:     true,
		Response:    response,
		Sources:     []dto.SourceDTO{},
		Timestamp:   time.Now(),
		ContextUsed: true,
	}, nil
}

func (s *ragService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, apperrors.NewValidation("Query is required")
	}

	embedRes, err := s.embeddingProvider.Generate(ctx, strings.TrimSpace(req.Query))
	if err != nil {
		return nil, err
	}

	docs, err := s.retriever.Search(ctx, embedRes.Values, search.Options{
		Limit:      s.limitOrDefault(req.Limit),
		Threshold:  s.thresholdOrDefault(req.Threshold),
		Categories: req.Categories,
	})
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResultDTO, len(docs))
	for i, doc := range docs {
		results[i] = dto.SearchResultDTO{
			Id:         doc.Document.Id.String(),
			Title:      doc.Document.Title,
			Source:     doc.Document.Source,
			Categories: doc.Document.Categories,
			Snippet:    utils.Truncate(doc.Document.Content, 200),
			Similarity: doc.Similarity,
		}
	}

	return &dto.SearchResponse{
		Results: results,
		Count:   len(results),
	}, nil
}

func (s *ragService) limitOrDefault(limit int) int {
	if limit > 0 {
		return limit
	}
	return s.ragConfig.MatchCount
}

func (s *ragService) thresholdOrDefault(threshold float64) float64 {
	if threshold > 0 {
		return threshold
	}
	return s.ragConfig.MatchThreshold
}

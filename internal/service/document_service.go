package service

import (
	"context"
	"fmt"
	"time"

	"healthlync-be/internal/dto"
	"healthlync-be/internal/entity"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/pkg/embedding"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Add(ctx context.Context, req *dto.AddDocumentRequest) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider) IDocumentService {
	return &documentService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (s *documentService) Add(ctx context.Context, req *dto.AddDocumentRequest) (*dto.DocumentResponse, error) {
	embedRes, err := s.embeddingProvider.Generate(ctx, fmt.Sprintf("%s\n\n%s", req.Title, req.Content))
	if err != nil {
		return nil, err
	}

	// A dimension mismatch would corrupt the vector column silently.
	if len(embedRes.Values) != s.embeddingProvider.Dimensions() {
		return nil, apperrors.NewProvider("embedding", 0,
			fmt.Sprintf("expected %d dimensions, got %d", s.embeddingProvider.Dimensions(), len(embedRes.Values)), nil)
	}

	doc := &entity.MedicalDocument{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		Source:     req.Source,
		Categories: req.Categories,
		Embedding:  embedRes.Values,
		CreatedAt:  time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MedicalDocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	return &dto.DocumentResponse{
		Id:         doc.Id,
		Title:      doc.Title,
		Source:     doc.Source,
		Categories: doc.Categories,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.MedicalDocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		res[i] = &dto.DocumentResponse{
			Id:         doc.Id,
			Title:      doc.Title,
			Source:     doc.Source,
			Categories: doc.Categories,
			CreatedAt:  doc.CreatedAt,
		}
	}
	return res, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.MedicalDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return apperrors.NewNotFound("document")
	}

	return uow.MedicalDocumentRepository().Delete(ctx, id)
}

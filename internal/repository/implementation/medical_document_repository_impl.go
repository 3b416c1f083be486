package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/mapper"
	"healthlync-be/internal/model"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/internal/repository/specification"
)

type MedicalDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MedicalDocumentMapper
}

func NewMedicalDocumentRepository(db *gorm.DB) contract.MedicalDocumentRepository {
	return &MedicalDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewMedicalDocumentMapper(),
	}
}

func (r *MedicalDocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MedicalDocumentRepositoryImpl) Create(ctx context.Context, doc *entity.MedicalDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicalDocumentRepositoryImpl) CreateBulk(ctx context.Context, docs []*entity.MedicalDocument) error {
	if len(docs) == 0 {
		return nil
	}
	models := make([]*model.MedicalDocument, len(docs))
	for i, d := range docs {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*docs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MedicalDocumentRepositoryImpl) Update(ctx context.Context, doc *entity.MedicalDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicalDocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.MedicalDocument{}).Error
}

func (r *MedicalDocumentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MedicalDocument, error) {
	var m model.MedicalDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MedicalDocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MedicalDocument, error) {
	var models []*model.MedicalDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MedicalDocument, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MedicalDocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MedicalDocument{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns documents with similarity scores, filtered
// by threshold in the query itself.
func (r *MedicalDocumentRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, specs ...specification.Specification) ([]*contract.ScoredMedicalDocument, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding <=> query_vector) = cosine_similarity
	type result struct {
		model.MedicalDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("medical_documents").
		Select("medical_documents.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("medical_documents.deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold)

	query = r.applySpecifications(query, specs...)

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredMedicalDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredMedicalDocument{
			Document:   r.mapper.ToEntity(&res.MedicalDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

package mapper

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/model"
)

type MedicalDocumentMapper struct{}

func NewMedicalDocumentMapper() *MedicalDocumentMapper {
	return &MedicalDocumentMapper{}
}

func (m *MedicalDocumentMapper) ToEntity(d *model.MedicalDocument) *entity.MedicalDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var categories []string
	if len(d.Categories) > 0 {
		_ = json.Unmarshal(d.Categories, &categories)
	}

	return &entity.MedicalDocument{
		Id:         d.Id,
		Title:      d.Title,
		Content:    d.Content,
		Source:     d.Source,
		Categories: categories,
		Embedding:  d.Embedding.Slice(),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  d.DeletedAt.Valid,
	}
}

func (m *MedicalDocumentMapper) ToModel(d *entity.MedicalDocument) *model.MedicalDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var categories datatypes.JSON
	if d.Categories != nil {
		raw, err := json.Marshal(d.Categories)
		if err == nil {
			categories = raw
		}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.MedicalDocument{
		Id:         d.Id,
		Title:      d.Title,
		Content:    d.Content,
		Source:     d.Source,
		Categories: categories,
		Embedding:  pgvector.NewVector(d.Embedding),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

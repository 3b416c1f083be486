package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/mapper"
	"healthlync-be/internal/model"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/internal/repository/specification"
)

type LabReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LabReportMapper
}

func NewLabReportRepository(db *gorm.DB) contract.LabReportRepository {
	return &LabReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewLabReportMapper(),
	}
}

func (r *LabReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create persists the report together with its values. GORM inserts the
// association rows in the same statement batch.
func (r *LabReportRepositoryImpl) Create(ctx context.Context, report *entity.LabReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *LabReportRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("lab_report_id = ?", id).Delete(&model.LabValue{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LabReport{}).Error
}

func (r *LabReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabReport, error) {
	var m model.LabReport
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Values"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LabReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabReport, error) {
	var models []*model.LabReport
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Values"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LabReport, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LabReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LabReport{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

func (r *LabReportRepositoryImpl) FindValues(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.LabValue, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.LabValue
	err := r.db.WithContext(ctx).
		Table("lab_values").
		Joins("JOIN lab_reports ON lab_reports.id = lab_values.lab_report_id").
		Where("lab_reports.user_id = ?", userId).
		Order("lab_values.created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	values := make([]*entity.LabValue, len(models))
	for i, m := range models {
		values[i] = r.mapper.ValueToEntity(m)
	}
	return values, nil
}

package contract

import (
	"context"

	"github.com/google/uuid"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/repository/specification"
)

type LabReportRepository interface {
	Create(ctx context.Context, report *entity.LabReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabReport, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindValues returns lab values across reports, e.g. the most recent
	// measurements for profile enrichment.
	FindValues(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.LabValue, error)
}

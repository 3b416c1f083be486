package service

import (
	"context"
	"encoding/json"
	"time"

	"healthlync-be/internal/dto"
	"healthlync-be/internal/entity"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/pkg/labparse"
	"healthlync-be/pkg/store"

	"github.com/google/uuid"
)

type IReportService interface {
	Ingest(ctx context.Context, userId uuid.UUID, req *dto.IngestReportRequest) (*dto.IngestReportResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.LabReportResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LabReportResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	JobStatus(jobId string) (*dto.JobStatusResponse, error)
}

type reportService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	jobStore         *store.JobStatusStore
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	jobStore *store.JobStatusStore,
) IReportService {
	return &reportService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		jobStore:         jobStore,
	}
}

func (s *reportService) Ingest(ctx context.Context, userId uuid.UUID, req *dto.IngestReportRequest) (*dto.IngestReportResponse, error) {
	extracted := labparse.ParseLabValues(req.OcrText)

	testDate := labparse.ExtractTestDate(req.OcrText)
	if testDate == nil {
		testDate = labparse.ExtractDateFromFilename(req.FileName)
	}

	report := &entity.LabReport{
		Id:        uuid.New(),
		UserId:    userId,
		FileName:  req.FileName,
		RawText:   req.OcrText,
		TestDate:  testDate,
		CreatedAt: time.Now(),
	}

	valueDTOs := make([]dto.LabValueDTO, 0, len(extracted))
	for testName, v := range extracted {
		refRange := v.ReferenceRange
		var refPtr *string
		if refRange != "" {
			refPtr = &refRange
		}
		report.Values = append(report.Values, &entity.LabValue{
			Id:             uuid.New(),
			LabReportId:    report.Id,
			TestName:       testName,
			Value:          v.Value,
			Unit:           v.Unit,
			RawText:        v.RawText,
			ReferenceRange: refPtr,
			MatchType:      v.MatchType,
			CreatedAt:      time.Now(),
		})
		valueDTOs = append(valueDTOs, dto.LabValueDTO{
			TestName:       testName,
			Value:          v.Value,
			Unit:           v.Unit,
			ReferenceRange: refPtr,
			MatchType:      v.MatchType,
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.LabReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Embedding runs async. The report itself is already durable.
	jobId := uuid.New().String()
	s.jobStore.Set(&store.JobStatus{
		JobID:    jobId,
		ReportID: report.Id.String(),
		State:    store.JobQueued,
	})

	payload, err := json.Marshal(dto.PublishEmbedReportMessage{
		ReportId: report.Id,
		JobId:    jobId,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.IngestReportResponse{
		ReportId:  report.Id,
		JobId:     jobId,
		TestDate:  testDate,
		Values:    valueDTOs,
		Extracted: len(valueDTOs),
	}, nil
}

func (s *reportService) List(ctx context.Context, userId uuid.UUID) ([]*dto.LabReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.LabReportRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LabReportResponse, len(reports))
	for i, report := range reports {
		res[i] = toLabReportResponse(report)
	}
	return res, nil
}

func (s *reportService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LabReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.LabReportRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperrors.NewNotFound("lab report")
	}

	return toLabReportResponse(report), nil
}

func (s *reportService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.LabReportRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if report == nil {
		return apperrors.NewNotFound("lab report")
	}

	return uow.LabReportRepository().Delete(ctx, id)
}

func (s *reportService) JobStatus(jobId string) (*dto.JobStatusResponse, error) {
	status, found := s.jobStore.Get(jobId)
	if !found {
		return nil, apperrors.NewNotFound("job")
	}

	return &dto.JobStatusResponse{
		JobId:     status.JobID,
		State:     string(status.State),
		Chunks:    status.Chunks,
		Error:     status.Error,
		UpdatedAt: status.UpdatedAt,
	}, nil
}

func toLabReportResponse(report *entity.LabReport) *dto.LabReportResponse {
	values := make([]dto.LabValueDTO, len(report.Values))
	for i, v := range report.Values {
		values[i] = dto.LabValueDTO{
			TestName:       v.TestName,
			Value:          v.Value,
			Unit:           v.Unit,
			ReferenceRange: v.ReferenceRange,
			MatchType:      v.MatchType,
		}
	}

	return &dto.LabReportResponse{
		Id:        report.Id,
		FileName:  report.FileName,
		TestDate:  report.TestDate,
		Values:    values,
		CreatedAt: report.CreatedAt,
	}
}

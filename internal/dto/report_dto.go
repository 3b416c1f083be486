package dto

import (
	"time"

	"github.com/google/uuid"
)

// PublishEmbedReportMessage is the payload queued after a lab report is
// persisted, consumed by the embedding worker.
type PublishEmbedReportMessage struct {
	ReportId uuid.UUID `json:"report_id"`
	JobId    string    `json:"job_id"`
}

// IngestReportRequest carries OCR output extracted client side. The server
// never sees the original file.
type IngestReportRequest struct {
	FileName string `json:"file_name" validate:"required"`
	OcrText  string `json:"ocr_text" validate:"required,min=10"`
}

type LabValueDTO struct {
	TestName       string  `json:"test_name"`
	Value          float64 `json:"value"`
	Unit           string  `json:"unit,omitempty"`
	ReferenceRange *string `json:"reference_range,omitempty"`
	MatchType      string  `json:"match_type"`
}

type IngestReportResponse struct {
	ReportId  uuid.UUID     `json:"report_id"`
	JobId     string        `json:"job_id"`
	TestDate  *time.Time    `json:"test_date,omitempty"`
	Values    []LabValueDTO `json:"values"`
	Extracted int           `json:"extracted"`
}

type LabReportResponse struct {
	Id        uuid.UUID     `json:"id"`
	FileName  string        `json:"file_name"`
	TestDate  *time.Time    `json:"test_date,omitempty"`
	Values    []LabValueDTO `json:"values"`
	CreatedAt time.Time     `json:"created_at"`
}

type JobStatusResponse struct {
	JobId     string    `json:"job_id"`
	State     string    `json:"state"`
	Chunks    int       `json:"chunks,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type LabReport struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	FileName  string
	RawText   string
	TestDate  *time.Time
	CreatedAt time.Time
	Values    []*LabValue
}

type LabValue struct {
	Id             uuid.UUID
	LabReportId    uuid.UUID
	TestName       string
	Value          float64
	Unit           string
	RawText        string
	ReferenceRange *string
	MatchType      string
	CreatedAt      time.Time
}

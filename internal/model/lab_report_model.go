package model

import (
	"time"

	"github.com/google/uuid"
)

type LabReport struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName  string    `gorm:"type:varchar(512);not null"`
	RawText   string    `gorm:"type:text"`
	TestDate  *time.Time
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	Values    []LabValue `gorm:"foreignKey:LabReportId"`
}

func (LabReport) TableName() string {
	return "lab_reports"
}

type LabValue struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LabReportId    uuid.UUID `gorm:"type:uuid;not null;index"`
	TestName       string    `gorm:"type:varchar(255);not null"`
	Value          float64   `gorm:"not null"`
	Unit           string    `gorm:"type:varchar(50)"`
	RawText        string    `gorm:"type:text"`
	ReferenceRange *string   `gorm:"type:varchar(100)"`
	MatchType      string    `gorm:"type:varchar(50)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (LabValue) TableName() string {
	return "lab_values"
}

package service

import (
	"testing"
	"time"

	"healthlync-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatReportDocument(t *testing.T) {
	testDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	ref := "3.5-5.0"

	report := &entity.LabReport{
		FileName: "bloodwork-2025-03-14.pdf",
		TestDate: &testDate,
		Values: []*entity.LabValue{
			{TestName: "Glucose", Value: 5.1, Unit: "mmol/L"},
			{TestName: "Potassium", Value: 4.2, Unit: "mmol/L", ReferenceRange: &ref},
		},
	}

	got := formatReportDocument(report)

	assert.Contains(t, got, "Lab Report: bloodwork-2025-03-14.pdf")
	assert.Contains(t, got, "Test Date: 2025-03-14")
	assert.Contains(t, got, "Glucose: 5.1 mmol/L")
	assert.Contains(t, got, "Potassium: 4.2 mmol/L (Reference: 3.5-5.0)")
}

func TestFormatReportDocumentWithoutDate(t *testing.T) {
	report := &entity.LabReport{
		FileName: "scan.pdf",
		Values: []*entity.LabValue{
			{TestName: "TSH", Value: 2.1, Unit: "mIU/L"},
		},
	}

	got := formatReportDocument(report)

	assert.NotContains(t, got, "Test Date:")
	assert.Contains(t, got, "TSH: 2.1 mIU/L")
}

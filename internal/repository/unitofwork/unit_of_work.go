package unitofwork

import (
	"context"

	"healthlync-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MedicalDocumentRepository() contract.MedicalDocumentRepository
	LabReportRepository() contract.LabReportRepository
}

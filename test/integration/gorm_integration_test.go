package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.MedicalDocumentRepository())
	assert.NotNil(t, uow.LabReportRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Medical Document Repository", func(t *testing.T) {
		count, err := uow.MedicalDocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("MedicalDocument count: %d", count)
	})

	t.Run("Check Lab Report Repository", func(t *testing.T) {
		count, err := uow.LabReportRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("LabReport count: %d", count)
	})
}

package service

import (
	"context"
	"testing"
	"time"

	"healthlync-be/internal/entity"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/repository/contract"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	user *entity.User
	err  error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error { return nil }
func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error { return nil }
func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error      { return nil }
func (m *mockUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return m.user, m.err
}
func (m *mockUserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (m *mockUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (m *mockUserRepository) ActivateUser(ctx context.Context, userId uuid.UUID) error { return nil }
func (m *mockUserRepository) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return nil
}
func (m *mockUserRepository) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	return nil
}
func (m *mockUserRepository) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	return nil, nil
}
func (m *mockUserRepository) DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error {
	return nil
}
func (m *mockUserRepository) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	return nil
}
func (m *mockUserRepository) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}
func (m *mockUserRepository) MarkTokenUsed(ctx context.Context, id uuid.UUID) error { return nil }

type mockLabReportRepository struct {
	values    []*entity.LabValue
	limitSeen int
	err       error
}

func (m *mockLabReportRepository) Create(ctx context.Context, report *entity.LabReport) error {
	return nil
}
func (m *mockLabReportRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (m *mockLabReportRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LabReport, error) {
	return nil, nil
}
func (m *mockLabReportRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LabReport, error) {
	return nil, nil
}
func (m *mockLabReportRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (m *mockLabReportRepository) FindValues(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.LabValue, error) {
	m.limitSeen = limit
	return m.values, m.err
}

type mockUnitOfWork struct {
	users *mockUserRepository
	labs  *mockLabReportRepository
}

func (m *mockUnitOfWork) Begin(ctx context.Context) error { return nil }
func (m *mockUnitOfWork) Commit() error                   { return nil }
func (m *mockUnitOfWork) Rollback() error                 { return nil }
func (m *mockUnitOfWork) UserRepository() contract.UserRepository {
	return m.users
}
func (m *mockUnitOfWork) MedicalDocumentRepository() contract.MedicalDocumentRepository {
	return nil
}
func (m *mockUnitOfWork) LabReportRepository() contract.LabReportRepository {
	return m.labs
}

type mockRepositoryFactory struct {
	uow unitofwork.UnitOfWork
}

func (m *mockRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return m.uow
}

func newTestUserService(users *mockUserRepository, labs *mockLabReportRepository) IUserService {
	return NewUserService(&mockRepositoryFactory{uow: &mockUnitOfWork{users: users, labs: labs}})
}

func TestBuildUserContextAssemblesProfileAndLabValues(t *testing.T) {
	birthDate := time.Now().AddDate(-45, 0, -30)
	sex := "Female"
	bloodType := "O+"

	users := &mockUserRepository{
		user: &entity.User{
			Id:            uuid.New(),
			DateOfBirth:   &birthDate,
			Sex:           &sex,
			BloodType:     &bloodType,
			FamilyHistory: []string{"heart disease", "diabetes"},
		},
	}
	labs := &mockLabReportRepository{
		// Newest first. The older Glucose reading must not win.
		values: []*entity.LabValue{
			{TestName: "Glucose", Value: 5.1, Unit: "mmol/L"},
			{TestName: "TSH", Value: 2.1, Unit: "mIU/L"},
			{TestName: "Glucose", Value: 4.9, Unit: "mmol/L"},
		},
	}

	svc := newTestUserService(users, labs)

	got, err := svc.BuildUserContext(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, got.Profile)

	assert.Equal(t, 45, got.Profile.Age)
	assert.Equal(t, "Female", got.Profile.Sex)
	assert.Equal(t, "O+", got.Profile.BloodType)
	require.Len(t, got.Profile.FamilyHistoryDetails, 2)
	assert.Equal(t, "heart disease", got.Profile.FamilyHistoryDetails[0].Condition)

	require.Len(t, got.RecentLabValues, 2)
	assert.Equal(t, 5.1, got.RecentLabValues["Glucose"].Value)
	assert.Equal(t, "mmol/L", got.RecentLabValues["Glucose"].Unit)
	assert.Equal(t, 2.1, got.RecentLabValues["TSH"].Value)

	assert.Equal(t, 20, labs.limitSeen)
}

func TestBuildUserContextWithoutLabValues(t *testing.T) {
	bloodType := "A-"
	users := &mockUserRepository{
		user: &entity.User{Id: uuid.New(), BloodType: &bloodType},
	}
	svc := newTestUserService(users, &mockLabReportRepository{})

	got, err := svc.BuildUserContext(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NotNil(t, got.Profile)
	assert.Equal(t, "A-", got.Profile.BloodType)
	assert.Zero(t, got.Profile.Age)
	assert.Nil(t, got.RecentLabValues)
}

func TestBuildUserContextUserNotFound(t *testing.T) {
	svc := newTestUserService(&mockUserRepository{}, &mockLabReportRepository{})

	_, err := svc.BuildUserContext(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

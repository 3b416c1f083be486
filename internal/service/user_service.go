package service

import (
	"context"
	"time"

	"healthlync-be/internal/dto"
	"healthlync-be/internal/pkg/apperrors"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/pkg/rag/profile"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error

	// BuildUserContext assembles the Q&A enrichment payload from the stored
	// profile and the user's most recent lab values.
	BuildUserContext(ctx context.Context, userId uuid.UUID) (*profile.UserContext, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}

	return &dto.UserProfileResponse{
		Id:            user.Id,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          string(user.Role),
		Status:        string(user.Status),
		DateOfBirth:   user.DateOfBirth,
		Sex:           user.Sex,
		BloodType:     user.BloodType,
		FamilyHistory: user.FamilyHistory,
		CreatedAt:     user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user")
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Sex != nil {
		user.Sex = req.Sex
	}
	if req.BloodType != nil {
		user.BloodType = req.BloodType
	}
	if req.FamilyHistory != nil {
		user.FamilyHistory = req.FamilyHistory
	}

	return repo.Update(ctx, user)
}

func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().Delete(ctx, userId)
}

func ageFromBirthDate(birthDate time.Time) int {
	now := time.Now()
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	return age
}

func (s *userService) BuildUserContext(ctx context.Context, userId uuid.UUID) (*profile.UserContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user")
	}

	p := &profile.Profile{}
	if user.DateOfBirth != nil {
		p.Age = ageFromBirthDate(*user.DateOfBirth)
	}
	if user.Sex != nil {
		p.Sex = *user.Sex
	}
	if user.BloodType != nil {
		p.BloodType = *user.BloodType
	}
	for _, condition := range user.FamilyHistory {
		p.FamilyHistoryDetails = append(p.FamilyHistoryDetails, profile.FamilyCondition{Condition: condition})
	}

	userContext := &profile.UserContext{Profile: p}

	values, err := uow.LabReportRepository().FindValues(ctx, userId, 20)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		userContext.RecentLabValues = make(map[string]profile.LabValueSummary, len(values))
		for _, v := range values {
			// Values arrive newest first. Keep the most recent per test.
			if _, seen := userContext.RecentLabValues[v.TestName]; seen {
				continue
			}
			userContext.RecentLabValues[v.TestName] = profile.LabValueSummary{
				Value: v.Value,
				Unit:  v.Unit,
			}
		}
	}

	return userContext, nil
}

package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"healthlync-be/internal/dto"
	"healthlync-be/pkg/rag/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	contextRes    *profile.UserContext
	contextErr    error
	contextUserId uuid.UUID
}

func (m *mockUserService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	return nil, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	return nil
}

func (m *mockUserService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	return nil
}

func (m *mockUserService) BuildUserContext(ctx context.Context, userId uuid.UUID) (*profile.UserContext, error) {
	m.contextUserId = userId
	return m.contextRes, m.contextErr
}

func signTestToken(t *testing.T, secret string, userId uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestGetContextReturnsUserContext(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userId := uuid.New()
	svc := &mockUserService{
		contextRes: &profile.UserContext{
			Profile: &profile.Profile{Age: 45, Sex: "Female", BloodType: "O+"},
			RecentLabValues: map[string]profile.LabValueSummary{
				"Glucose": {Value: 5.1, Unit: "mmol/L"},
			},
		},
	}

	app := fiber.New()
	NewUserController(svc).RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest("GET", "/api/user/context", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", userId))

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, userId, svc.contextUserId)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	prof, ok := data["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "O+", prof["bloodType"])
	assert.Equal(t, float64(45), prof["age"])

	values, ok := data["recentLabValues"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, values, "Glucose")
}

func TestGetContextRequiresToken(t *testing.T) {
	app := fiber.New()
	NewUserController(&mockUserService{}).RegisterRoutes(app.Group("/api"))

	req := httptest.NewRequest("GET", "/api/user/context", nil)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

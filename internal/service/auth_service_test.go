package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

type authRepoMock struct {
	user          *models.User
	findErr       error
	lastLoginErr  error
	lastLoginUser string
}

func (m *authRepoMock) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.user, nil
}

func (m *authRepoMock) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.user, nil
}

func (m *authRepoMock) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUser = id
	return m.lastLoginErr
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(repo *authRepoMock) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "umeed-api-test",
	})
}

func TestAuthServiceLoginIssuesVerifiableToken(t *testing.T) {
	repo := &authRepoMock{user: &models.User{
		ID:           "u-1",
		Email:        "admin@umeed.ai",
		Name:         "Admin",
		Role:         models.RoleAdmin,
		PasswordHash: hashPassword(t, "correct horse"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@umeed.ai", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "u-1", repo.lastLoginUser)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "umeed-api-test", claims.Issuer)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &authRepoMock{user: &models.User{
		ID:           "u-1",
		Email:        "admin@umeed.ai",
		Role:         models.RoleAdmin,
		PasswordHash: hashPassword(t, "correct horse"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@umeed.ai", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownEmailSameError(t *testing.T) {
	repo := &authRepoMock{findErr: sql.ErrNoRows}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@umeed.ai", Password: "whatever"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo := &authRepoMock{user: &models.User{
		ID:           "u-2",
		Email:        "former@umeed.ai",
		Role:         models.RoleMentor,
		PasswordHash: hashPassword(t, "correct horse"),
		Active:       false,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "former@umeed.ai", Password: "correct horse"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestAuthServiceLoginInvalidPayload(t *testing.T) {
	svc := newTestAuthService(&authRepoMock{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAuthServiceLoginSurvivesLastLoginFailure(t *testing.T) {
	repo := &authRepoMock{
		user: &models.User{
			ID:           "u-1",
			Email:        "admin@umeed.ai",
			Role:         models.RoleAdmin,
			PasswordHash: hashPassword(t, "correct horse"),
			Active:       true,
		},
		lastLoginErr: sql.ErrConnDone,
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@umeed.ai", Password: "correct horse"})
	require.NoError(t, err)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	repo := &authRepoMock{user: &models.User{
		ID:           "u-1",
		Email:        "admin@umeed.ai",
		Role:         models.RoleAdmin,
		PasswordHash: hashPassword(t, "correct horse"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@umeed.ai", Password: "correct horse"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{AccessTokenSecret: "different-secret", AccessTokenExpiry: time.Hour})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

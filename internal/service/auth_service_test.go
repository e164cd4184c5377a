package service_test

import (
	"context"
	"testing"

	"almacen/internal/apierror"
	"almacen/internal/config"
	"almacen/internal/dto"
	"almacen/internal/model"
	"almacen/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func buildAuthSvc() (service.AuthService, *stubOperatorRepo) {
	repo := newStubOperatorRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func seedOperator(repo *stubOperatorRepo, username, password, role string) *model.Operator {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	o := &model.Operator{
		ID:           uuid.New(),
		Username:     username,
		Name:         "Test",
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	repo.operators[o.ID] = o
	return o
}

func TestLoginSuccess(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedOperator(repo, "ana", "secreto", "admin")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedOperator(repo, "ana", "secreto", "admin")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "otro"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedOperator(repo, "ana", "secreto", "operator")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "ana", refreshed.User.Username)
}

func TestRefreshRejectsDeactivatedOperator(t *testing.T) {
	svc, repo := buildAuthSvc()
	op := seedOperator(repo, "ana", "secreto", "operator")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreto"})
	require.NoError(t, err)

	op.Active = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := buildAuthSvc()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCreateOperatorDuplicateUsername(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedOperator(repo, "ana", "secreto", "admin")

	_, err := svc.CreateOperator(context.Background(), dto.CreateOperatorRequest{
		Username: "ana",
		Name:     "Otra Ana",
		Password: "1234",
		Role:     "operator",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestListOperatorsFiltersInactive(t *testing.T) {
	svc, repo := buildAuthSvc()
	seedOperator(repo, "ana", "secreto", "admin")
	inactive := seedOperator(repo, "borrado", "secreto", "operator")
	inactive.Active = false

	active, err := svc.ListOperators(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListOperators(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

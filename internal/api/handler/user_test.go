package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pvilarim/ecomdash-api/internal/domain"
	"github.com/pvilarim/ecomdash-api/internal/usecases/authenticating"
	authmocks "github.com/pvilarim/ecomdash-api/internal/usecases/authenticating/mocks"
	"github.com/pvilarim/ecomdash-api/pkg/apiErrors"
)

func TestCreateUserSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := authmocks.NewMockAuthenticator(ctrl)

	service.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
		assert.Equal(t, "Maria", user.Name)
		assert.Equal(t, "Silva", user.Lastname)
		assert.Equal(t, "Senha@123", user.PasswordHash)

		user.ID = 7
		user.PasswordHash = "$2a$10$hash"
		return user, nil
	})

	body := `{"name":"Maria","lastname":"Silva","email":"maria@loja.com","password":"Senha@123"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateUser(service).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "maria@loja.com")
	// O hash da senha nunca sai na resposta.
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
}

func TestCreateUserMissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := authmocks.NewMockAuthenticator(ctrl)

	body := `{"name":"Maria","email":"maria@loja.com"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateUser(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrMissingRequiredData)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := authmocks.NewMockAuthenticator(ctrl)

	service.EXPECT().CreateUser(gomock.Any()).Return(nil, authenticating.NewAuthError(
		authenticating.ErrUserAlreadyExists,
		apiErrors.ErrUserAlreadyExists,
		"Email já cadastrado",
	))

	body := `{"name":"Maria","lastname":"Silva","email":"maria@loja.com","password":"Senha@123"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateUser(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrUserAlreadyExists)
}

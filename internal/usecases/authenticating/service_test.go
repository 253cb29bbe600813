package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pvilarim/ecomdash-api/infrastructure/repository/mocks"
	"github.com/pvilarim/ecomdash-api/internal/config"
	"github.com/pvilarim/ecomdash-api/internal/domain"
)

func jwtNumericDate(t time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(t)
}

func signClaims(claims domain.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func testConfig() *config.Config {
	return &config.Config{SecretKey: "segredo-de-teste"}
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	user := &domain.User{
		ID:           1,
		Name:         "Ana",
		Lastname:     "Souza",
		Email:        "ana@loja.com",
		PasswordHash: hashedPassword(t, "Senha@123"),
		Active:       true,
		RoleID:       1,
	}

	userRepo.EXPECT().GetUserByEmail("ana@loja.com").Return(user, nil)

	token, err := service.LoginUser("Ana@Loja.com ", "Senha@123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "ana@loja.com", claims.UserEmail)
}

func TestLoginUserWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	user := &domain.User{
		ID:           1,
		Email:        "ana@loja.com",
		PasswordHash: hashedPassword(t, "Senha@123"),
		Active:       true,
	}

	userRepo.EXPECT().GetUserByEmail("ana@loja.com").Return(user, nil)

	token, err := service.LoginUser("ana@loja.com", "senha-errada")

	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestLoginUserInactiveAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	user := &domain.User{
		ID:           1,
		Email:        "ana@loja.com",
		PasswordHash: hashedPassword(t, "Senha@123"),
		Active:       false,
	}

	userRepo.EXPECT().GetUserByEmail("ana@loja.com").Return(user, nil)

	_, err := service.LoginUser("ana@loja.com", "Senha@123")

	assert.Error(t, err)
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	userRepo.EXPECT().GetUserByEmail("ana@loja.com").Return(nil, nil)
	userRepo.EXPECT().CreateUser(gomock.Any()).DoAndReturn(func(user *domain.User) (*domain.User, error) {
		assert.NotEqual(t, "Senha@123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
		assert.Equal(t, 3, user.RoleID)
		assert.False(t, user.Active)
		user.ID = 10
		return user, nil
	})

	created, err := service.CreateUser(&domain.User{
		Name:         "Ana",
		Lastname:     "Souza",
		Email:        " Ana@Loja.com",
		PasswordHash: "Senha@123",
	})

	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(userRepo, testConfig())

	userRepo.EXPECT().GetUserByEmail("ana@loja.com").Return(&domain.User{ID: 1}, nil)

	_, err := service.CreateUser(&domain.User{
		Name:         "Ana",
		Lastname:     "Souza",
		Email:        "ana@loja.com",
		PasswordHash: "Senha@123",
	})

	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	cfg := testConfig()
	service := NewService(userRepo, cfg).(*Service)

	user := &domain.User{ID: 1, Email: "ana@loja.com", Active: true}

	claims := domain.Claims{
		UserID:    user.ID,
		UserEmail: user.Email,
	}
	claims.ExpiresAt = jwtNumericDate(time.Now().Add(-time.Hour))

	token, err := signClaims(claims, cfg.SecretKey)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	service := &Service{}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "senha forte", password: "Senha@123", valid: true},
		{name: "muito curta", password: "Se@1", valid: false},
		{name: "sem maiúscula", password: "senha@123", valid: false},
		{name: "sem minúscula", password: "SENHA@123", valid: false},
		{name: "sem número", password: "Senha@abc", valid: false},
		{name: "sem caractere especial", password: "Senha1234", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

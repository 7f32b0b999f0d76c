package service

import (
	"context"
	"testing"
	"time"

	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/garudaai/umkm-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *utils.JWTManager) {
	db := newTestDB(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), jwtManager), jwtManager
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, jwtManager := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterInput{
		Name:     "Andi",
		Email:    "andi@example.com",
		Password: "rahasia-sekali",
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "rahasia-sekali", user.Password)

	result, err := svc.Login(ctx, &LoginInput{Email: "andi@example.com", Password: "rahasia-sekali"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)

	claims, err := jwtManager.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "andi@example.com", claims.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "Andi", Email: "andi@example.com", Password: "rahasia-sekali"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "andi@example.com", Password: "salah-total"})
	require.Error(t, err)
	assert.Equal(t, "Email atau password salah", err.Error())
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &LoginInput{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, "Email atau password salah", err.Error())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "Andi", Email: "andi@example.com", Password: "rahasia-sekali"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Name: "Andi Kedua", Email: "andi@example.com", Password: "rahasia-lain"})
	require.Error(t, err)
	assert.Equal(t, "Email sudah terdaftar", err.Error())
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &RegisterInput{Name: "Andi", Email: "andi@example.com", Password: "pendek"})
	require.Error(t, err)
	assert.Equal(t, "Password minimal 8 karakter", err.Error())
}

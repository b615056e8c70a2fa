package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanquest/internal/config"
	"cleanquest/internal/models"
	"cleanquest/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidAdminSecret = errors.New("неверный секретный ключ администратора")
	ErrRoleMismatch       = errors.New("роль пользователя не совпадает с запрошенной")
)

type AuthService interface {
	Signup(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, password, role string) (*models.User, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserFromToken(tokenString string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Signup(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = "user"
	}

	// Регистрация администратора закрыта общим секретом
	if role == "admin" && req.SecretKey != s.cfg.AdminSecretKey {
		return nil, ErrInvalidAdminSecret
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("пользователь %s уже существует", req.Username)
	}

	user := &models.User{
		Username: req.Username,
		Role:     role,
	}

	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

// Login проверяет пароль (bcrypt) и, если указана роль, её соответствие
func (s *authService) Login(ctx context.Context, username, password, role string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	if role != "" && user.Role != role {
		return nil, "", ErrRoleMismatch
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	user := &models.User{
		UserID:   claims["userId"].(string),
		Username: claims["username"].(string),
		Role:     claims["role"].(string),
	}

	return user, nil
}

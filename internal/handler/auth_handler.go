package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"unicode/utf8"

	"cleanquest/internal/repository"
	"cleanquest/internal/service"
)

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role"`
	SecretKey string `json:"secretKey"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// password verification
	if utf8.RuneCountInString(req.Password) < 6 {
		WriteError(w, "Пароль должен быть не менее 6 символов", http.StatusBadRequest)
		return
	}

	// role verification
	roleSlice := []string{"", "user", "admin"}
	if !slices.Contains(roleSlice, req.Role) {
		WriteError(w, "Роль должна быть user или admin", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
		SecretKey: req.SecretKey,
	}

	user, err := h.AuthService.Signup(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdminSecret) {
			WriteError(w, "Неверный секретный ключ администратора", http.StatusForbidden)
			return
		}
		if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Имя пользователя уже занято", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message": "Пользователь зарегистрирован",
		"user": UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	user, accessToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		// Несовпадение роли — отдельный отказ, не "неверный пароль"
		if errors.Is(err, service.ErrRoleMismatch) {
			WriteError(w, "Доступ запрещён: у пользователя другая роль", http.StatusForbidden)
			return
		}
		WriteError(w, "Неверное имя пользователя или пароль", http.StatusBadRequest)
		return
	}

	response := AuthResponse{
		AccessToken: accessToken,
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

// Me возвращает пользователя из JWT, положенного в контекст middleware
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	username, _ := r.Context().Value("username").(string)
	role, _ := r.Context().Value("role").(string)

	WriteSuccess(w, UserResponse{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, http.StatusOK)
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
}

type UsersHandler struct {
	users UserService
}

func NewUsersHandler(users UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

type CredentialsRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponseDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type LoginResponseDTO struct {
	ID      int64  `json:"id"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// POST /users
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "Username and password required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrConflict) {
		respondError(w, http.StatusBadRequest, "already_exists", "User already exists")
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, RegisterResponseDTO{
		ID:       user.ID,
		Username: user.Username,
		Message:  "User created successfully",
	})
}

// POST /users/login
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "Username and password required")
		return
	}

	res, err := h.users.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username/password")
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{
		ID:      res.UserID,
		Token:   res.Token,
		Message: "Login successful",
	})
}

// GET /users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

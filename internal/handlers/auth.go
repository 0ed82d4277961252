package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plategate/apiserver/internal/auth"
	"github.com/plategate/apiserver/internal/services"
	"github.com/plategate/apiserver/internal/store"
	"github.com/plategate/apiserver/internal/validate"
	"github.com/plategate/apiserver/types"
	"github.com/rs/zerolog"
)

// AuthHandler provides login, registration and the bearer-token check.
type AuthHandler struct {
	userService *services.UserService
	tokens      *auth.TokenService
	logger      zerolog.Logger
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, tokens *auth.TokenService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		logger:      logger,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, tokens *auth.TokenService, logger zerolog.Logger) {
	handler := NewAuthHandler(userService, tokens, logger)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Get("/auth", handler.Auth)
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type AuthResponse struct {
	Users []types.User `json:"users"`
}

// Register creates a user account after full format validation and a
// duplicate-username check.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please enter username or password")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please enter username or password")
		return
	}
	if err := validate.Username(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Password(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("hash password")
		writeInternalError(w)
		return
	}

	user, err := h.userService.Create(r.Context(), types.User{
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		h.logger.Error().Err(err).Msg("create user")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: "User registered successfully",
		Result:  user,
	})
}

// Login verifies credentials and returns a signed bearer token. Unknown
// username and wrong password yield the same message so the response does
// not reveal which accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Please enter username or password")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Please enter username or password")
		return
	}
	if err := validate.Username(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Password(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.logger.Error().Err(err).Msg("look up user")
		writeInternalError(w)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.tokens.IssueToken(user.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("issue token")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}

// Auth verifies the bearer token, confirms the claimed user still exists,
// and returns the caller's own record.
func (h *AuthHandler) Auth(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, http.StatusUnauthorized, "Authorization header missing")
		return
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		writeError(w, http.StatusUnauthorized, "Token missing")
		return
	}

	claims, err := h.tokens.VerifyToken(strings.TrimSpace(parts[1]))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	// Tokens can outlive their user; re-check before trusting the claim.
	user, err := h.userService.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Msg("look up token user")
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Users: []types.User{user}})
}

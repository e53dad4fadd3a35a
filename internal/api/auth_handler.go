package api

import (
	"net/http"

	"github.com/phrazzld/genops-api/internal/service"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithAuth(w, r, http.StatusCreated, result)
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondWithAuth(w, r, http.StatusOK, result)
}

func respondWithAuth(w http.ResponseWriter, r *http.Request, status int, result *service.AuthResult) {
	RespondWithJSON(w, r, status, AuthResponse{
		Status:    statusSuccess,
		UserID:    result.Identity.UserID,
		Username:  result.Identity.Username,
		Token:     result.Token,
		ExpiresAt: formatExpiry(result.ExpiresAt),
	})
}

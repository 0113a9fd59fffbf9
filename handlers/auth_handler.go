package handlers

import (
	"encoding/json"
	"net/http"

	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/utils/errors"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the operator password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Password == "" {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	token, err := h.authService.Login(input.Password)
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "LOGIN_ERROR", "Failed to login", http.StatusUnauthorized))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

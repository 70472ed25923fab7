package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dpearce/inkwell/internal/apperr"
	"github.com/dpearce/inkwell/internal/metrics"
	"github.com/dpearce/inkwell/internal/middleware"
	"github.com/dpearce/inkwell/internal/models"
	"github.com/dpearce/inkwell/internal/service"
	"github.com/go-playground/validator/v10"
)

// ==========================
// AuthHandler
// ==========================
type AuthHandler struct {
	Auth *service.AuthService
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,min=2,max=64"`
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=6,max=72"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, tok, err := h.Auth.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.RegistrationsTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(authResponse{Token: tok, User: user})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, tok, err := h.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		WriteError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{Token: tok, User: user})
}

// ==========================
// Me (who am I)
// ==========================
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, apperr.ErrUnauthenticated)
		return
	}

	user, err := h.Auth.Whoami(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

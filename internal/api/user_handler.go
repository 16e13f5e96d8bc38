package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/signup-api/internal/api/shared"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/service"
)

// UserHandler handles user account requests.
type UserHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts service.AccountService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		accounts: accounts,
		logger:   logger.With("component", "user_handler"),
	}
}

// Signup handles POST /users/signup: it registers the user and returns the
// account together with its first API key.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SignupRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Debug("failed to decode signup request", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	user, apiKey, err := h.accounts.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		status := MapErrorToStatusCode(err)
		message := GetSafeErrorMessage(err)
		if status == http.StatusInternalServerError {
			message = msgSignupFailed
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, msgSignupSucceeded, SignupResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		APIKey:   apiKey,
	})
}

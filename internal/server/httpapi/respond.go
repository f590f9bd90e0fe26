package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wekip/internal/common"
	"github.com/dmitrijs2005/wekip/internal/server/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.Message{Message: msg})
}

// writeError maps service errors to the messages the client shows.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailNotVerified):
		writeMessage(w, http.StatusBadRequest, "Email not verified")
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, common.ErrorInvalidOTP):
		writeMessage(w, http.StatusBadRequest, "Invalid or expired otp")
	case errors.Is(err, common.ErrorAlreadyVerified):
		writeMessage(w, http.StatusBadRequest, "Email already verified")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, "User already exists")
	case errors.Is(err, common.ErrorValidation):
		writeMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	default:
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

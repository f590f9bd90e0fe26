package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/wekip/internal/server/models"
	"github.com/dmitrijs2005/wekip/internal/server/receipts"
	"github.com/dmitrijs2005/wekip/internal/server/users"
)

func owner(u *users.User) models.Owner {
	return models.Owner{Email: u.Email, Username: u.Username}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: owner(u)})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	_, key, err := h.users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.RegisterResponse{VerificationKey: key})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyEmailRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Group != "user" {
		writeMessage(w, http.StatusBadRequest, "Unknown group")
		return
	}

	if err := h.users.VerifyEmail(r.Context(), req.Token); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email verified")
}

// ResendCode issues a new email verification code.
func (h *Handler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.users.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "OTP sent")
}

// ForgotPassword issues a password reset code.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "OTP sent")
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.users.ChangePassword(r.Context(), req.Email, req.OTP, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password changed")
}

// ListReceipts serves both the dashboard (limit) and the filtered list
// (start_date, end_date, search).
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	qs := r.URL.Query()

	var q receipts.Query
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = n
	}
	for name, dst := range map[string]*time.Time{"start_date": &q.Start, "end_date": &q.End} {
		v := qs.Get(name)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid "+name)
			return
		}
		*dst = t
	}
	q.Search = qs.Get("search")

	groups := h.receipts.List(r.Context(), u.ID, owner(u), q)
	writeJSON(w, http.StatusOK, models.Page[models.GroupedReceipt]{Limit: q.Limit, Results: groups})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	writeJSON(w, http.StatusOK, h.receipts.Stats(r.Context(), u.ID, owner(u)))
}

func (h *Handler) ShareCode(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())

	sc, err := h.receipts.NewShareCode(r.Context(), u.ID)
	if err != nil {
		h.logger.Error(r.Context(), "share code", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// CheckShareCode reports whether code is live and belongs to the caller.
func (h *Handler) CheckShareCode(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())

	id, err := h.receipts.Owner(r.Context(), mux.Vars(r)["code"])
	if err != nil || id != u.ID {
		writeMessage(w, http.StatusNotFound, "Share code not found")
		return
	}
	writeMessage(w, http.StatusOK, "Share code is valid")
}

// Package httpapi exposes the development API over HTTP with gorilla/mux.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/wekip/internal/logging"
	"github.com/dmitrijs2005/wekip/internal/server/receipts"
	"github.com/dmitrijs2005/wekip/internal/server/users"
)

type Handler struct {
	users    *users.Service
	receipts *receipts.Store
	logger   logging.Logger
}

func NewHandler(us *users.Service, rs *receipts.Store, logger logging.Logger) *Handler {
	return &Handler{users: us, receipts: rs, logger: logger}
}

// Router registers every endpoint. Private routes sit behind the bearer
// token middleware.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "OK")
	}).Methods(http.MethodGet)

	a := r.PathPrefix("/auth").Subrouter()
	a.HandleFunc("/user/login", h.Login).Methods(http.MethodPost)
	a.HandleFunc("/user/register", h.Register).Methods(http.MethodPost)
	a.HandleFunc("/verify-email", h.VerifyEmail).Methods(http.MethodPost)
	a.HandleFunc("/get_otp", h.ResendCode).Methods(http.MethodPost)
	a.HandleFunc("/forgot-password", h.ForgotPassword).Methods(http.MethodPost)
	a.HandleFunc("/change-password", h.ChangePassword).Methods(http.MethodPost)

	p := r.PathPrefix("/receipt").Subrouter()
	p.Use(h.requireToken)
	p.HandleFunc("", h.ListReceipts).Methods(http.MethodGet)
	p.HandleFunc("/stats", h.Stats).Methods(http.MethodGet)
	p.HandleFunc("/share-code", h.ShareCode).Methods(http.MethodPost)
	p.HandleFunc("/share-code/{code}", h.CheckShareCode).Methods(http.MethodGet)

	return r
}

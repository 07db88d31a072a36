package kms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/petguard/internal/common"
	"github.com/dmitrijs2005/petguard/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes caps a user-decrypt request body.
const maxBodyBytes = 64 << 10

type decrypter interface {
	Keys() KeysResponse
	Decrypt(ctx context.Context, req *UserDecryptRequest) (*UserDecryptResponse, error)
}

type Handler struct {
	svc    decrypter
	logger logging.Logger
}

func NewHandler(svc decrypter, logger logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.With("module", "kms_http")}
}

// Routes builds the KMS router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(h.requestID)

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/keys", h.keys)
		r.Post("/user-decrypt", h.userDecrypt)
	})

	return r
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)

		ctx := logging.WithRequestID(r.Context(), id)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		h.logger.Debug(ctx, "http", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "elapsed", time.Since(start))
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) keys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Keys())
}

func (h *Handler) userDecrypt(w http.ResponseWriter, r *http.Request) {
	var req UserDecryptRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	resp, err := h.svc.Decrypt(r.Context(), &req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, common.ErrDenied):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: common.ErrDenied.Error()})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: common.ErrUnavailable.Error()})
	default:
		h.logger.Error(r.Context(), "user decrypt", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: common.ErrorInternal.Error()})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

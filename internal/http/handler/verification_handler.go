package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

type VerificationHandler struct {
	svc        service.VerificationService
	translator *i18n.Translator
}

func NewVerificationHandler(svc service.VerificationService, translator *i18n.Translator) *VerificationHandler {
	return &VerificationHandler{svc: svc, translator: translator}
}

func (h *VerificationHandler) RequestManualVerification(w http.ResponseWriter, r *http.Request) {
	certificateID, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid certificate id", nil)
		return
	}
	var body struct {
		EmployerID string `json:"employer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	employerID := strings.TrimSpace(body.EmployerID)
	if employerID == "" {
		employerID = strings.TrimSpace(r.Header.Get(observability.ActorHeader))
	}

	req, err := h.svc.RequestManualVerification(r.Context(), service.RequestVerificationInput{
		CertificateID: certificateID,
		EmployerID:    employerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCertificateNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "certificate not found", nil)
		case service.IsValidationError(err):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to request verification", nil)
		}
		return
	}

	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "verification_request.create",
		TargetType: "certificate",
		TargetID:   certificateID,
		Action:     "request_verification",
		Outcome:    "success",
		Reason:     "verification_requested",
	}, "verification_request_id", req.ID, "employer_id", req.EmployerID)
	response.JSON(w, r, http.StatusCreated, req)
}

func (h *VerificationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	certificateID, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid certificate id", nil)
		return
	}
	reqs, err := h.svc.ListRequests(r.Context(), certificateID)
	if err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "certificate not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list verification requests", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, reqs)
}

// Classify evaluates the decision rule for caller-supplied signals. Nothing is stored.
func (h *VerificationHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var signals verification.Signals
	if err := json.NewDecoder(r.Body).Decode(&signals); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	res, err := h.svc.Classify(r.Context(), signals)
	if err != nil {
		if service.IsValidationError(err) {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to classify signals", nil)
		return
	}
	lang := middleware.LanguageFromContext(r.Context())
	response.JSON(w, r, http.StatusOK, map[string]any{
		"status":       res.Status,
		"status_label": h.translator.StatusLabel(lang, res.Status),
		"signals":      res.Signals,
	})
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
)

// certificateView is the HTTP shape of a certificate. Expiry and the status
// label depend on the request time and language, so they are computed per read.
type certificateView struct {
	domain.Certificate
	StatusLabel string              `json:"status_label"`
	Expiry      domain.ExpiryStatus `json:"expiry"`
}

type CertificateHandler struct {
	svc        service.CertificateService
	translator *i18n.Translator
	now        func() time.Time
}

func NewCertificateHandler(svc service.CertificateService, translator *i18n.Translator) *CertificateHandler {
	return &CertificateHandler{svc: svc, translator: translator, now: time.Now}
}

func (h *CertificateHandler) view(r *http.Request, c domain.Certificate) certificateView {
	lang := middleware.LanguageFromContext(r.Context())
	return certificateView{
		Certificate: c,
		StatusLabel: h.translator.StatusLabel(lang, c.VerificationStatus),
		Expiry:      domain.ExpiryStatusAt(c, h.now()),
	}
}

func (h *CertificateHandler) views(r *http.Request, certs []domain.Certificate) []certificateView {
	out := make([]certificateView, 0, len(certs))
	for _, c := range certs {
		out = append(out, h.view(r, c))
	}
	return out
}

func (h *CertificateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LearnerID  string `json:"learner_id"`
		Title      string `json:"title"`
		Issuer     string `json:"issuer"`
		DateIssued string `json:"date_issued"`
		ExpiryDate string `json:"expiry_date"`
		NSQFLevel  int    `json:"nsqf_level"`
		FileURL    string `json:"file_url"`
		LinkURL    string `json:"link_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	input := service.CreateCertificateInput{
		LearnerID: body.LearnerID,
		Title:     body.Title,
		Issuer:    body.Issuer,
		NSQFLevel: body.NSQFLevel,
		FileURL:   body.FileURL,
		LinkURL:   body.LinkURL,
	}
	if strings.TrimSpace(body.DateIssued) != "" {
		issued, err := parseDate("date_issued", body.DateIssued)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		input.DateIssued = issued
	}
	if strings.TrimSpace(body.ExpiryDate) != "" {
		expiry, err := parseDate("expiry_date", body.ExpiryDate)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		input.ExpiryDate = &expiry
	}

	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		if service.IsValidationError(err) {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create certificate", nil)
		return
	}

	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "certificate.create",
		TargetType: "certificate",
		TargetID:   created.ID,
		Action:     "create",
		Outcome:    "success",
		Reason:     "certificate_created",
	}, "learner_id", created.LearnerID, "verification_status", string(created.VerificationStatus))
	response.JSON(w, r, http.StatusCreated, h.view(r, *created))
}

func (h *CertificateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid certificate id", nil)
		return
	}
	cert, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "certificate not found", nil)
			return
		}
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to load certificate", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, h.view(r, *cert))
}

func (h *CertificateHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCertificateFilter(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	pageReq, paged, err := parsePageRequest(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	certs, err := h.svc.ListAll(r.Context(), filter)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list certificates", nil)
		return
	}
	h.writeList(w, r, certs, pageReq, paged)
}

func (h *CertificateHandler) ListByLearner(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid learner id", nil)
		return
	}
	filter, err := parseCertificateFilter(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	pageReq, paged, err := parsePageRequest(r)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	certs, err := h.svc.ListByLearner(r.Context(), learnerID, filter)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list certificates", nil)
		return
	}
	h.writeList(w, r, certs, pageReq, paged)
}

func (h *CertificateHandler) writeList(w http.ResponseWriter, r *http.Request, certs []domain.Certificate, pageReq repository.PageRequest, paged bool) {
	views := h.views(r, certs)
	if !paged {
		response.JSON(w, r, http.StatusOK, views)
		return
	}
	res := repository.PageSlice(views, pageReq)
	response.JSON(w, r, http.StatusOK, paginatedData(res.Items, res.Page, res.PageSize, res.Total, res.TotalPages))
}

func (h *CertificateHandler) StatsForLearner(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid learner id", nil)
		return
	}
	stats, err := h.svc.StatsForLearner(r.Context(), learnerID)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to compute certificate stats", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, stats)
}

func (h *CertificateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid certificate id", nil)
		return
	}
	var body struct {
		Title      *string         `json:"title"`
		Issuer     *string         `json:"issuer"`
		DateIssued *string         `json:"date_issued"`
		ExpiryDate json.RawMessage `json:"expiry_date"`
		NSQFLevel  *int            `json:"nsqf_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	input := service.UpdateCertificateInput{
		Title:     body.Title,
		Issuer:    body.Issuer,
		NSQFLevel: body.NSQFLevel,
	}
	if body.DateIssued != nil {
		issued, err := parseDate("date_issued", *body.DateIssued)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		input.DateIssued = &issued
	}
	// expiry_date: absent leaves it unchanged, null clears it.
	if len(body.ExpiryDate) > 0 {
		if bytes.Equal(bytes.TrimSpace(body.ExpiryDate), []byte("null")) {
			input.ClearExpiryDate = true
		} else {
			var raw string
			if err := json.Unmarshal(body.ExpiryDate, &raw); err != nil {
				response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "expiry_date must be a string or null", nil)
				return
			}
			expiry, err := parseDate("expiry_date", raw)
			if err != nil {
				response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
				return
			}
			input.ExpiryDate = &expiry
		}
	}

	updated, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCertificateNotFound):
			response.Error(w, r, http.StatusNotFound, "NOT_FOUND", "certificate not found", nil)
		case service.IsValidationError(err):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to update certificate", nil)
		}
		return
	}

	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "certificate.update",
		TargetType: "certificate",
		TargetID:   id,
		Action:     "update",
		Outcome:    "success",
		Reason:     "certificate_updated",
	}, "learner_id", updated.LearnerID)
	response.JSON(w, r, http.StatusOK, h.view(r, *updated))
}

func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid certificate id", nil)
		return
	}
	if err := h.svc.DeleteByID(r.Context(), id); err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to delete certificate", nil)
		return
	}

	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "certificate.delete",
		TargetType: "certificate",
		TargetID:   id,
		Action:     "delete",
		Outcome:    "success",
		Reason:     "certificate_deleted",
	})
	response.JSON(w, r, http.StatusOK, map[string]any{"deleted": true})
}

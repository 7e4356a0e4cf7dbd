package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/observability"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
)

// multipartOverhead leaves room for form boundaries and the learner_id field.
const multipartOverhead = 64 << 10

type EvidenceHandler struct {
	storage service.EvidenceStorage
	maxSize int64
}

func NewEvidenceHandler(storage service.EvidenceStorage, maxSize int64) *EvidenceHandler {
	return &EvidenceHandler{storage: storage, maxSize: maxSize}
}

// Upload stores one evidence file and returns the object key to send as
// file_url when creating the certificate.
func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", fmt.Sprintf("file exceeds %d bytes", h.maxSize), nil)
			return
		}
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "failed to parse multipart form", nil)
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	learnerID := strings.TrimSpace(r.FormValue("learner_id"))
	if learnerID == "" {
		learnerID = strings.TrimSpace(r.Header.Get(observability.ActorHeader))
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	obj, err := h.storage.UploadEvidence(r.Context(), learnerID, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStorageDisabled):
			response.Error(w, r, http.StatusServiceUnavailable, "STORAGE_DISABLED", "evidence storage is not configured", nil)
		case errors.Is(err, service.ErrInvalidLearnerID):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "learner_id is required", nil)
		case errors.Is(err, service.ErrFileTooBig):
			response.Error(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", fmt.Sprintf("file exceeds %d bytes", h.maxSize), nil)
		case errors.Is(err, service.ErrInvalidFileType):
			response.Error(w, r, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only PDF, JPEG and PNG files are allowed", nil)
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to store evidence file", nil)
		}
		return
	}

	data := map[string]any{
		"object_key":   obj.Key,
		"content_type": obj.ContentType,
		"size":         obj.Size,
	}
	if url, err := h.storage.EvidenceURL(r.Context(), obj.Key); err == nil {
		data["url"] = url
	}
	observability.EmitAudit(r, observability.AuditInput{
		EventName:  "evidence.upload",
		TargetType: "evidence",
		TargetID:   obj.Key,
		Action:     "upload",
		Outcome:    "success",
		Reason:     "evidence_uploaded",
	}, "learner_id", learnerID, "size", obj.Size, "content_type", obj.ContentType)
	response.JSON(w, r, http.StatusCreated, data)
}

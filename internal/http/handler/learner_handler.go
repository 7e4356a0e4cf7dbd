package handler

import (
	"net/http"

	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
)

type LearnerHandler struct {
	svc service.LearnerSearchService
}

func NewLearnerHandler(svc service.LearnerSearchService) *LearnerHandler {
	return &LearnerHandler{svc: svc}
}

// Search returns learners whose name or email contains q. Queries shorter
// than the minimum length return an empty list.
func (h *LearnerHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to search learners", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, users)
}

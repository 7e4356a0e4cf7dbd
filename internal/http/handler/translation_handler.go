package handler

import (
	"net/http"
	"strings"

	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
)

type TranslationHandler struct {
	translator *i18n.Translator
}

func NewTranslationHandler(translator *i18n.Translator) *TranslationHandler {
	return &TranslationHandler{translator: translator}
}

func (h *TranslationHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
	if lang == "" {
		lang = middleware.LanguageFromContext(r.Context())
	}
	table := h.translator.Table(lang)
	if table == nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "unsupported language", map[string]any{
			"supported": h.translator.Languages(),
		})
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{
		"language":     lang,
		"languages":    h.translator.Languages(),
		"translations": table,
	})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
)

type languageKey struct{}

// Language resolves the response language from the lang query parameter or the
// Accept-Language header and stores it on the request context.
func Language(translator *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
			if !translator.Supports(lang) {
				lang = translator.Negotiate(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

func LanguageFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(languageKey{}).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

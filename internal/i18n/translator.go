package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

const (
	English = "en"
	Hindi   = "hi"

	DefaultLanguage = English
)

var supportedTags = []language.Tag{language.English, language.Hindi}

// Translator resolves message keys against per-language tables. A key missing
// from the requested table resolves to the key itself.
type Translator struct {
	tables  map[string]map[string]string
	matcher language.Matcher
}

func NewTranslator() *Translator {
	return &Translator{
		tables: map[string]map[string]string{
			English: englishTable,
			Hindi:   hindiTable,
		},
		matcher: language.NewMatcher(supportedTags),
	}
}

func (t *Translator) Supports(lang string) bool {
	_, ok := t.tables[lang]
	return ok
}

func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func (t *Translator) T(lang, key string) string {
	if table, ok := t.tables[lang]; ok {
		if v, ok := table[key]; ok && v != "" {
			return v
		}
	}
	return key
}

// Table returns a copy of the table for lang, or nil when lang is unsupported.
func (t *Translator) Table(lang string) map[string]string {
	table, ok := t.tables[lang]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Negotiate picks the best supported language for an Accept-Language header
// value, falling back to DefaultLanguage.
func (t *Translator) Negotiate(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	base, _ := supportedTags[idx].Base()
	if !t.Supports(base.String()) {
		return DefaultLanguage
	}
	return base.String()
}

var statusKeys = map[domain.VerificationStatus]string{
	domain.StatusVerified:    "status.verified",
	domain.StatusAIScored:    "status.aiScored",
	domain.StatusNeedsReview: "status.needsReview",
	domain.StatusPending:     "status.pending",
}

// StatusLabel is the display label of a verification status.
func (t *Translator) StatusLabel(lang string, status domain.VerificationStatus) string {
	key, ok := statusKeys[status]
	if !ok {
		return string(status)
	}
	return t.T(lang, key)
}

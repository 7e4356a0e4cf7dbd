package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
)

const dateLayout = "2006-01-02"

// parsePageRequest reads optional page/page_size. ok is false when neither is
// present, in which case callers return the full result.
func parsePageRequest(r *http.Request) (req repository.PageRequest, ok bool, err error) {
	page := repository.DefaultPage
	pageSize := repository.DefaultPageSize
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return repository.PageRequest{}, false, errors.New("page must be a positive integer")
		}
		page = v
		ok = true
	}
	if raw := strings.TrimSpace(q.Get("page_size")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return repository.PageRequest{}, false, errors.New("page_size must be a positive integer")
		}
		if v > repository.MaxPageSize {
			return repository.PageRequest{}, false, fmt.Errorf("page_size must be <= %d", repository.MaxPageSize)
		}
		pageSize = v
		ok = true
	}
	return repository.PageRequest{Page: page, PageSize: pageSize}, ok, nil
}

func paginatedData[T any](items []T, page, pageSize int, total int64, totalPages int) map[string]any {
	return map[string]any{
		"items": items,
		"pagination": map[string]any{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}

func parseCertificateFilter(r *http.Request) (repository.CertificateFilter, error) {
	q := r.URL.Query()
	filter := repository.CertificateFilter{Query: strings.TrimSpace(q.Get("q"))}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" && raw != "all" {
		status := domain.VerificationStatus(strings.ToLower(raw))
		if !status.Valid() {
			return repository.CertificateFilter{}, fmt.Errorf("unknown status %q", raw)
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(q.Get("nsqf_level")); raw != "" && raw != "all" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < 1 || level > 10 {
			return repository.CertificateFilter{}, errors.New("nsqf_level must be an integer between 1 and 10")
		}
		filter.NSQFLevel = level
	}
	return filter, nil
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
}

func pathParam(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	return v, v != "" && len(v) <= 64
}

package repository

import (
	"strings"
	"time"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

// CertificateFilter narrows certificate listings. Zero fields match everything.
type CertificateFilter struct {
	Status    domain.VerificationStatus
	NSQFLevel int
	Query     string
}

func (f CertificateFilter) Matches(c domain.Certificate) bool {
	if f.Status != "" && c.VerificationStatus != f.Status {
		return false
	}
	if f.NSQFLevel != 0 && c.NSQFLevel != f.NSQFLevel {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Issuer), q)
}

// CertificateUpdate carries the user-editable certificate fields. Nil pointers
// leave the stored value untouched; ClearExpiryDate removes the expiry date.
type CertificateUpdate struct {
	Title           *string
	Issuer          *string
	DateIssued      *time.Time
	ExpiryDate      *time.Time
	ClearExpiryDate bool
	NSQFLevel       *int
}

func (u CertificateUpdate) IsEmpty() bool {
	return u.Title == nil && u.Issuer == nil && u.DateIssued == nil &&
		u.ExpiryDate == nil && !u.ClearExpiryDate && u.NSQFLevel == nil
}

func (u CertificateUpdate) apply(c *domain.Certificate) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Issuer != nil {
		c.Issuer = *u.Issuer
	}
	if u.DateIssued != nil {
		c.DateIssued = *u.DateIssued
	}
	if u.ClearExpiryDate {
		c.ExpiryDate = nil
	} else if u.ExpiryDate != nil {
		expiry := *u.ExpiryDate
		c.ExpiryDate = &expiry
	}
	if u.NSQFLevel != nil {
		c.NSQFLevel = *u.NSQFLevel
	}
}

func (u CertificateUpdate) columns() map[string]any {
	updates := map[string]any{}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Issuer != nil {
		updates["issuer"] = *u.Issuer
	}
	if u.DateIssued != nil {
		updates["date_issued"] = *u.DateIssued
	}
	if u.ClearExpiryDate {
		updates["expiry_date"] = nil
	} else if u.ExpiryDate != nil {
		updates["expiry_date"] = *u.ExpiryDate
	}
	if u.NSQFLevel != nil {
		updates["nsqf_level"] = *u.NSQFLevel
	}
	return updates
}

func verificationColumns(result domain.VerificationResult) map[string]any {
	return map[string]any{
		"verification_status":          result.Status,
		"ai_score":                     result.AIScore,
		"has_qr_code":                  result.HasQRCode,
		"blockchain_hash":              result.BlockchainHash,
		"step_qr_check":                result.Steps.QRCheck,
		"step_blockchain_verification": result.Steps.BlockchainVerification,
		"step_api_verification":        result.Steps.APIVerification,
		"step_ai_scoring":              result.Steps.AIScoring,
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(q string) string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
}

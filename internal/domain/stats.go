package domain

import "time"

type CertificateStats struct {
	Total       int `json:"total"`
	Verified    int `json:"verified"`
	AIScored    int `json:"ai_scored"`
	NeedsReview int `json:"needs_review"`
	Pending     int `json:"pending"`
	Expiring    int `json:"expiring"`
	Expired     int `json:"expired"`
}

func SummarizeCertificates(certs []Certificate, now time.Time) CertificateStats {
	stats := CertificateStats{Total: len(certs)}
	for _, c := range certs {
		switch c.VerificationStatus {
		case StatusVerified:
			stats.Verified++
		case StatusAIScored:
			stats.AIScored++
		case StatusNeedsReview:
			stats.NeedsReview++
		case StatusPending:
			stats.Pending++
		}
		switch ExpiryStatusAt(c, now).Status {
		case ExpiryExpiring:
			stats.Expiring++
		case ExpiryExpired:
			stats.Expired++
		}
	}
	return stats
}

package domain

import "time"

type VerificationRequestStatus string

const (
	RequestPending  VerificationRequestStatus = "pending"
	RequestApproved VerificationRequestStatus = "approved"
	RequestRejected VerificationRequestStatus = "rejected"
)

type VerificationRequest struct {
	ID            string                    `gorm:"primaryKey;size:64" json:"id"`
	CertificateID string                    `gorm:"size:64;not null;index:idx_verification_requests_certificate" json:"certificate_id"`
	EmployerID    string                    `gorm:"size:64;not null" json:"employer_id"`
	Status        VerificationRequestStatus `gorm:"size:32;not null;default:pending" json:"status"`
	RequestDate   time.Time                 `gorm:"not null" json:"request_date"`
}

package domain

import "time"

type VerificationStatus string

const (
	StatusPending     VerificationStatus = "pending"
	StatusVerified    VerificationStatus = "verified"
	StatusAIScored    VerificationStatus = "ai-scored"
	StatusNeedsReview VerificationStatus = "needs-review"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusAIScored, StatusNeedsReview:
		return true
	default:
		return false
	}
}

type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceLink SourceKind = "link"
)

// Source is where the certificate evidence lives. A certificate carries at most
// one: either an uploaded file or an external verification link.
type Source struct {
	Kind SourceKind `gorm:"size:16" json:"kind,omitempty"`
	URL  string     `gorm:"size:1024" json:"url,omitempty"`
}

func (s Source) IsZero() bool { return s.Kind == "" }

func FileSource(url string) Source { return Source{Kind: SourceFile, URL: url} }

func LinkSource(url string) Source { return Source{Kind: SourceLink, URL: url} }

const FileTypePDF = "PDF"

type VerificationSteps struct {
	QRCheck                bool `gorm:"not null;default:false" json:"qr_check"`
	BlockchainVerification bool `gorm:"not null;default:false" json:"blockchain_verification"`
	APIVerification        bool `gorm:"not null;default:false" json:"api_verification"`
	AIScoring              bool `gorm:"not null;default:false" json:"ai_scoring"`
}

type CertificateMetadata struct {
	FileType          string            `gorm:"size:32" json:"file_type,omitempty"`
	UploadDate        time.Time         `gorm:"not null" json:"upload_date"`
	VerificationSteps VerificationSteps `gorm:"embedded;embeddedPrefix:step_" json:"verification_steps"`
}

type Certificate struct {
	ID                 string              `gorm:"primaryKey;size:64" json:"id"`
	LearnerID          string              `gorm:"size:64;not null;index:idx_certificates_learner" json:"learner_id"`
	Title              string              `gorm:"size:255;not null" json:"title"`
	Issuer             string              `gorm:"size:255;not null" json:"issuer"`
	DateIssued         time.Time           `gorm:"type:date;not null" json:"date_issued"`
	ExpiryDate         *time.Time          `gorm:"type:date" json:"expiry_date,omitempty"`
	Source             Source              `gorm:"embedded;embeddedPrefix:source_" json:"source"`
	VerificationStatus VerificationStatus  `gorm:"size:32;not null;default:pending;index:idx_certificates_status" json:"verification_status"`
	AIScore            *int                `json:"ai_score,omitempty"`
	NSQFLevel          int                 `gorm:"not null" json:"nsqf_level"`
	HasQRCode          bool                `gorm:"not null;default:false" json:"has_qr_code"`
	BlockchainHash     string              `gorm:"size:128" json:"blockchain_hash,omitempty"`
	Metadata           CertificateMetadata `gorm:"embedded" json:"metadata"`
	CreatedAt          time.Time           `json:"-"`
	UpdatedAt          time.Time           `json:"-"`
}

// VerificationResult is the full outcome of one classification run. It is the
// only way the verification fields of a certificate change after creation.
type VerificationResult struct {
	Status         VerificationStatus
	AIScore        int
	HasQRCode      bool
	BlockchainHash string
	Steps          VerificationSteps
}

// Apply copies the result onto the certificate.
func (r VerificationResult) Apply(c *Certificate) {
	score := r.AIScore
	c.VerificationStatus = r.Status
	c.AIScore = &score
	c.HasQRCode = r.HasQRCode
	c.BlockchainHash = r.BlockchainHash
	c.Metadata.VerificationSteps = r.Steps
}

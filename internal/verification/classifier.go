// Package verification derives a certificate's verification status from the
// evidence signals gathered for it.
//
// Signal acquisition is pluggable through EvidenceProvider; the decision rule in
// Decide is pure and deterministic.
package verification

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

const (
	MinAIScore = 0
	MaxAIScore = 100

	verifiedScoreThreshold = 90
	aiScoredScoreThreshold = 75
	blockchainHashHexLen   = 16
)

var ErrInvalidAIScore = errors.New("ai score must be between 0 and 100")

// Signals are the raw results of the individual checks run against a certificate.
type Signals struct {
	QRCode     bool `json:"qr_check"`
	Blockchain bool `json:"blockchain_verification"`
	API        bool `json:"api_verification"`
	AIScore    int  `json:"ai_score"`
}

// Normalize enforces the gating between checks: the blockchain lookup is keyed
// off the QR payload, so it cannot pass without a QR code.
func (s Signals) Normalize() Signals {
	if !s.QRCode {
		s.Blockchain = false
	}
	return s
}

func (s Signals) Validate() error {
	if s.AIScore < MinAIScore || s.AIScore > MaxAIScore {
		return ErrInvalidAIScore
	}
	return nil
}

// Decide maps signals to a terminal status. First match wins:
//
//	blockchain && api && score >= 90  -> verified
//	(api || blockchain) && score >= 75 -> ai-scored
//	otherwise                          -> needs-review
//
// Decide never returns domain.StatusPending.
func Decide(s Signals) domain.VerificationStatus {
	s = s.Normalize()
	switch {
	case s.Blockchain && s.API && s.AIScore >= verifiedScoreThreshold:
		return domain.StatusVerified
	case (s.API || s.Blockchain) && s.AIScore >= aiScoredScoreThreshold:
		return domain.StatusAIScored
	default:
		return domain.StatusNeedsReview
	}
}

// EvidenceProvider gathers the signals for one certificate.
type EvidenceProvider interface {
	Collect(ctx context.Context, cert domain.Certificate) (Signals, error)
}

// HashMinter produces the opaque token recorded when blockchain verification passes.
type HashMinter func(cert domain.Certificate) (string, error)

type Classifier struct {
	provider EvidenceProvider
	mint     HashMinter
}

func NewClassifier(provider EvidenceProvider) *Classifier {
	return &Classifier{provider: provider, mint: KeccakHashMinter}
}

// WithHashMinter replaces the hash minter; tests use it for stable hashes.
func (c *Classifier) WithHashMinter(mint HashMinter) *Classifier {
	c.mint = mint
	return c
}

// Classify runs one full classification for cert. It does not mutate cert.
func (c *Classifier) Classify(ctx context.Context, cert domain.Certificate) (domain.VerificationResult, error) {
	signals, err := c.provider.Collect(ctx, cert)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("collect evidence: %w", err)
	}
	signals = signals.Normalize()
	if err := signals.Validate(); err != nil {
		return domain.VerificationResult{}, err
	}

	result := domain.VerificationResult{
		Status:    Decide(signals),
		AIScore:   signals.AIScore,
		HasQRCode: signals.QRCode,
		Steps: domain.VerificationSteps{
			QRCheck:                signals.QRCode,
			BlockchainVerification: signals.Blockchain,
			APIVerification:        signals.API,
			AIScoring:              true,
		},
	}
	if signals.Blockchain {
		hash, err := c.mint(cert)
		if err != nil {
			return domain.VerificationResult{}, fmt.Errorf("mint blockchain hash: %w", err)
		}
		result.BlockchainHash = hash
	}
	return result, nil
}

// KeccakHashMinter hashes the certificate id with a random nonce and keeps a
// short hex prefix, rendered like an on-chain transaction reference.
func KeccakHashMinter(cert domain.Certificate) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(cert.ID))
	h.Write(nonce)
	sum := hex.EncodeToString(h.Sum(nil))
	return "0x" + sum[:blockchainHashHexLen], nil
}

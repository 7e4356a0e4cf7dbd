package verification

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

const (
	DefaultQRProbability         = 0.5
	DefaultBlockchainProbability = 0.7
	DefaultAPIProbability        = 0.6

	randomScoreMin = 60
	randomScoreMax = 100
)

var ErrInvalidProbability = errors.New("probability must be between 0 and 1")

type Probabilities struct {
	QRCode float64
	// Blockchain is conditional on a QR code being present.
	Blockchain float64
	API        float64
}

func DefaultProbabilities() Probabilities {
	return Probabilities{
		QRCode:     DefaultQRProbability,
		Blockchain: DefaultBlockchainProbability,
		API:        DefaultAPIProbability,
	}
}

func (p Probabilities) Validate() error {
	for _, v := range []float64{p.QRCode, p.Blockchain, p.API} {
		if v < 0 || v > 1 {
			return ErrInvalidProbability
		}
	}
	return nil
}

// RandomEvidenceProvider simulates the external checks with independent draws.
type RandomEvidenceProvider struct {
	mu    sync.Mutex
	rng   *rand.Rand
	probs Probabilities
}

func NewRandomEvidenceProvider(probs Probabilities) (*RandomEvidenceProvider, error) {
	if err := probs.Validate(); err != nil {
		return nil, err
	}
	return &RandomEvidenceProvider{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		probs: probs,
	}, nil
}

// NewSeededEvidenceProvider returns a provider with a reproducible draw sequence.
func NewSeededEvidenceProvider(probs Probabilities, seed1, seed2 uint64) (*RandomEvidenceProvider, error) {
	p, err := NewRandomEvidenceProvider(probs)
	if err != nil {
		return nil, err
	}
	p.rng = rand.New(rand.NewPCG(seed1, seed2))
	return p, nil
}

func (p *RandomEvidenceProvider) Collect(ctx context.Context, _ domain.Certificate) (Signals, error) {
	if err := ctx.Err(); err != nil {
		return Signals{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	qr := p.rng.Float64() < p.probs.QRCode
	blockchain := qr && p.rng.Float64() < p.probs.Blockchain
	api := p.rng.Float64() < p.probs.API
	score := randomScoreMin + p.rng.IntN(randomScoreMax-randomScoreMin+1)
	return Signals{QRCode: qr, Blockchain: blockchain, API: api, AIScore: score}, nil
}

// StaticEvidenceProvider returns the same signals for every certificate.
type StaticEvidenceProvider struct {
	Signals Signals
	Err     error
}

func (p StaticEvidenceProvider) Collect(context.Context, domain.Certificate) (Signals, error) {
	if p.Err != nil {
		return Signals{}, p.Err
	}
	return p.Signals, nil
}

package verification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/credential-vault-backend/internal/domain"
)

func TestDecideRule(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    domain.VerificationStatus
	}{
		{name: "all checks and high score", signals: Signals{QRCode: true, Blockchain: true, API: true, AIScore: 90}, want: domain.StatusVerified},
		{name: "all checks score just below verified", signals: Signals{QRCode: true, Blockchain: true, API: true, AIScore: 89}, want: domain.StatusAIScored},
		{name: "api only at ai-scored threshold", signals: Signals{API: true, AIScore: 75}, want: domain.StatusAIScored},
		{name: "blockchain only high score", signals: Signals{QRCode: true, Blockchain: true, AIScore: 99}, want: domain.StatusAIScored},
		{name: "api only below threshold", signals: Signals{API: true, AIScore: 74}, want: domain.StatusNeedsReview},
		{name: "qr only", signals: Signals{QRCode: true, AIScore: 100}, want: domain.StatusNeedsReview},
		{name: "nothing passed", signals: Signals{AIScore: 60}, want: domain.StatusNeedsReview},
		{name: "blockchain without qr is ignored", signals: Signals{Blockchain: true, API: true, AIScore: 95}, want: domain.StatusAIScored},
		{name: "blockchain without qr and no api", signals: Signals{Blockchain: true, AIScore: 95}, want: domain.StatusNeedsReview},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.signals))
		})
	}
}

func TestDecideIsTotalAndDeterministic(t *testing.T) {
	for _, qr := range []bool{false, true} {
		for _, bc := range []bool{false, true} {
			for _, api := range []bool{false, true} {
				for score := MinAIScore; score <= MaxAIScore; score++ {
					s := Signals{QRCode: qr, Blockchain: bc, API: api, AIScore: score}
					first := Decide(s)
					require.NotEqual(t, domain.StatusPending, first)
					require.Contains(t, []domain.VerificationStatus{domain.StatusVerified, domain.StatusAIScored, domain.StatusNeedsReview}, first)
					require.Equal(t, first, Decide(s))
				}
			}
		}
	}
}

func TestClassifyGatesBlockchainOnQRCode(t *testing.T) {
	c := NewClassifier(StaticEvidenceProvider{Signals: Signals{QRCode: false, Blockchain: true, API: true, AIScore: 97}})

	res, err := c.Classify(context.Background(), domain.Certificate{ID: "c-1"})
	require.NoError(t, err)
	assert.False(t, res.Steps.BlockchainVerification)
	assert.Empty(t, res.BlockchainHash)
	assert.Equal(t, domain.StatusAIScored, res.Status)
}

func TestClassifyHashPresentOnlyWithBlockchain(t *testing.T) {
	withChain := NewClassifier(StaticEvidenceProvider{Signals: Signals{QRCode: true, Blockchain: true, API: true, AIScore: 92}})
	res, err := withChain.Classify(context.Background(), domain.Certificate{ID: "c-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, res.Status)
	assert.True(t, strings.HasPrefix(res.BlockchainHash, "0x"))
	assert.Len(t, res.BlockchainHash, 2+blockchainHashHexLen)

	withoutChain := NewClassifier(StaticEvidenceProvider{Signals: Signals{QRCode: true, API: true, AIScore: 92}})
	res, err = withoutChain.Classify(context.Background(), domain.Certificate{ID: "c-1"})
	require.NoError(t, err)
	assert.Empty(t, res.BlockchainHash)
	assert.True(t, res.HasQRCode)
}

func TestClassifyRecordsSteps(t *testing.T) {
	c := NewClassifier(StaticEvidenceProvider{Signals: Signals{QRCode: true, API: false, AIScore: 61}})
	res, err := c.Classify(context.Background(), domain.Certificate{ID: "c-2"})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationSteps{QRCheck: true, AIScoring: true}, res.Steps)
	assert.Equal(t, 61, res.AIScore)
}

func TestClassifyPropagatesProviderAndMinterErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewClassifier(StaticEvidenceProvider{Err: boom}).Classify(context.Background(), domain.Certificate{})
	assert.ErrorIs(t, err, boom)

	c := NewClassifier(StaticEvidenceProvider{Signals: Signals{QRCode: true, Blockchain: true, AIScore: 80}}).
		WithHashMinter(func(domain.Certificate) (string, error) { return "", boom })
	_, err = c.Classify(context.Background(), domain.Certificate{})
	assert.ErrorIs(t, err, boom)

	_, err = NewClassifier(StaticEvidenceProvider{Signals: Signals{AIScore: 101}}).Classify(context.Background(), domain.Certificate{})
	assert.ErrorIs(t, err, ErrInvalidAIScore)
}

func TestKeccakHashMinterIsUniquePerCall(t *testing.T) {
	a, err := KeccakHashMinter(domain.Certificate{ID: "same"})
	require.NoError(t, err)
	b, err := KeccakHashMinter(domain.Certificate{ID: "same"})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRandomEvidenceProviderRespectsContract(t *testing.T) {
	p, err := NewSeededEvidenceProvider(DefaultProbabilities(), 7, 11)
	require.NoError(t, err)

	sawLow, sawHigh := false, false
	for i := 0; i < 2000; i++ {
		s, err := p.Collect(context.Background(), domain.Certificate{})
		require.NoError(t, err)
		require.GreaterOrEqual(t, s.AIScore, 60)
		require.LessOrEqual(t, s.AIScore, 100)
		if s.Blockchain {
			require.True(t, s.QRCode, "blockchain must never pass without a qr code")
		}
		sawLow = sawLow || s.AIScore == 60
		sawHigh = sawHigh || s.AIScore == 100
	}
	assert.True(t, sawLow && sawHigh, "expected both score bounds to be reachable")
}

func TestRandomEvidenceProviderHonorsCanceledContext(t *testing.T) {
	p, err := NewRandomEvidenceProvider(DefaultProbabilities())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Collect(ctx, domain.Certificate{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProbabilitiesValidate(t *testing.T) {
	_, err := NewRandomEvidenceProvider(Probabilities{QRCode: 1.2})
	assert.ErrorIs(t, err, ErrInvalidProbability)
	assert.NoError(t, DefaultProbabilities().Validate())
}

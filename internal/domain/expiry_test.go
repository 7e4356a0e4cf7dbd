package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dateUTC(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpiryStatusAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	ptr := func(v time.Time) *time.Time { return &v }
	days := func(v int) *int { return &v }

	tests := []struct {
		name     string
		expiry   *time.Time
		want     ExpiryState
		wantDays *int
	}{
		{name: "no expiry date", expiry: nil, want: ExpiryNone},
		{name: "yesterday", expiry: ptr(dateUTC(2026, time.March, 9)), want: ExpiryExpired},
		{name: "today", expiry: ptr(dateUTC(2026, time.March, 10)), want: ExpiryExpiring, wantDays: days(0)},
		{name: "five days out", expiry: ptr(dateUTC(2026, time.March, 15)), want: ExpiryExpiring, wantDays: days(5)},
		{name: "window edge", expiry: ptr(dateUTC(2026, time.April, 9)), want: ExpiryExpiring, wantDays: days(30)},
		{name: "beyond window", expiry: ptr(dateUTC(2026, time.April, 10)), want: ExpiryNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExpiryStatusAt(Certificate{ExpiryDate: tc.expiry}, now)
			assert.Equal(t, tc.want, got.Status)
			assert.Equal(t, tc.wantDays, got.DaysUntilExpiry)
		})
	}
}

func TestExpiryStatusAtIgnoresCallerZone(t *testing.T) {
	expiry := dateUTC(2026, time.March, 15)
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, time.March, 10, 23, 45, 0, 0, ist)

	got := ExpiryStatusAt(Certificate{ExpiryDate: &expiry}, now)
	assert.Equal(t, ExpiryExpiring, got.Status)
	if assert.NotNil(t, got.DaysUntilExpiry) {
		assert.Equal(t, 5, *got.DaysUntilExpiry)
	}
}

func TestExpiryStatusJSONKeepsZeroDaysForExpiringToday(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	today := dateUTC(2026, time.March, 10)

	raw, err := json.Marshal(ExpiryStatusAt(Certificate{ExpiryDate: &today}, now))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"expiring","days_until_expiry":0}`, string(raw))

	raw, err = json.Marshal(ExpiryStatusAt(Certificate{}, now))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"none"}`, string(raw))
}

func TestSummarizeCertificates(t *testing.T) {
	now := dateUTC(2026, time.March, 10)
	soon := dateUTC(2026, time.March, 20)
	past := dateUTC(2026, time.January, 1)

	certs := []Certificate{
		{VerificationStatus: StatusVerified, ExpiryDate: &soon},
		{VerificationStatus: StatusAIScored},
		{VerificationStatus: StatusNeedsReview, ExpiryDate: &past},
		{VerificationStatus: StatusNeedsReview},
		{VerificationStatus: StatusPending},
	}

	stats := SummarizeCertificates(certs, now)
	assert.Equal(t, CertificateStats{
		Total:       5,
		Verified:    1,
		AIScored:    1,
		NeedsReview: 2,
		Pending:     1,
		Expiring:    1,
		Expired:     1,
	}, stats)
}

func TestVerificationResultApply(t *testing.T) {
	cert := Certificate{VerificationStatus: StatusPending}
	VerificationResult{
		Status:         StatusVerified,
		AIScore:        93,
		HasQRCode:      true,
		BlockchainHash: "0xabc",
		Steps:          VerificationSteps{QRCheck: true, BlockchainVerification: true, APIVerification: true, AIScoring: true},
	}.Apply(&cert)

	assert.Equal(t, StatusVerified, cert.VerificationStatus)
	if assert.NotNil(t, cert.AIScore) {
		assert.Equal(t, 93, *cert.AIScore)
	}
	assert.True(t, cert.HasQRCode)
	assert.Equal(t, "0xabc", cert.BlockchainHash)
	assert.True(t, cert.Metadata.VerificationSteps.AIScoring)
}

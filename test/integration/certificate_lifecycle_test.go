package integration

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

type certificateResponse struct {
	ID                 string  `json:"id"`
	LearnerID          string  `json:"learner_id"`
	Title              string  `json:"title"`
	ExpiryDate         *string `json:"expiry_date"`
	VerificationStatus string  `json:"verification_status"`
	AIScore            *int    `json:"ai_score"`
	BlockchainHash     string  `json:"blockchain_hash"`
	StatusLabel        string  `json:"status_label"`
	Source             struct {
		Kind string `json:"kind"`
		URL  string `json:"url"`
	} `json:"source"`
	Metadata struct {
		FileType          string `json:"file_type"`
		VerificationSteps struct {
			QRCheck   bool `json:"qr_check"`
			AIScoring bool `json:"ai_scoring"`
		} `json:"verification_steps"`
	} `json:"metadata"`
}

func decodeCertificate(t *testing.T, env envelope) certificateResponse {
	t.Helper()
	var c certificateResponse
	if err := json.Unmarshal(env.Data, &c); err != nil {
		t.Fatalf("decode certificate: %v", err)
	}
	return c
}

func TestCertificateLifecycleOverSQLiteAndRedisCache(t *testing.T) {
	srv := newTestServer(t, testServerOptions{
		redis:   true,
		signals: verification.Signals{QRCode: false, API: true, AIScore: 82},
	})

	resp, env, raw := srv.do(t, http.MethodGet, "/api/v1/learners/1/certificates", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list seeded: status=%d body=%s", resp.StatusCode, raw)
	}
	var seeded []certificateResponse
	if err := json.Unmarshal(env.Data, &seeded); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(seeded) != 2 {
		t.Fatalf("expected 2 seeded certificates for learner 1, got %d", len(seeded))
	}

	resp, env, raw = srv.do(t, http.MethodPost, "/api/v1/certificates", strings.NewReader(`{"learner_id":"1","title":"Solar PV Installer","issuer":"SCGJ","date_issued":"2024-05-01","expiry_date":"2030-05-01","nsqf_level":4,"link_url":"https://skillindia.gov.in/verify/abc"}`), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", resp.StatusCode, raw)
	}
	created := decodeCertificate(t, env)
	if created.VerificationStatus != "ai-scored" {
		t.Fatalf("expected ai-scored for score 82 without qr, got %s", created.VerificationStatus)
	}
	if created.Source.Kind != "link" || created.Metadata.FileType != "" {
		t.Fatalf("link source must not carry a file type: %+v", created)
	}
	if created.BlockchainHash != "" || created.Metadata.VerificationSteps.QRCheck {
		t.Fatalf("unexpected qr/blockchain evidence: %+v", created)
	}

	// The cached list must be invalidated by the create.
	_, env, _ = srv.do(t, http.MethodGet, "/api/v1/learners/1/certificates", nil, nil)
	var afterCreate []certificateResponse
	if err := json.Unmarshal(env.Data, &afterCreate); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(afterCreate) != 3 {
		t.Fatalf("expected 3 certificates after create, got %d", len(afterCreate))
	}

	resp, env, raw = srv.do(t, http.MethodPut, "/api/v1/certificates/"+created.ID, strings.NewReader(`{"title":"Solar PV Installer (Rooftop)","expiry_date":null}`), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status=%d body=%s", resp.StatusCode, raw)
	}
	updated := decodeCertificate(t, env)
	if updated.Title != "Solar PV Installer (Rooftop)" || updated.ExpiryDate != nil {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.VerificationStatus != created.VerificationStatus || *updated.AIScore != *created.AIScore {
		t.Fatalf("update must not touch verification fields: before=%+v after=%+v", created, updated)
	}

	resp, env, _ = srv.do(t, http.MethodGet, "/api/v1/learners/1/certificates/stats", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: status=%d", resp.StatusCode)
	}
	var stats map[string]int
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["total"] != 3 || stats["ai_scored"] != 2 || stats["verified"] != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	for i := 0; i < 2; i++ {
		resp, _, raw = srv.do(t, http.MethodDelete, "/api/v1/certificates/"+created.ID, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("delete %d: status=%d body=%s", i, resp.StatusCode, raw)
		}
	}
	resp, env, _ = srv.do(t, http.MethodGet, "/api/v1/certificates/"+created.ID, nil, nil)
	if resp.StatusCode != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected 404 after delete, got %d %+v", resp.StatusCode, env.Error)
	}
}

func TestCertificateCreateRejectsBothSources(t *testing.T) {
	srv := newTestServer(t, testServerOptions{signals: verification.Signals{AIScore: 70}})
	resp, env, raw := srv.do(t, http.MethodPost, "/api/v1/certificates", strings.NewReader(`{"learner_id":"1","title":"x","issuer":"y","date_issued":"2024-05-01","nsqf_level":4,"file_url":"a.pdf","link_url":"https://x"}`), nil)
	if resp.StatusCode != http.StatusBadRequest || env.Error.Code != "BAD_REQUEST" {
		t.Fatalf("expected 400, got %d body=%s", resp.StatusCode, raw)
	}
}

func TestManualVerificationRequestFlow(t *testing.T) {
	srv := newTestServer(t, testServerOptions{})

	resp, _, raw := srv.do(t, http.MethodPost, "/api/v1/certificates/demo-cert-3/verification-requests", strings.NewReader(`{}`), map[string]string{"X-Actor-Id": "4"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("request verification: status=%d body=%s", resp.StatusCode, raw)
	}
	resp, env, _ := srv.do(t, http.MethodGet, "/api/v1/certificates/demo-cert-3/verification-requests", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list requests: status=%d", resp.StatusCode)
	}
	var reqs []struct {
		EmployerID string `json:"employer_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &reqs); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(reqs) != 1 || reqs[0].EmployerID != "4" || reqs[0].Status != "pending" {
		t.Fatalf("unexpected requests: %+v", reqs)
	}

	resp, _, _ = srv.do(t, http.MethodPost, "/api/v1/certificates/unknown/verification-requests", strings.NewReader(`{"employer_id":"4"}`), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown certificate, got %d", resp.StatusCode)
	}
}

func TestLearnerSearchAndLocalizedLabels(t *testing.T) {
	srv := newTestServer(t, testServerOptions{})

	resp, env, _ := srv.do(t, http.MethodGet, "/api/v1/learners/search?q=JOHN", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: status=%d", resp.StatusCode)
	}
	var users []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	// John Doe and Mike Johnson; employers are never returned.
	if len(users) != 2 {
		t.Fatalf("expected 2 learners, got %+v", users)
	}

	_, env, _ = srv.do(t, http.MethodGet, "/api/v1/learners/search?q=j", nil, nil)
	if strings.TrimSpace(string(env.Data)) != "[]" {
		t.Fatalf("expected empty result for single-character query, got %s", env.Data)
	}

	resp, env, _ = srv.do(t, http.MethodGet, "/api/v1/certificates/demo-cert-1", nil, map[string]string{"Accept-Language": "hi"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: status=%d", resp.StatusCode)
	}
	cert := decodeCertificate(t, env)
	if cert.StatusLabel == "" || cert.StatusLabel == "Verified" {
		t.Fatalf("expected hindi status label, got %q", cert.StatusLabel)
	}
}

func TestReadinessReportsDatabaseAndRedis(t *testing.T) {
	srv := newTestServer(t, testServerOptions{redis: true})
	resp, env, raw := srv.do(t, http.MethodGet, "/health/ready", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready: status=%d body=%s", resp.StatusCode, raw)
	}
	var out struct {
		Checks []struct {
			Name    string `json:"name"`
			Healthy bool   `json:"healthy"`
		} `json:"checks"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode readiness: %v", err)
	}
	if len(out.Checks) != 2 {
		t.Fatalf("expected db and redis checks, got %+v", out.Checks)
	}
}

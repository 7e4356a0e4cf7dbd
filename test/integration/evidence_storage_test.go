package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/sandeepkv93/credential-vault-backend/internal/service"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

var evidenceKeyPattern = regexp.MustCompile(`^evidence/learner-1/[0-9a-fA-F-]{36}\.pdf$`)

type evidenceUploadData struct {
	ObjectKey   string `json:"object_key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

func TestEvidenceUploadStoresPDFAndFeedsCertificateCreate(t *testing.T) {
	env := newMinIOIntegrationEnv(t, 1<<20)
	srv := newTestServer(t, testServerOptions{
		storage: env.storage,
		signals: verification.Signals{QRCode: true, Blockchain: true, API: true, AIScore: 93},
	})

	content := pdfFixtureBytes()
	resp, envl, raw := srv.uploadEvidence(t, "1", "cert.pdf", content)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload: status=%d body=%s", resp.StatusCode, raw)
	}
	var payload evidenceUploadData
	if err := json.Unmarshal(envl.Data, &payload); err != nil {
		t.Fatalf("decode upload payload: %v", err)
	}
	if !evidenceKeyPattern.MatchString(payload.ObjectKey) {
		t.Fatalf("unexpected object key: %q", payload.ObjectKey)
	}
	if payload.Size != int64(len(content)) || payload.ContentType != "application/pdf" {
		t.Fatalf("unexpected upload payload: %+v", payload)
	}
	if !strings.Contains(payload.URL, payload.ObjectKey) {
		t.Fatalf("expected presigned url to reference key: %q", payload.URL)
	}

	obj := env.mustStatObject(t, payload.ObjectKey)
	if obj.ContentType != "application/pdf" {
		t.Fatalf("expected stored content type application/pdf, got %q", obj.ContentType)
	}
	if obj.UserMetadata["Learner-Id"] != "1" {
		t.Fatalf("expected learner metadata, got %+v", obj.UserMetadata)
	}

	body := `{"learner_id":"1","title":"Plumbing Level 3","issuer":"NSDC","date_issued":"2024-04-01","nsqf_level":3,"file_url":"` + payload.ObjectKey + `"}`
	resp, envl, raw = srv.do(t, http.MethodPost, "/api/v1/certificates", strings.NewReader(body), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", resp.StatusCode, raw)
	}
	cert := decodeCertificate(t, envl)
	if cert.VerificationStatus != "verified" || cert.Metadata.FileType != "PDF" || !cert.Metadata.VerificationSteps.AIScoring {
		t.Fatalf("unexpected created certificate: %+v", cert)
	}
	if cert.Source.Kind != "file" || cert.Source.URL != payload.ObjectKey {
		t.Fatalf("expected file source pointing at uploaded object, got %+v", cert.Source)
	}

	resp, _, raw = srv.do(t, http.MethodDelete, "/api/v1/certificates/"+cert.ID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status=%d body=%s", resp.StatusCode, raw)
	}
	if env.objectExists(t, payload.ObjectKey) {
		t.Fatalf("expected evidence object %q removed with its certificate", payload.ObjectKey)
	}
}

func TestEvidenceUploadRejectsUnsupportedType(t *testing.T) {
	env := newMinIOIntegrationEnv(t, 1<<20)
	srv := newTestServer(t, testServerOptions{storage: env.storage})

	resp, envl, raw := srv.uploadEvidence(t, "1", "notes.pdf", []byte("plain text pretending to be a pdf"))
	if resp.StatusCode != http.StatusUnsupportedMediaType || envl.Error.Code != "UNSUPPORTED_MEDIA_TYPE" {
		t.Fatalf("expected 415, got %d body=%s", resp.StatusCode, raw)
	}
}

func TestEvidenceDeleteIsScopedToLearner(t *testing.T) {
	env := newMinIOIntegrationEnv(t, 1<<20)
	ctx := context.Background()
	content := pdfFixtureBytes()

	obj, err := env.storage.UploadEvidence(ctx, "1", strings.NewReader(string(content)), int64(len(content)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := env.storage.DeleteEvidence(ctx, "2", obj.Key); !errors.Is(err, service.ErrUnauthorizedAccess) {
		t.Fatalf("expected unauthorized delete for another learner, got %v", err)
	}
	if !env.objectExists(t, obj.Key) {
		t.Fatal("object must survive a foreign delete")
	}
	if err := env.storage.DeleteEvidence(ctx, "1", obj.Key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if env.objectExists(t, obj.Key) {
		t.Fatal("expected object to be removed")
	}
}

func TestEvidenceStorageReadinessAndSizeLimit(t *testing.T) {
	env := newMinIOIntegrationEnv(t, 16)
	if err := env.storage.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	content := pdfFixtureBytes()
	_, err := env.storage.UploadEvidence(context.Background(), "1", strings.NewReader(string(content)), int64(len(content)))
	if !errors.Is(err, service.ErrFileTooBig) {
		t.Fatalf("expected ErrFileTooBig, got %v", err)
	}

	srv := newTestServer(t, testServerOptions{storage: env.storage})
	resp, _, raw := srv.do(t, http.MethodGet, "/health/ready", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ready with reachable storage, got %d body=%s", resp.StatusCode, raw)
	}
}

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sandeepkv93/credential-vault-backend/internal/database"
	"github.com/sandeepkv93/credential-vault-backend/internal/health"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/handler"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/router"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
	"github.com/sandeepkv93/credential-vault-backend/internal/repository"
	"github.com/sandeepkv93/credential-vault-backend/internal/service"
	"github.com/sandeepkv93/credential-vault-backend/internal/verification"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServerOptions struct {
	storage service.EvidenceStorage
	signals verification.Signals
	redis   bool
}

type testServer struct {
	baseURL string
	client  *http.Client
	db      *gorm.DB
	cache   service.CertificateListCacheStore
}

// newTestServer wires the production router over sqlite, optional miniredis
// list cache and the given evidence storage.
func newTestServer(t *testing.T, opts testServerOptions) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	certs := repository.NewCertificateRepository(db)
	users := repository.NewUserRepository(db)
	requests := repository.NewVerificationRequestRepository(db)
	if _, err := database.SeedDemoData(t.Context(), users, certs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var cache service.CertificateListCacheStore = service.NewNoopCertificateListCacheStore()
	var checkers []health.Checker
	checkers = append(checkers, health.NewDBChecker(db))
	if opts.redis {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		cache = service.NewRedisCertificateListCacheStore(client, "it_cert_list")
		checkers = append(checkers, health.NewRedisChecker(client))
	}
	storage := opts.storage
	if storage == nil {
		storage = service.DisabledEvidenceStorage{}
	}
	if pinger, ok := storage.(health.Pinger); ok {
		checkers = append(checkers, health.NewPingChecker("evidence_storage", pinger))
	}

	translator := i18n.NewTranslator()
	classifier := verification.NewClassifier(verification.StaticEvidenceProvider{Signals: opts.signals})
	certSvc := service.NewCertificateService(certs, classifier, cache, storage, time.Minute, nil)
	h := router.NewRouter(router.Dependencies{
		CertificateHandler:  handler.NewCertificateHandler(certSvc, translator),
		EvidenceHandler:     handler.NewEvidenceHandler(storage, 1<<20),
		LearnerHandler:      handler.NewLearnerHandler(service.NewLearnerSearchService(users)),
		VerificationHandler: handler.NewVerificationHandler(service.NewVerificationService(certs, requests), translator),
		TranslationHandler:  handler.NewTranslationHandler(translator),
		Translator:          translator,
		CORSOrigins:         []string{"http://localhost:5173"},
		WriteRateLimiter:    middleware.NewRateLimiter(1000, time.Minute).Middleware(),
		Readiness:           health.NewProbeRunner(2*time.Second, 0, checkers...),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testServer{baseURL: srv.URL, client: srv.Client(), db: db, cache: cache}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) (*http.Response, envelope, string) {
	t.Helper()
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env, string(raw)
}

func (s *testServer) uploadEvidence(t *testing.T, learnerID, filename string, content []byte) (*http.Response, envelope, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("learner_id", learnerID); err != nil {
		t.Fatalf("write learner_id: %v", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return s.do(t, http.MethodPost, "/api/v1/certificates/files", &buf, map[string]string{"Content-Type": mw.FormDataContentType()})
}

func pdfFixtureBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

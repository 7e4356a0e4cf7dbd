package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/credential-vault-backend/internal/health"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/handler"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/middleware"
	"github.com/sandeepkv93/credential-vault-backend/internal/http/response"
	"github.com/sandeepkv93/credential-vault-backend/internal/i18n"
)

type Dependencies struct {
	CertificateHandler  *handler.CertificateHandler
	EvidenceHandler     *handler.EvidenceHandler
	LearnerHandler      *handler.LearnerHandler
	VerificationHandler *handler.VerificationHandler
	TranslationHandler  *handler.TranslationHandler
	Translator          *i18n.Translator
	CORSOrigins         []string
	MaxBodyBytes        int64
	WriteRateLimiter    WriteRateLimiterFunc
	Readiness           *health.ProbeRunner
	EnableOTelHTTP      bool
}

// WriteRateLimiterFunc guards the endpoints that create records or run the
// classifier.
type WriteRateLimiterFunc func(http.Handler) http.Handler

const defaultWritesPerMinute = 60

func NewRouter(dep Dependencies) http.Handler {
	maxBody := dep.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	translator := dep.Translator
	if translator == nil {
		translator = i18n.NewTranslator()
	}
	writeLimiter := dep.WriteRateLimiter
	if writeLimiter == nil {
		writeLimiter = middleware.NewRateLimiter(defaultWritesPerMinute, time.Minute).Middleware()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(maxBody))
	r.Use(middleware.Language(translator))

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/certificates", func(r chi.Router) {
			r.Get("/", dep.CertificateHandler.ListAll)
			r.With(writeLimiter).Post("/", dep.CertificateHandler.Create)
			r.With(writeLimiter).Post("/files", dep.EvidenceHandler.Upload)
			r.Get("/{id}", dep.CertificateHandler.GetByID)
			r.Put("/{id}", dep.CertificateHandler.Update)
			r.Delete("/{id}", dep.CertificateHandler.Delete)
			r.Get("/{id}/verification-requests", dep.VerificationHandler.ListRequests)
			r.With(writeLimiter).Post("/{id}/verification-requests", dep.VerificationHandler.RequestManualVerification)
		})
		r.Route("/learners", func(r chi.Router) {
			r.Get("/search", dep.LearnerHandler.Search)
			r.Get("/{id}/certificates", dep.CertificateHandler.ListByLearner)
			r.Get("/{id}/certificates/stats", dep.CertificateHandler.StatsForLearner)
		})
		r.With(writeLimiter).Post("/verification/classify", dep.VerificationHandler.Classify)
		r.Get("/translations", dep.TranslationHandler.Get)
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}

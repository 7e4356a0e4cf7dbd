package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/trace"
)

const (
	auditEventVersion = 1
	// ActorHeader carries the caller-declared learner or employer id. It is
	// informational only; nothing authenticates it.
	ActorHeader    = "X-Actor-Id"
	anonymousActor = "anonymous"
)

var auditValidator = validator.New()

type AuditInput struct {
	EventName  string
	TargetType string
	TargetID   string
	Action     string
	Outcome    string
	Reason     string
}

type AuditEvent struct {
	EventVersion int    `json:"event_version" validate:"eq=1"`
	EventName    string `json:"event_name" validate:"required"`
	ActorID      string `json:"actor_id" validate:"required"`
	ActorIP      string `json:"actor_ip" validate:"required"`
	TargetType   string `json:"target_type" validate:"required"`
	TargetID     string `json:"target_id" validate:"required"`
	Action       string `json:"action" validate:"required"`
	Outcome      string `json:"outcome" validate:"oneof=success failure rejected"`
	Reason       string `json:"reason" validate:"required"`
	RequestID    string `json:"request_id"`
	TS           string `json:"ts" validate:"required"`
}

func (e AuditEvent) Validate() error {
	if err := auditValidator.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid audit event: %s failed %s", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid audit event: %w", err)
	}
	return nil
}

func BuildAuditEvent(r *http.Request, in AuditInput) AuditEvent {
	actor := strings.TrimSpace(r.Header.Get(ActorHeader))
	if actor == "" {
		actor = anonymousActor
	}
	reason := in.Reason
	if reason == "" {
		reason = in.Outcome
	}
	return AuditEvent{
		EventVersion: auditEventVersion,
		EventName:    in.EventName,
		ActorID:      actor,
		ActorIP:      clientIP(r),
		TargetType:   in.TargetType,
		TargetID:     in.TargetID,
		Action:       in.Action,
		Outcome:      in.Outcome,
		Reason:       reason,
		RequestID:    r.Header.Get("X-Request-Id"),
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
}

// EmitAudit logs one audit record. Events that fail validation are still
// logged, at warn level, with the validation error attached.
func EmitAudit(r *http.Request, in AuditInput, attrs ...any) {
	ev := BuildAuditEvent(r, in)
	level := slog.LevelInfo
	base := []any{
		"event_version", ev.EventVersion,
		"event_name", ev.EventName,
		"actor_id", ev.ActorID,
		"actor_ip", ev.ActorIP,
		"target_type", ev.TargetType,
		"target_id", ev.TargetID,
		"action", ev.Action,
		"outcome", ev.Outcome,
		"reason", ev.Reason,
		"request_id", ev.RequestID,
		"ts", ev.TS,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if err := ev.Validate(); err != nil {
		level = slog.LevelWarn
		base = append(base, "audit_error", err.Error())
	}
	msg := "audit"
	if sc := trace.SpanContextFromContext(r.Context()); sc.IsValid() {
		msg = fmt.Sprintf("audit trace_id=%s span_id=%s", sc.TraceID().String(), sc.SpanID().String())
	}
	NewLogger().Log(r.Context(), level, msg, append(base, attrs...)...)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

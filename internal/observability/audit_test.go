package observability

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestBuildAuditEventIncludesRequiredFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/certificates", nil)
	req.Header.Set("X-Request-Id", "req-test-1")
	req.Header.Set(ActorHeader, "learner-1")
	req.RemoteAddr = "127.0.0.1:12345"

	ev := BuildAuditEvent(req, AuditInput{
		EventName:  "certificate.create",
		TargetType: "certificate",
		TargetID:   "c-1",
		Action:     "create",
		Outcome:    "success",
		Reason:     "verified",
	})

	if ev.EventVersion != 1 {
		t.Fatalf("expected event version 1, got %d", ev.EventVersion)
	}
	if ev.ActorID != "learner-1" || ev.ActorIP != "127.0.0.1" || ev.RequestID != "req-test-1" {
		t.Fatalf("unexpected actor/request fields: %+v", ev)
	}
	if _, err := time.Parse(time.RFC3339, ev.TS); err != nil {
		t.Fatalf("expected RFC3339 ts, got %q err=%v", ev.TS, err)
	}
	if err := ev.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}
}

func TestBuildAuditEventDefaults(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/api/v1/certificates/c-1", nil)
	req.RemoteAddr = "10.0.0.7"

	ev := BuildAuditEvent(req, AuditInput{
		EventName:  "certificate.delete",
		TargetType: "certificate",
		TargetID:   "c-1",
		Action:     "delete",
		Outcome:    "success",
	})
	if ev.ActorID != "anonymous" {
		t.Fatalf("expected anonymous actor, got %q", ev.ActorID)
	}
	if ev.ActorIP != "10.0.0.7" {
		t.Fatalf("expected raw remote addr without port, got %q", ev.ActorIP)
	}
	if ev.Reason != "success" {
		t.Fatalf("expected reason to default to outcome, got %q", ev.Reason)
	}
}

func TestAuditEventValidateRejectsBadEvents(t *testing.T) {
	valid := AuditEvent{
		EventVersion: 1,
		EventName:    "verification_request.create",
		ActorID:      "employer-1",
		ActorIP:      "127.0.0.1",
		TargetType:   "certificate",
		TargetID:     "c-1",
		Action:       "request_verification",
		Outcome:      "success",
		Reason:       "ok",
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	missingName := valid
	missingName.EventName = ""
	if err := missingName.Validate(); err == nil {
		t.Fatal("expected validation error for missing event_name")
	}

	badOutcome := valid
	badOutcome.Outcome = "maybe"
	if err := badOutcome.Validate(); err == nil {
		t.Fatal("expected validation error for unknown outcome")
	}
}

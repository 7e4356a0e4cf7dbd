package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelRendersResult(t *testing.T) {
	m := model{title: "seed apply"}
	if !strings.Contains(m.View(), "working") {
		t.Fatalf("expected working view, got %q", m.View())
	}

	next, _ := m.Update(actionMsg{details: []string{"created 6 users"}, elapsed: 12 * time.Millisecond})
	view := next.(model).View()
	if !strings.Contains(view, "OK") || !strings.Contains(view, "created 6 users") {
		t.Fatalf("unexpected success view: %q", view)
	}

	next, _ = m.Update(actionMsg{err: errors.New("boom")})
	view = next.(model).View()
	if !strings.Contains(view, "FAILED") || !strings.Contains(view, "boom") {
		t.Fatalf("unexpected failure view: %q", view)
	}
}

func TestModelCtrlCCancels(t *testing.T) {
	m := model{title: "seed apply"}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !errors.Is(next.(model).err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", next.(model).err)
	}
}

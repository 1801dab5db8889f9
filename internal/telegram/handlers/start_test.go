package handlers

import (
	"testing"

	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

func TestStartRegistersUser(t *testing.T) {
	env := newTestEnv()

	c := newFakeContext(10)
	if err := env.h.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.lastText(t); got != msgWelcome {
		t.Fatalf("reply = %q, want %q", got, msgWelcome)
	}
	if _, ok := env.db.users[10]; !ok {
		t.Fatal("user must be registered on /start")
	}

	// Repeated /start stays idempotent.
	if err := env.h.Start(c); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if len(env.db.users) != 1 {
		t.Fatalf("users = %d, want 1", len(env.db.users))
	}
}

func TestStopClearsPendingStep(t *testing.T) {
	env := newTestEnv()
	env.steps.Set(10, wizard.Step{Name: wizard.StepCategoryName})

	c := newFakeContext(10)
	if err := env.h.Stop(c); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := c.lastText(t); got != msgStop {
		t.Fatalf("reply = %q, want %q", got, msgStop)
	}
	if env.steps.InProgress(10) {
		t.Fatal("pending step must be dropped on /stop")
	}
}

func TestUnknownFallback(t *testing.T) {
	env := newTestEnv()

	c := newFakeContext(10)
	if err := env.h.Unknown(c); err != nil {
		t.Fatalf("Unknown: %v", err)
	}
	if got := c.lastText(t); got != msgUnknown {
		t.Fatalf("reply = %q, want %q", got, msgUnknown)
	}
}

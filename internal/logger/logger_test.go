package logger

import (
	"log/slog"
	"testing"
)

func TestComponentLoggersUsableBeforeInit(t *testing.T) {
	components := map[string]*slog.Logger{
		"L":          L,
		"DB":         DB,
		"TG":         TG,
		"MIG":        MIG,
		"TWire":      TWire,
		"SVCUsers":   SVCUsers,
		"SVCCatalog": SVCCatalog,
		"SVCCart":    SVCCart,
		"SVCOrders":  SVCOrders,
		"SVCMedia":   SVCMedia,
	}
	for name, l := range components {
		if l == nil {
			t.Fatalf("%s is nil before Init", name)
		}
	}
	// Must not panic without Init.
	SVCMedia.Debug("smoke", "ok", true)
}

func TestComponentNeverNil(t *testing.T) {
	if Component("") == nil {
		t.Fatal("Component(\"\") returned nil")
	}
	if Component("service.test") == nil {
		t.Fatal("Component returned nil")
	}
}

package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCachePinger struct {
	err error
}

func (m *mockCachePinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_MemoryOnly(t *testing.T) {
	r := New(nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["memory_cache"] != CheckOK {
		t.Errorf("expected memory_cache %q, got %q", CheckOK, r.Checks["memory_cache"])
	}
	if _, ok := r.Checks["shared_cache"]; ok {
		t.Error("shared_cache should not be checked when not configured")
	}
}

func TestCheck_SharedCacheHealthy(t *testing.T) {
	r := New(&mockCachePinger{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["shared_cache"] != CheckOK {
		t.Errorf("expected shared_cache %q, got %q", CheckOK, r.Checks["shared_cache"])
	}
}

func TestCheck_SharedCacheDown(t *testing.T) {
	r := New(&mockCachePinger{err: errors.New("connection refused")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["shared_cache"] != CheckError {
		t.Errorf("expected shared_cache %q, got %q", CheckError, r.Checks["shared_cache"])
	}
}

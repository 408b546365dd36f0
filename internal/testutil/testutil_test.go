package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("id-1", 1, 2, "2024-09-07")
	if g.ID != "id-1" || g.HomeTeamID != 1 || g.Date.String() != "2024-09-07" {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	s := SampleSchedule("s1")
	if s.ID != "s1" || len(s.Games) != 2 {
		t.Fatalf("unexpected schedule fixture %+v", s)
	}
	if len(SampleTeams()) != 3 || len(SampleConstraints()) != 3 || len(SampleViolations()) != 3 {
		t.Fatalf("unexpected fixture sizes")
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestStubHTTPServer(t *testing.T) {
	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	if err := sh.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	if err := sh.Shutdown(context.Background()); err == nil {
		t.Fatalf("expected shutdown error")
	}
	if sh.ListenCalls.Load() != 1 || sh.ShutdownCalls.Load() != 1 {
		t.Fatalf("expected listen/shutdown calls, got %d/%d", sh.ListenCalls.Load(), sh.ShutdownCalls.Load())
	}
	if sh.Addr() != ":0" || sh.Handler() == nil {
		t.Fatalf("expected default addr and handler")
	}
}

func TestStubHTTPServerBlocksUntilReleased(t *testing.T) {
	b := &StubHTTPServer{Unblock: make(chan struct{})}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	blocked := &StubHTTPServer{Unblock: make(chan struct{})}
	if err := blocked.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

func TestJSONBody(t *testing.T) {
	body := JSONBody(t, map[string]string{"sport": "soccer"})
	rr := Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got map[string]string
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil || got["sport"] != "soccer" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}), http.MethodPut, "/sport", body)
	AssertStatus(t, rr, http.StatusNoContent)
}

func TestTempExportWriter(t *testing.T) {
	w := NewTempExportWriter(t)
	if w.BasePath() == "" {
		t.Fatalf("expected temp base path")
	}
}

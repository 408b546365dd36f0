package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNetHTTPServerListenAndServeStopsOnShutdown(t *testing.T) {
	s := newNetHTTPServer("0", http.NewServeMux(), writeTimeout)
	s.srv.Addr = "127.0.0.1:0"
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	time.Sleep(50 * time.Millisecond)
	_ = s.Shutdown(context.Background())

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatalf("listen did not return after shutdown")
	}
}

func TestNewNetHTTPServerAppliesLimits(t *testing.T) {
	handler := http.NewServeMux()
	s := newNetHTTPServer("1234", handler, 42*time.Second)

	if s.Addr() != ":1234" {
		t.Fatalf("expected addr :1234, got %s", s.Addr())
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
	if s.srv.WriteTimeout != 42*time.Second || s.srv.ReadHeaderTimeout != readTimeout || s.srv.IdleTimeout != idleTimeout {
		t.Fatalf("unexpected timeouts %+v", s.srv)
	}
}

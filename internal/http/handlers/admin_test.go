package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/schedule-builder/internal/remote"
	"github.com/preston-bernstein/schedule-builder/internal/testutil"
)

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminReloadRequiresAuth(t *testing.T) {
	hs := newHarness(t)
	logger, buf := testutil.NewBufferLogger()
	h := NewAdminHandler(hs.orch, "secret", logger)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Reload), adminRequest("wrong"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	if buf.Len() == 0 {
		t.Fatalf("expected unauthorized attempt to be logged")
	}

	open := NewAdminHandler(hs.orch, "", nil)
	rr = testutil.ServeRequest(http.HandlerFunc(open.Reload), adminRequest(""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminReloadWithoutSport(t *testing.T) {
	hs := newHarness(t)
	h := NewAdminHandler(hs.orch, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Reload), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusConflict)
}

func TestAdminReloadRefetchesSelectionAndSchedule(t *testing.T) {
	hs := newHarness(t).loaded(t)
	h := NewAdminHandler(hs.orch, "secret", nil)
	teamsBefore := hs.remote.Calls(remote.OpListTeams)
	getsBefore := hs.remote.Calls(remote.OpGetSchedule)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Reload), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	if hs.remote.Calls(remote.OpListTeams) != teamsBefore+1 {
		t.Fatalf("expected teams refetched")
	}
	if hs.remote.Calls(remote.OpGetSchedule) != getsBefore+1 {
		t.Fatalf("expected schedule reloaded")
	}
	if s, ok := hs.orch.CurrentSchedule(); !ok || s.ID != "A" {
		t.Fatalf("expected schedule A current after reload, got %+v", s)
	}
}

func TestAdminReloadUpstreamFailure(t *testing.T) {
	hs := newHarness(t).loaded(t)
	h := NewAdminHandler(hs.orch, "secret", nil)
	hs.remote.SetErr(remote.OpGetSchedule, errors.New("down"))

	rr := testutil.ServeRequest(http.HandlerFunc(h.Reload), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

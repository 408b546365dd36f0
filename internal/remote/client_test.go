package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/timeutil"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	client := NewClient(Config{
		BaseURL:    "http://example.com/",
		APIKey:     "secret",
		HTTPClient: &http.Client{Transport: rt},
	})
	client.newID = func() string { return "req-1" }
	return client
}

func TestListTeamsShapesQueryAndHeaders(t *testing.T) {
	var captured *http.Request
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{"success":true,"teams":[{"teamId":7,"name":"Utah","shortName":"UTAH"}]}`), nil
	})

	got, err := client.ListTeams(context.Background(), "football", "big12")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured.Method != http.MethodGet || captured.URL.Path != "/api/teams" {
		t.Fatalf("unexpected request %s %s", captured.Method, captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("sport") != "football" || q.Get("conference") != "big12" {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if captured.Header.Get("Authorization") != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", captured.Header.Get("Authorization"))
	}
	if captured.Header.Get("X-Request-ID") != "req-1" {
		t.Fatalf("expected request id header")
	}
	if len(got) != 1 || got[0].TeamID != 7 || got[0].Label() != "UTAH" {
		t.Fatalf("unexpected teams %+v", got)
	}
}

func TestListTeamsOmitsEmptyFilters(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.RawQuery != "" {
			t.Fatalf("expected no query params, got %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `[]`), nil
	})
	if _, err := client.ListTeams(context.Background(), "", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestNon2xxReturnsRequestFailed(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "upstream down"), nil
	})

	_, err := client.ListConstraints(context.Background(), "football")
	rf, ok := AsRequestFailed(err)
	if !ok {
		t.Fatalf("expected request failed error, got %v", err)
	}
	if rf.Operation != OpListConstraints || rf.StatusCode != http.StatusBadGateway || rf.Message != "upstream down" {
		t.Fatalf("unexpected error %+v", rf)
	}
}

func TestTransportErrorIsNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	_, err := client.GetSchedule(context.Background(), "s1")
	if _, ok := AsRequestFailed(err); !ok {
		t.Fatalf("expected request failed error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestCreateAndUpdateScheduleUseMethodSemantics(t *testing.T) {
	var methods, paths []string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		methods = append(methods, req.Method)
		paths = append(paths, req.URL.Path)
		if req.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("expected json content type")
		}
		var body schedules.Schedule
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		body.ID = "s9"
		out, _ := json.Marshal(map[string]any{"success": true, "schedule": body})
		return jsonResponse(http.StatusOK, string(out)), nil
	})

	created, err := client.CreateSchedule(context.Background(), schedules.Schedule{Name: "Fall", Sport: "football"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "s9" || created.Name != "Fall" {
		t.Fatalf("unexpected created schedule %+v", created)
	}
	if _, err := client.UpdateSchedule(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	if methods[0] != http.MethodPost || paths[0] != "/api/schedule/schedules" {
		t.Fatalf("expected POST to collection, got %s %s", methods[0], paths[0])
	}
	if methods[1] != http.MethodPut || paths[1] != "/api/schedule/schedules/s9" {
		t.Fatalf("expected PUT to item, got %s %s", methods[1], paths[1])
	}
}

func TestUpdateScheduleRequiresID(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("expected no request without id")
		return nil, nil
	})
	if _, err := client.UpdateSchedule(context.Background(), schedules.Schedule{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestGenerateSchedulePostsRequestBody(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/schedule/schedules/generate" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		for _, key := range []string{"sport", "season", "teams", "algorithm", "constraints", "startDate", "endDate", "gameFormat", "restDays", "homeAwayBalance", "avoidBackToBack", "respectAcademicCalendar"} {
			if _, ok := body[key]; !ok {
				t.Fatalf("expected %s in generate body, got %v", key, body)
			}
		}
		if body["startDate"] != "2025-08-30" {
			t.Fatalf("expected calendar date, got %v", body["startDate"])
		}
		return jsonResponse(http.StatusOK, `{"schedule":{"name":"Generated","games":[{"id":"g1","homeTeamId":1,"awayTeamId":2,"date":"2025-08-30","status":"tentative"}]}}`), nil
	})

	got, err := client.GenerateSchedule(context.Background(), schedules.GenerateRequest{
		Sport:       "football",
		Season:      "2025",
		Teams:       []int{1, 2},
		Constraints: []string{"c1"},
		StartDate:   timeutil.MustDate("2025-08-30"),
		EndDate:     timeutil.MustDate("2025-12-06"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Games) != 1 || got.Games[0].Status != games.StatusTentative {
		t.Fatalf("unexpected schedule %+v", got)
	}
	if got.Games[0].HomeTeamID != 1 || got.Games[0].AwayTeamID != 2 {
		t.Fatalf("unexpected schedule %+v", got)
	}
}

func TestOptimizeSendsConstraintIDs(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/schedule/schedules/s1/optimize" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		data, _ := io.ReadAll(req.Body)
		if string(data) != `{"constraints":[]}` {
			t.Fatalf("expected empty constraint list, got %s", data)
		}
		return jsonResponse(http.StatusOK, `{"id":"s1","name":"Opt"}`), nil
	})
	got, err := client.OptimizeSchedule(context.Background(), "s1", nil)
	if err != nil || got.Name != "Opt" {
		t.Fatalf("unexpected result %+v %v", got, err)
	}
}

func TestViolationsAndFixPaths(t *testing.T) {
	var paths []string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.Method+" "+req.URL.Path)
		if strings.HasSuffix(req.URL.Path, "/fix") {
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		}
		return jsonResponse(http.StatusOK, `{"violations":[{"id":"v1","constraintId":"c1","type":"error","severity":3,"message":"x","autoFixable":true}]}`), nil
	})

	vs, err := client.ListViolations(context.Background(), "s 1")
	if err != nil || len(vs) != 1 || !vs[0].AutoFixable {
		t.Fatalf("unexpected violations %+v %v", vs, err)
	}
	if _, err := client.FixViolation(context.Background(), "v1"); err != nil {
		t.Fatalf("fix: %v", err)
	}
	if paths[0] != "GET /api/schedule/schedules/s 1/violations" {
		t.Fatalf("unexpected violations path %s", paths[0])
	}
	if paths[1] != "POST /api/violations/v1/fix" {
		t.Fatalf("unexpected fix path %s", paths[1])
	}
}

func TestGameEndpoints(t *testing.T) {
	var seen []string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.Method+" "+req.URL.Path)
		switch {
		case strings.HasSuffix(req.URL.Path, "/validate"):
			return jsonResponse(http.StatusOK, `{"valid":false,"conflicts":["venue double-booked"]}`), nil
		case req.Method == http.MethodDelete:
			return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
		case req.Method == http.MethodGet:
			return jsonResponse(http.StatusOK, `{"games":[{"id":"g1"}]}`), nil
		default:
			return jsonResponse(http.StatusOK, `{"game":{"id":"g2","homeTeamId":1,"awayTeamId":2}}`), nil
		}
	})
	ctx := context.Background()

	list, err := client.ListGames(ctx, "s1")
	if err != nil || len(list) != 1 {
		t.Fatalf("list games: %+v %v", list, err)
	}
	created, err := client.CreateGame(ctx, "s1", games.Game{HomeTeamID: 1, AwayTeamID: 2})
	if err != nil || created.ID != "g2" || created.HomeTeamID != 1 || created.AwayTeamID != 2 {
		t.Fatalf("create game: %+v %v", created, err)
	}
	if _, err := client.UpdateGame(ctx, created); err != nil {
		t.Fatalf("update game: %v", err)
	}
	if err := client.DeleteGame(ctx, "g2"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	verdict, err := client.ValidateGame(ctx, created)
	if err != nil || verdict.Valid || len(verdict.Conflicts) != 1 {
		t.Fatalf("validate game: %+v %v", verdict, err)
	}

	want := []string{
		"GET /api/schedule/schedules/s1/games",
		"POST /api/schedule/schedules/s1/games",
		"PUT /api/schedule/games/g2",
		"DELETE /api/schedule/games/g2",
		"POST /api/schedule/games/validate",
	}
	for i, w := range want {
		if seen[i] != w {
			t.Fatalf("call %d: expected %s, got %s", i, w, seen[i])
		}
	}
}

func TestListVenuesAndSchedulesQuery(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		switch req.URL.Path {
		case "/api/venues":
			if q.Get("school_id") != "12" || q.Get("sport") != "soccer" {
				t.Fatalf("unexpected venue query %s", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, `{"venues":[{"id":1,"name":"Field","schoolId":12}]}`), nil
		case "/api/schedule/schedules":
			if q.Get("season") != "2025" || q.Get("status") != "draft" {
				t.Fatalf("unexpected schedule query %s", req.URL.RawQuery)
			}
			return jsonResponse(http.StatusOK, `{"schedules":[{"id":"a"},{"id":"b"}]}`), nil
		}
		t.Fatalf("unexpected path %s", req.URL.Path)
		return nil, nil
	})

	venues, err := client.ListVenues(context.Background(), "soccer", 12)
	if err != nil || len(venues) != 1 {
		t.Fatalf("venues: %+v %v", venues, err)
	}
	list, err := client.ListSchedules(context.Background(), schedules.Filter{Season: "2025", Status: schedules.StatusDraft})
	if err != nil || len(list) != 2 {
		t.Fatalf("schedules: %+v %v", list, err)
	}
}

func TestExportScheduleAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/schedule/schedules/s1/export" || r.URL.Query().Get("format") != "csv" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="big12-football.csv"`)
		_, _ = w.Write([]byte("home,away\n1,2\n"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	exp, err := client.ExportSchedule(context.Background(), "s1", schedules.FormatCSV)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exp.Filename != "big12-football.csv" || exp.ContentType != "text/csv" {
		t.Fatalf("unexpected export metadata %+v", exp)
	}
	if string(exp.Data) != "home,away\n1,2\n" {
		t.Fatalf("unexpected export data %q", exp.Data)
	}
}

func TestExportScheduleDefaultsFilename(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("BEGIN:VCALENDAR")), Header: http.Header{}}, nil
	})
	exp, err := client.ExportSchedule(context.Background(), "s2", schedules.FormatICS)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if exp.Filename != "schedule-s2.ics" {
		t.Fatalf("expected default filename, got %s", exp.Filename)
	}
}

func TestExportScheduleRejectsUnknownFormat(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		t.Fatalf("expected no request for invalid format")
		return nil, nil
	})
	_, err := client.ExportSchedule(context.Background(), "s1", "docx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodDelete || req.URL.Path != "/api/schedule/schedules/s1" {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(strings.NewReader("")), Header: http.Header{}}, nil
	})
	if err := client.DeleteSchedule(context.Background(), "s1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

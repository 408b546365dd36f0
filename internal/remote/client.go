package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
)

// Config controls how the client reaches the scheduling service.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client is a typed wrapper over the scheduling service's HTTP API.
// It shapes requests and unwraps responses; failures are returned as-is, never retried.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	newID      func() string
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		newID:      uuid.NewString,
	}
}

// Export is an opaque downloadable schedule payload.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ListTeams returns the teams for a sport/conference.
func (c *Client) ListTeams(ctx context.Context, sport, conference string) ([]teams.Team, error) {
	q := url.Values{}
	setIf(q, "sport", sport)
	setIf(q, "conference", conference)
	body, _, err := c.do(ctx, OpListTeams, http.MethodGet, pathTeams, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeTeams(body)
}

// ListVenues returns venues for a sport, optionally scoped to one school.
func (c *Client) ListVenues(ctx context.Context, sport string, schoolID int) ([]teams.Venue, error) {
	q := url.Values{}
	setIf(q, "sport", sport)
	if schoolID > 0 {
		q.Set("school_id", strconv.Itoa(schoolID))
	}
	body, _, err := c.do(ctx, OpListVenues, http.MethodGet, pathVenues, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeVenues(body)
}

// ListSchedules returns schedules matching the filter.
func (c *Client) ListSchedules(ctx context.Context, filter schedules.Filter) ([]schedules.Schedule, error) {
	q := url.Values{}
	setIf(q, "sport", filter.Sport)
	setIf(q, "season", filter.Season)
	setIf(q, "conference", filter.Conference)
	setIf(q, "status", string(filter.Status))
	body, _, err := c.do(ctx, OpListSchedules, http.MethodGet, pathSchedules, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeSchedules(body)
}

// GetSchedule loads one schedule including its games.
func (c *Client) GetSchedule(ctx context.Context, id string) (schedules.Schedule, error) {
	body, _, err := c.do(ctx, OpGetSchedule, http.MethodGet, schedulePath(id), nil, nil)
	if err != nil {
		return schedules.Schedule{}, err
	}
	return decodeSchedule(OpGetSchedule, body)
}

// CreateSchedule persists a new schedule and returns the stored entity.
func (c *Client) CreateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error) {
	body, _, err := c.do(ctx, OpCreateSchedule, http.MethodPost, pathSchedules, nil, s)
	if err != nil {
		return schedules.Schedule{}, err
	}
	return decodeSchedule(OpCreateSchedule, body)
}

// UpdateSchedule replaces a persisted schedule and returns the stored entity.
func (c *Client) UpdateSchedule(ctx context.Context, s schedules.Schedule) (schedules.Schedule, error) {
	if s.ID == "" {
		return schedules.Schedule{}, requestFailed(OpUpdateSchedule, 0, "schedule id required", nil)
	}
	body, _, err := c.do(ctx, OpUpdateSchedule, http.MethodPut, schedulePath(s.ID), nil, s)
	if err != nil {
		return schedules.Schedule{}, err
	}
	return decodeSchedule(OpUpdateSchedule, body)
}

// DeleteSchedule removes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, OpDeleteSchedule, http.MethodDelete, schedulePath(id), nil, nil)
	return err
}

// ListGames returns the games of one schedule.
func (c *Client) ListGames(ctx context.Context, scheduleID string) ([]games.Game, error) {
	body, _, err := c.do(ctx, OpListGames, http.MethodGet, schedulePath(scheduleID)+"/games", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeGames(body)
}

// CreateGame adds a game to a schedule.
func (c *Client) CreateGame(ctx context.Context, scheduleID string, g games.Game) (games.Game, error) {
	body, _, err := c.do(ctx, OpCreateGame, http.MethodPost, schedulePath(scheduleID)+"/games", nil, g)
	if err != nil {
		return games.Game{}, err
	}
	return decodeGame(OpCreateGame, body)
}

// UpdateGame replaces a game.
func (c *Client) UpdateGame(ctx context.Context, g games.Game) (games.Game, error) {
	body, _, err := c.do(ctx, OpUpdateGame, http.MethodPut, gamePath(g.ID), nil, g)
	if err != nil {
		return games.Game{}, err
	}
	return decodeGame(OpUpdateGame, body)
}

// DeleteGame removes a game.
func (c *Client) DeleteGame(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, OpDeleteGame, http.MethodDelete, gamePath(id), nil, nil)
	return err
}

// ValidateGame asks the service whether a game fits its schedule.
func (c *Client) ValidateGame(ctx context.Context, g games.Game) (games.Validation, error) {
	body, _, err := c.do(ctx, OpValidateGame, http.MethodPost, pathGames+"/validate", nil, g)
	if err != nil {
		return games.Validation{}, err
	}
	return decodeValidation(body)
}

// ListConstraints returns the constraint catalog for a sport.
func (c *Client) ListConstraints(ctx context.Context, sport string) ([]constraints.Constraint, error) {
	q := url.Values{}
	setIf(q, "sport", sport)
	body, _, err := c.do(ctx, OpListConstraints, http.MethodGet, pathConstraints, q, nil)
	if err != nil {
		return nil, err
	}
	return decodeConstraints(body)
}

// ListViolations returns the violations the service derives for a schedule.
func (c *Client) ListViolations(ctx context.Context, scheduleID string) ([]constraints.Violation, error) {
	body, _, err := c.do(ctx, OpListViolations, http.MethodGet, schedulePath(scheduleID)+"/violations", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeViolations(body)
}

// FixViolation asks the service to auto-fix a violation and returns the fixed entity as-is.
func (c *Client) FixViolation(ctx context.Context, id string) (json.RawMessage, error) {
	body, _, err := c.do(ctx, OpFixViolation, http.MethodPost, pathViolations+"/"+url.PathEscape(id)+"/fix", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeFix(body)
}

// GenerateSchedule asks the service to build a schedule from scratch.
func (c *Client) GenerateSchedule(ctx context.Context, req schedules.GenerateRequest) (schedules.Schedule, error) {
	body, _, err := c.do(ctx, OpGenerateSchedule, http.MethodPost, pathSchedules+"/generate", nil, req)
	if err != nil {
		return schedules.Schedule{}, err
	}
	return decodeSchedule(OpGenerateSchedule, body)
}

// OptimizeSchedule re-optimizes a persisted schedule against the given constraints.
func (c *Client) OptimizeSchedule(ctx context.Context, id string, constraintIDs []string) (schedules.Schedule, error) {
	if constraintIDs == nil {
		constraintIDs = []string{}
	}
	payload := struct {
		Constraints []string `json:"constraints"`
	}{Constraints: constraintIDs}
	body, _, err := c.do(ctx, OpOptimizeSchedule, http.MethodPost, schedulePath(id)+"/optimize", nil, payload)
	if err != nil {
		return schedules.Schedule{}, err
	}
	return decodeSchedule(OpOptimizeSchedule, body)
}

// ExportSchedule downloads a schedule in the requested format.
func (c *Client) ExportSchedule(ctx context.Context, id string, format schedules.ExportFormat) (Export, error) {
	if !format.Valid() {
		return Export{}, requestFailed(OpExportSchedule, 0, string(format), ErrUnsupportedFormat)
	}
	q := url.Values{}
	q.Set("format", string(format))
	body, header, err := c.do(ctx, OpExportSchedule, http.MethodGet, schedulePath(id)+"/export", q, nil)
	if err != nil {
		return Export{}, err
	}
	filename := filenameFromDisposition(header.Get("Content-Disposition"))
	if filename == "" {
		filename = fmt.Sprintf("schedule-%s.%s", id, format)
	}
	return Export{
		Filename:    filename,
		ContentType: header.Get("Content-Type"),
		Data:        body,
	}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, http.Header, error) {
	req, err := c.buildRequest(ctx, method, path, query, payload)
	if err != nil {
		return nil, nil, requestFailed(op, 0, "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, requestFailed(op, 0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, nil, requestFailed(op, resp.StatusCode, strings.TrimSpace(string(body)), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, requestFailed(op, resp.StatusCode, "read body", err)
	}
	return body, resp.Header, nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.newID != nil {
		req.Header.Set("X-Request-ID", c.newID())
	}
	return req, nil
}

func schedulePath(id string) string {
	return pathSchedules + "/" + url.PathEscape(id)
}

func gamePath(id string) string {
	return pathGames + "/" + url.PathEscape(id)
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func filenameFromDisposition(raw string) string {
	if raw == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return ""
	}
	return params["filename"]
}

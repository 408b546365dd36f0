package remote

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/games"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/domain/teams"
)

// The service wraps some responses as {"success": true, "<entity>": ...} and returns
// others bare. Each decoder below names the envelope key for its entity so callers
// never branch on response shape.

// unwrap decodes body[key] when body is an object carrying key, otherwise the raw body.
// A key that is present but null yields the zero value.
// An explicit "success": false is reported as a failure for op.
func unwrap[T any](op string, body []byte, key string) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return out, nil
	}

	if trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			if err := checkEnvelope(op, fields); err != nil {
				return out, err
			}
			if raw, ok := fields[key]; ok {
				if isNull(raw) {
					return out, nil
				}
				if err := json.Unmarshal(raw, &out); err != nil {
					return out, requestFailed(op, 0, fmt.Sprintf("decode %s", key), err)
				}
				return out, nil
			}
		}
	}

	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, requestFailed(op, 0, "decode response", err)
	}
	return out, nil
}

func checkEnvelope(op string, fields map[string]json.RawMessage) error {
	raw, ok := fields["success"]
	if !ok {
		return nil
	}
	var success bool
	if err := json.Unmarshal(raw, &success); err != nil || success {
		return nil
	}
	detail := "service reported failure"
	for _, key := range []string{"error", "message"} {
		var msg string
		if v, ok := fields[key]; ok && json.Unmarshal(v, &msg) == nil && msg != "" {
			detail = msg
			break
		}
	}
	return requestFailed(op, 0, detail, nil)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// unwrapList is unwrap for collections; a non-empty body never yields a nil slice.
func unwrapList[E any](op string, body []byte, key string) ([]E, error) {
	out, err := unwrap[[]E](op, body, key)
	if err == nil && out == nil && len(bytes.TrimSpace(body)) > 0 {
		out = []E{}
	}
	return out, err
}

func decodeTeams(body []byte) ([]teams.Team, error) {
	return unwrapList[teams.Team](OpListTeams, body, "teams")
}

func decodeVenues(body []byte) ([]teams.Venue, error) {
	return unwrapList[teams.Venue](OpListVenues, body, "venues")
}

func decodeSchedules(body []byte) ([]schedules.Schedule, error) {
	return unwrapList[schedules.Schedule](OpListSchedules, body, "schedules")
}

func decodeSchedule(op string, body []byte) (schedules.Schedule, error) {
	return unwrap[schedules.Schedule](op, body, "schedule")
}

func decodeGames(body []byte) ([]games.Game, error) {
	return unwrapList[games.Game](OpListGames, body, "games")
}

func decodeGame(op string, body []byte) (games.Game, error) {
	return unwrap[games.Game](op, body, "game")
}

func decodeValidation(body []byte) (games.Validation, error) {
	return unwrap[games.Validation](OpValidateGame, body, "validation")
}

func decodeConstraints(body []byte) ([]constraints.Constraint, error) {
	return unwrapList[constraints.Constraint](OpListConstraints, body, "constraints")
}

func decodeViolations(body []byte) ([]constraints.Violation, error) {
	return unwrapList[constraints.Violation](OpListViolations, body, "violations")
}

func decodeFix(body []byte) (json.RawMessage, error) {
	return unwrap[json.RawMessage](OpFixViolation, body, "result")
}

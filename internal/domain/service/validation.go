package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nexlearn/agenthub/internal/domain/entity"
)

// Validation over inbound payload maps. Pure functions: never mutate the
// input, never touch the database. An empty slice means the payload is valid.

// ValidateAgentCreate checks a creation payload. creator_id and a non-empty
// name are mandatory; typed/enum fields are checked whenever present.
func ValidateAgentCreate(payload map[string]any) []string {
	var violations []string

	if id, ok := PayloadUint(payload, "creator_id"); !ok || id == 0 {
		violations = append(violations, "creator_id is required and must be a positive integer")
	}

	name, ok := payload["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		violations = append(violations, "name is required and must be a non-empty string")
	}

	return append(violations, validateTypedFields(payload)...)
}

// ValidateAgentUpdate checks a partial-update payload. No key is mandatory,
// but any enum or typed field that is present must still hold a legal value.
func ValidateAgentUpdate(patch map[string]any) []string {
	var violations []string

	if raw, present := patch["name"]; present {
		if name, ok := raw.(string); !ok || strings.TrimSpace(name) == "" {
			violations = append(violations, "name must be a non-empty string")
		}
	}

	return append(violations, validateTypedFields(patch)...)
}

// validateTypedFields checks enum and range constraints shared by both modes.
func validateTypedFields(payload map[string]any) []string {
	var violations []string

	if raw, present := payload["visibility"]; present {
		if s, ok := raw.(string); !ok || !entity.Visibility(s).Valid() {
			violations = append(violations, enumViolation("visibility", entity.VisibilityValues()))
		}
	}
	if raw, present := payload["role"]; present {
		if s, ok := raw.(string); !ok || !entity.Role(s).Valid() {
			violations = append(violations, enumViolation("role", entity.RoleValues()))
		}
	}
	if raw, present := payload["agent_type"]; present {
		if s, ok := raw.(string); !ok || !entity.AgentType(s).Valid() {
			violations = append(violations, enumViolation("agent_type", entity.AgentTypeValues()))
		}
	}

	if raw, present := payload["temperature"]; present {
		if f, ok := payloadFloat(raw); !ok || f < 0 || f > 2 {
			violations = append(violations, "temperature must be a number between 0 and 2")
		}
	}
	if raw, present := payload["max_tokens"]; present {
		if f, ok := payloadFloat(raw); !ok || f != float64(int64(f)) || f <= 0 {
			violations = append(violations, "max_tokens must be a positive integer")
		}
	}
	if raw, present := payload["price_amount"]; present {
		if f, ok := payloadFloat(raw); !ok || f < 0 {
			violations = append(violations, "price_amount must be a non-negative number")
		}
	}

	return violations
}

func enumViolation(field string, allowed []string) string {
	return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

// PayloadUint reads a positive integer from a decoded JSON map. JSON numbers
// arrive as float64; string forms are tolerated because some clients send
// ids as strings.
func PayloadUint(payload map[string]any, key string) (uint64, bool) {
	raw, present := payload[key]
	if !present {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func payloadFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

package persistence

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// columnSetter 把请求里的原始值转换成某一列的落库值。
// 转换失败返回错误，由调用方包装成 INVALID_INPUT。
type columnSetter func(raw any) (any, error)

// agentUpdateColumns 部分更新允许列表：字段名 → 列 setter。
// 不在表里的键（含 id / creator_id / external_id）被静默丢弃，
// 与归属、主键相关的列因此永远改不了。
var agentUpdateColumns = map[string]struct {
	column string
	set    columnSetter
}{
	"name":           {"name", stringValue("name")},
	"description":    {"description", stringValue("description")},
	"avatar_url":     {"avatar_url", stringValue("avatar_url")},
	"model_name":     {"model_name", stringValue("model_name")},
	"temperature":    {"temperature", floatValue("temperature")},
	"max_tokens":     {"max_tokens", intValue("max_tokens")},
	"visibility":     {"visibility", stringValue("visibility")},
	"role":           {"role", stringValue("role")},
	"agent_type":     {"agent_type", stringValue("agent_type")},
	"traits":         {"traits", jsonValue("traits")},
	"personality":    {"personality", jsonValue("personality")},
	"courses":        {"courses", jsonValue("courses")},
	"price_amount":   {"price_amount", floatValue("price_amount")},
	"price_currency": {"price_currency", stringValue("price_currency")},
}

// buildAgentUpdates 过滤 patch 并生成列 → 值映射。
// 过滤后为空返回 INVALID_INPUT("no valid fields to update")。
func buildAgentUpdates(patch map[string]any) (map[string]any, error) {
	updates := make(map[string]any, len(patch))
	for key, raw := range patch {
		col, ok := agentUpdateColumns[key]
		if !ok {
			continue // 未知键静默丢弃
		}
		value, err := col.set(raw)
		if err != nil {
			return nil, domainErrors.NewInvalidInputError(err.Error())
		}
		updates[col.column] = value
	}

	if len(updates) == 0 {
		return nil, domainErrors.NewInvalidInputError("no valid fields to update")
	}
	return updates, nil
}

func stringValue(field string) columnSetter {
	return func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", field)
		}
		return strings.TrimSpace(s), nil
	}
}

func floatValue(field string) columnSetter {
	return func(raw any) (any, error) {
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("%s must be a number", field)
		}
	}
}

func intValue(field string) columnSetter {
	return func(raw any) (any, error) {
		switch v := raw.(type) {
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("%s must be an integer", field)
			}
			return int(v), nil
		case int:
			return v, nil
		default:
			return nil, fmt.Errorf("%s must be an integer", field)
		}
	}
}

// jsonValue JSON 值字段入库前序列化
func jsonValue(field string) columnSetter {
	return func(raw any) (any, error) {
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("%s is not serializable", field)
		}
		return datatypes.JSON(data), nil
	}
}

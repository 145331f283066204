package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors in hand-written or model output.
// Supported repairs include unquoted keys, single quotes, unclosed arrays and
// objects, trailing commas, and comments.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// HJSONToJSON converts Human JSON (comments, unquoted keys and strings,
// optional commas) to standard JSON.
func HJSONToJSON(data []byte) ([]byte, error) {
	var result interface{}
	if err := hjson.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("hjson parse error: %w", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("json marshal error: %w", err)
	}
	return out, nil
}

// DecodeLenient decodes data into v, trying progressively more lenient
// strategies:
//  1. standard JSON
//  2. Hjson (comments, unquoted keys and strings)
//  3. repaired JSON (single quotes, unclosed objects, code fences)
//
// The strict error is returned when every strategy fails.
func DecodeLenient(data []byte, v interface{}) error {
	strictErr := json.Unmarshal(data, v)
	if strictErr == nil {
		return nil
	}

	if converted, err := HJSONToJSON(data); err == nil {
		if err := json.Unmarshal(converted, v); err == nil {
			return nil
		}
	}

	if repaired, err := RepairJSON(StripCodeFence(string(data))); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	return fmt.Errorf("all decode strategies failed: %w", strictErr)
}

// DecodeHJSON decodes an Hjson document (e.g. a hand-edited input file) into v
// through its JSON form, so that v's json tags apply.
func DecodeHJSON(data []byte, v interface{}) error {
	converted, err := HJSONToJSON(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(converted, v); err != nil {
		return fmt.Errorf("hjson decode error: %w", err)
	}
	return nil
}

// StripCodeFence removes a single outer markdown code fence such as
// ```json ... ``` and surrounding whitespace.
func StripCodeFence(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}
	cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "```"), "```")
	// Drop the info string (json, markdown, ...) on the opening line.
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 && !strings.ContainsAny(cleaned[:nl], "{[") {
		cleaned = cleaned[nl+1:]
	}
	return strings.TrimSpace(cleaned)
}

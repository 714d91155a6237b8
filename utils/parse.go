package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxZone is the highest fare zone a station may declare.
const MaxZone = 100

// ParseZones converts a raw zone value into the fare zones a station belongs to.
// A value with a fractional part of exactly .5 spans two zones ("2.5" => [2 3]),
// anything else is truncated to a single zone.
func ParseZones(zone interface{}) ([]int, error) {
	v, err := ParseNumber(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid zone %v: %w", zone, err)
	}
	if v < 0 || v > MaxZone {
		return nil, fmt.Errorf("invalid zone %v: out of range 0-%d", zone, MaxZone)
	}

	floor := math.Floor(v)
	if v-floor == 0.5 {
		return []int{int(floor), int(floor) + 1}, nil
	}
	return []int{int(floor)}, nil
}

// ParseMinutes parses a travel time, rejecting negative values.
func ParseMinutes(t interface{}) (float64, error) {
	v, err := ParseNumber(t)
	if err != nil {
		return 0, fmt.Errorf("invalid time %v: %w", t, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid time %v: negative travel time", t)
	}
	return v, nil
}

// ParseNumber accepts the loosely typed numbers found in map files. NaN and
// infinities are rejected.
func ParseNumber(value interface{}) (float64, error) {
	v, err := parseNumber(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

func parseNumber(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

// ParseID normalises ids that may be encoded as JSON strings or numbers.
func ParseID(id interface{}) (string, error) {
	switch v := id.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", fmt.Errorf("empty id")
		}
		return s, nil
	case float64:
		if v != math.Trunc(v) {
			return "", fmt.Errorf("non-integer id %v", v)
		}
		return strconv.FormatInt(int64(v), 10), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.Number:
		return v.String(), nil
	case nil:
		return "", fmt.Errorf("missing id")
	default:
		return "", fmt.Errorf("unsupported id type %T", id)
	}
}

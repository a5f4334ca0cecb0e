// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package preferences decodes the string-list columns stored with users and
// food items. A list may be stored as a delimited string ("Italian, Thai")
// or as a bracketed list literal ("['Italian', 'Thai']"). Both decode to the
// same ordered slice. The literal form is decoded as data only.
package preferences

import (
	"strings"

	"github.com/goccy/go-json"
)

// Parse decodes raw into an ordered list with empty elements dropped.
func Parse(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if out, ok := parseLiteral(s); ok {
			return out
		}
		return splitTrim(s[1:len(s)-1], ",")
	}

	return splitTrim(s, ",")
}

// Format encodes a list in the delimited form used when writing rows.
func Format(values []string) string {
	return strings.Join(values, ", ")
}

// parseLiteral decodes a list literal by normalizing single quotes to double
// quotes and reading it as a JSON string array.
func parseLiteral(s string) ([]string, bool) {
	var raw []string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &raw); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, true
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

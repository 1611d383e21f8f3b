// Copyright 2025 The applymeta authors
// SPDX-License-Identifier: MIT

package apply

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Record is one metadata object from the input JSON array. Values are
// whatever encoding/json produced: strings, float64 numbers, bools,
// nulls, or nested objects/arrays.
type Record map[string]any

// LoadRecords reads a JSON file whose root must be an array of
// objects, one per media file, in pairing order.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("metadata root must be a JSON array: %w", err)
	}

	recs := make([]Record, len(raw))
	for i, m := range raw {
		var rec Record
		if err := json.Unmarshal(m, &rec); err != nil {
			return nil, fmt.Errorf("metadata entry %d is not an object: %w", i, err)
		}
		recs[i] = rec
	}
	return recs, nil
}

// Fields returns the record's scalar metadata as "key=value" pairs in
// sorted key order. The image key, nulls, nested values, and strings
// that are blank after trimming are skipped.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields []string
	for _, k := range keys {
		if k == "image" {
			continue
		}
		v := r[k]
		if v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		s := strings.TrimSpace(scalarString(v))
		if s == "" {
			continue
		}
		fields = append(fields, k+"="+s)
	}
	return fields
}

// Image returns the record's explicit artwork path, if present and
// non-blank.
func (r Record) Image() (string, bool) {
	v, ok := r["image"]
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(scalarString(v))
	if s == "" {
		return "", false
	}
	return s, true
}

func scalarString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integers without a
		// fractional part.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

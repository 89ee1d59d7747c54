package simpleexcel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// Record is a flat key/value row that remembers the order in which its keys
// were first seen. Column order of an exported sheet follows that order.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// NewRecord returns an empty record.
func NewRecord() Record {
	return Record{values: make(map[string]interface{})}
}

// Set stores value under key. A key that already exists keeps its position.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in first-seen order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// UnmarshalJSON decodes a JSON object keeping the key order of the input.
func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %s", b)
	}

	*r = NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected record key %v", tok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode value of %q: %w", key, err)
		}
		r.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecordFromMapSlice converts an ordered YAML mapping into a Record.
func RecordFromMapSlice(ms yaml.MapSlice) Record {
	rec := NewRecord()
	for _, item := range ms {
		rec.Set(fmt.Sprintf("%v", item.Key), item.Value)
	}
	return rec
}

// RecordsToGrid lays records out as a sheet grid. The first row holds the
// union of all keys in first-seen order; each following row holds one
// record's values under those headers, nil where the record lacks the key.
// Nested objects and arrays are rendered as compact JSON text.
func RecordsToGrid(records []Record) [][]interface{} {
	if len(records) == 0 {
		return nil
	}

	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range rec.keys {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}

	grid := make([][]interface{}, 0, len(records)+1)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	grid = append(grid, headerRow)

	for _, rec := range records {
		row := make([]interface{}, len(headers))
		for i, h := range headers {
			v, ok := rec.values[h]
			if !ok {
				continue
			}
			row[i] = cellValue(v)
		}
		grid = append(grid, row)
	}
	return grid
}

func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case map[string]interface{}, []interface{}, Record:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
	return v
}

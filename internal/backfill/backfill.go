// Package backfill assigns IDs to records of a collection file that were written without one.
package backfill

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/PizzaHomicide/hypelist/internal/log"
	"github.com/PizzaHomicide/hypelist/internal/repository/jsonfile"
)

// Result describes what a backfill changed
type Result struct {
	Records int
	Filled  int
	// IDs that appear more than once after the backfill.  A position based ID can collide with an ID that was set by
	// hand, which the backfill never overwrites.
	Duplicates []string
}

// File backfills the JSON array stored at path and writes it back in place
func File(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, result, err := Bytes(data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to backfill %s: %w", path, err)
	}

	if err := jsonfile.WriteFileAtomic(path, out); err != nil {
		return Result{}, err
	}

	log.Info("Backfilled collection IDs", "path", path, "records", result.Records, "filled", result.Filled)
	if len(result.Duplicates) > 0 {
		log.Warn("Collection has duplicate IDs after backfill", "path", path, "ids", result.Duplicates)
	}
	return result, nil
}

// Bytes backfills a JSON array.  Every element without an ID (absent, null, false, "" or 0) gets the string form of
// its 1-based position.  Existing IDs, unknown fields and field order are kept.  The output is indented with two
// spaces.
func Bytes(data []byte) ([]byte, Result, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, Result{}, fmt.Errorf("collection is not a JSON array: %w", err)
	}

	result := Result{Records: len(elements)}
	seen := make(map[string]int, len(elements))

	for i, element := range elements {
		obj, err := decodeObject(element)
		if err != nil {
			return nil, Result{}, fmt.Errorf("element %d: %w", i+1, err)
		}

		if isEmptyID(obj.get("id")) {
			obj.set("id", json.RawMessage(strconv.Quote(strconv.Itoa(i+1))))
			result.Filled++
		}
		seen[idKey(obj.get("id"))]++

		if elements[i], err = obj.MarshalJSON(); err != nil {
			return nil, Result{}, err
		}
	}

	for id, count := range seen {
		if count > 1 {
			result.Duplicates = append(result.Duplicates, id)
		}
	}
	sort.Strings(result.Duplicates)

	out, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return nil, Result{}, err
	}
	return append(out, '\n'), result, nil
}

// isEmptyID reports whether an id value counts as missing
func isEmptyID(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch id := v.(type) {
	case nil:
		return true
	case bool:
		return !id
	case string:
		return id == ""
	case float64:
		return id == 0
	}
	return false
}

// idKey renders an id the way it would be compared after loading, so "5" and 5 count as the same
func idKey(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

type field struct {
	key   string
	value json.RawMessage
}

// object is a JSON object that remembers the order of its fields
type object struct {
	fields []field
}

func decodeObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("not a JSON object")
	}

	obj := &object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj.set(key, value)
	}
	return obj, nil
}

func (o *object) get(key string) json.RawMessage {
	for _, f := range o.fields {
		if f.key == key {
			return f.value
		}
	}
	return nil
}

// set replaces the value of key in place, or appends the field if the object doesn't have it yet
func (o *object) set(key string, value json.RawMessage) {
	for i := range o.fields {
		if o.fields[i].key == key {
			o.fields[i].value = value
			return
		}
	}
	o.fields = append(o.fields, field{key: key, value: value})
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

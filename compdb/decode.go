package compdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const fileKey = "file"

func isArrayStart(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && d == '[' {
		return true
	}

	return false
}

func isArrayEnd(t json.Token) bool {
	if d, ok := t.(json.Delim); ok && d == ']' {
		return true
	}

	return false
}

func describe(t json.Token) string {
	switch v := t.(type) {
	case json.Delim:
		if v == '{' {
			return "an object"
		}

		return fmt.Sprintf("the delimiter %v", v)
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Decode reads a manifest from stream.
// The top-level value must be an array; each element is decoded and checked independently.
// With strict unset, invalid elements are kept with a non-nil [Entry.Err].
func Decode(stream io.Reader, strict bool) (m Manifest, err error) {
	var t json.Token

	dec := json.NewDecoder(stream)

	// consume the starting '[' token
	if t, err = dec.Token(); errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty document", ErrManifestMalformed)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestMalformed, err.Error())
	} else if !isArrayStart(t) {
		return nil, fmt.Errorf("%w: top-level value is %s, not an array", ErrManifestMalformed, describe(t))
	}

	m = make(Manifest, 0)

	for index := 0; dec.More(); index++ {
		var raw json.RawMessage

		if err = dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %s", ErrManifestMalformed, index, err.Error())
		}

		entry := parseEntry(index, raw)
		if entry.Err != nil && strict {
			return nil, entry.Err
		}

		m = append(m, entry)
	}

	// consume the ending ']' token
	if t, err = dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrManifestMalformed, err.Error())
	} else if !isArrayEnd(t) {
		return nil, fmt.Errorf("%w: unterminated top-level array", ErrManifestMalformed)
	}

	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after the top-level array", ErrManifestMalformed)
	}

	return m, nil
}

func parseEntry(index int, raw json.RawMessage) Entry {
	entry := Entry{Index: index}

	var fields map[string]json.RawMessage

	// null decodes to a nil map without error
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		entry.Err = fmt.Errorf("%w: entry %d is not a JSON object", ErrEntryInvalid, index)

		return entry
	}

	value, ok := fields[fileKey]
	if !ok {
		entry.Err = fmt.Errorf("%w: entry %d has no %q field", ErrEntryInvalid, index, fileKey)

		return entry
	}

	var v any

	if err := json.Unmarshal(value, &v); err != nil {
		entry.Err = fmt.Errorf("%w: entry %d: %s", ErrEntryInvalid, index, err.Error())

		return entry
	}

	file, ok := v.(string)
	if !ok {
		entry.Err = fmt.Errorf("%w: the %q field of entry %d is %s, not a string", ErrEntryInvalid, fileKey, index, describe(v))

		return entry
	}

	// an empty path names no file
	if file == "" {
		entry.Err = fmt.Errorf("%w: the %q field of entry %d is empty", ErrEntryInvalid, fileKey, index)

		return entry
	}

	entry.File = file

	return entry
}

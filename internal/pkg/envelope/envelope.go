// Package envelope decodes the API's {status, message, data} wrapper and the
// looser shapes some endpoints return instead (bare arrays, nested objects).
package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"coop-console/internal/core/domain"
)

// Kind tags a decoded response
type Kind int

const (
	OK Kind = iota
	Malformed
	ServerError
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Malformed:
		return "malformed"
	case ServerError:
		return "server_error"
	}
	return "unknown"
}

// Result is the outcome of decoding one response
type Result struct {
	Kind       Kind
	StatusCode int
	Message    string
	Payload    json.RawMessage
	Meta       Meta
}

// Meta carries list totals when the API sends them
type Meta struct {
	Total int64
	Page  int
	Limit int
}

// Err converts a non-OK result into an error wrapping the domain sentinels
func (r Result) Err() error {
	switch r.Kind {
	case OK:
		return nil
	case ServerError:
		return &domain.ServerError{StatusCode: r.StatusCode, Message: r.Message}
	}
	return fmt.Errorf("%w (status %d)", domain.ErrMalformed, r.StatusCode)
}

type wire struct {
	Status     *string         `json:"status"`
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Error      json.RawMessage `json:"error"`
	Data       json.RawMessage `json:"data"`
	Meta       json.RawMessage `json:"meta"`
	Pagination json.RawMessage `json:"pagination"`
	Total      *int64          `json:"total"`
	TotalCount *int64          `json:"totalCount"`
}

// Decode classifies a response body
func Decode(statusCode int, body []byte) Result {
	res := Result{StatusCode: statusCode}
	trimmed := bytes.TrimSpace(body)
	ok := statusCode >= 200 && statusCode < 300

	if len(trimmed) == 0 || !json.Valid(trimmed) {
		if ok {
			res.Kind = Malformed
			return res
		}
		res.Kind = ServerError
		return res
	}

	if trimmed[0] != '{' {
		if !ok {
			res.Kind = ServerError
			return res
		}
		res.Kind = OK
		res.Payload = json.RawMessage(trimmed)
		return res
	}

	var w wire
	if err := json.Unmarshal(trimmed, &w); err != nil {
		// valid JSON object whose known keys have unexpected types
		if !ok {
			res.Kind = ServerError
			return res
		}
		res.Kind = OK
		res.Payload = json.RawMessage(trimmed)
		return res
	}

	res.Message = w.Message
	if res.Message == "" {
		res.Message = errorText(w.Error)
	}
	res.Meta = decodeMeta(w)

	if !ok || (w.Status != nil && strings.EqualFold(*w.Status, "error")) || (w.Success != nil && !*w.Success) {
		res.Kind = ServerError
		return res
	}

	res.Kind = OK
	if w.Data != nil {
		res.Payload = w.Data
	} else {
		res.Payload = json.RawMessage(trimmed)
	}
	return res
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}

func decodeMeta(w wire) Meta {
	var m struct {
		Total      int64 `json:"total"`
		TotalCount int64 `json:"totalCount"`
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
	}
	for _, raw := range []json.RawMessage{w.Meta, w.Pagination} {
		if len(raw) > 0 && json.Unmarshal(raw, &m) == nil {
			break
		}
	}
	meta := Meta{Total: m.Total, Page: m.Page, Limit: m.Limit}
	if meta.Total == 0 {
		meta.Total = m.TotalCount
	}
	if meta.Total == 0 && w.Total != nil {
		meta.Total = *w.Total
	}
	if meta.Total == 0 && w.TotalCount != nil {
		meta.Total = *w.TotalCount
	}
	return meta
}

// List unwraps a list payload. It accepts a bare array, null, or an object
// holding the array under one of keys (searched recursively through "data").
func List[T any](payload json.RawMessage, keys ...string) ([]T, error) {
	raw, err := findList(payload, keys)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func findList(payload json.RawMessage, keys []string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		return trimmed, nil
	case '{':
	default:
		return nil, fmt.Errorf("%w: expected list", domain.ErrMalformed)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return findList(v, nil)
		}
	}
	if v, ok := obj["data"]; ok {
		return findList(v, keys)
	}
	return nil, fmt.Errorf("%w: no list under %v", domain.ErrMalformed, keys)
}

// Object unwraps a single record, looking under key first when given
func Object[T any](payload json.RawMessage, key string) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return zero, fmt.Errorf("%w: expected object", domain.ErrMalformed)
	}
	if key != "" {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			if v, ok := obj[key]; ok && len(bytes.TrimSpace(v)) > 0 && bytes.TrimSpace(v)[0] == '{' {
				trimmed = v
			}
		}
	}
	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return out, nil
}

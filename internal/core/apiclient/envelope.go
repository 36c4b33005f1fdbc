package apiclient

import (
	"bytes"
	"encoding/json"

	"golek-ongkir/internal/core/apperror"
)

// Meta is the status block of a success envelope.
type Meta struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Status  string `json:"status"`
}

// OKMeta is the meta attached to payloads that arrived without one.
var OKMeta = Meta{Message: "OK", Code: 200, Status: "success"}

// Payload is the nested data block of a success envelope.
type Payload[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// Envelope is the canonical response handed to callers.
// Exactly one of the error shape (Error, Status, Message) or the success shape (Data) is populated;
// check Error before trusting Data.
type Envelope[T any] struct {
	Error   bool        `json:"error"`
	Data    *Payload[T] `json:"data,omitempty"`
	Status  int         `json:"status,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success wraps data in a success envelope.
func Success[T any](meta Meta, data T) Envelope[T] {
	return Envelope[T]{Data: &Payload[T]{Meta: meta, Data: data}}
}

// Frame is an envelope whose data has not been decoded yet.
type Frame struct {
	Error   bool
	Status  int
	Message string
	Meta    Meta
	Data    json.RawMessage
}

// rawEnvelope covers every top-level key an upstream envelope may carry.
type rawEnvelope struct {
	Error   *bool           `json:"error"`
	Meta    *Meta           `json:"meta"`
	Data    json.RawMessage `json:"data"`
	Status  json.RawMessage `json:"status"`
	Message string          `json:"message"`
}

// SplitEnvelope recognizes the upstream envelope variants:
//
//	{"error": true, "status": 404, "message": "..."}           error envelope
//	{"error": false, "data": {"meta": {...}, "data": ...}}      nested success envelope
//	{"meta": {...}, "data": ...}                                 flat success envelope
//	{"error": false, "data": ...}                                legacy envelope without meta
//	[...]                                                        bare list
func SplitEnvelope(kind string, raw json.RawMessage) (Frame, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return Frame{Meta: OKMeta, Data: json.RawMessage(trimmed)}, nil
	}

	var env rawEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Frame{}, apperror.Unrecognized(kind, "body is not a JSON object or array", err)
	}

	if env.Error != nil && *env.Error {
		return Frame{Error: true, Status: statusCode(env.Status), Message: env.Message}, nil
	}

	if env.Meta != nil && isPresent(env.Data) {
		return Frame{Meta: *env.Meta, Data: env.Data}, nil
	}

	if !isPresent(env.Data) {
		return Frame{}, apperror.Unrecognized(kind, "envelope carries no data", nil)
	}

	var nested struct {
		Meta *Meta           `json:"meta"`
		Data json.RawMessage `json:"data"`
	}
	if isObject(env.Data) && json.Unmarshal(env.Data, &nested) == nil && isPresent(nested.Data) {
		meta := OKMeta
		if nested.Meta != nil {
			meta = *nested.Meta
		}
		return Frame{Meta: meta, Data: nested.Data}, nil
	}

	return Frame{Meta: OKMeta, Data: env.Data}, nil
}

// Decode unmarshals the frame into an Envelope[T], preserving the error shape.
func Decode[T any](kind string, f Frame) (Envelope[T], error) {
	if f.Error {
		return Envelope[T]{Error: true, Status: f.Status, Message: f.Message}, nil
	}
	var data T
	if err := json.Unmarshal(f.Data, &data); err != nil {
		return Envelope[T]{}, apperror.Unrecognized(kind, "data does not match the expected type", err)
	}
	return Success(f.Meta, data), nil
}

// statusCode accepts the legacy numeric status and ignores string statuses.
func statusCode(raw json.RawMessage) int {
	var n int
	if json.Unmarshal(raw, &n) == nil {
		return n
	}
	return 0
}

func isPresent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

package infirmary

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the outcome of a gateway call: either Success or Failure.
type Envelope interface {
	IsError() bool
	envelope()
}

// Success carries the decoded response body of a 2xx response.
// JSON bodies are decoded into generic values, anything else is kept as a string.
type Success struct {
	Body any
	raw  []byte
}

func (Success) IsError() bool { return false }
func (Success) envelope()     {}

// Decode unmarshals the raw response body into v.
func (s Success) Decode(v any) error {
	if err := json.Unmarshal(s.raw, v); err != nil {
		return errors.Wrap(err, MsgDecodeResponseFailed)
	}
	return nil
}

// Failure describes a call that did not end with a 2xx response. Status is 0 when no
// response was received at all. Body holds the server's error payload, the response
// status text or MsgUnableToConnect, in that order of preference.
type Failure struct {
	Status int
	Body   any
}

func (Failure) IsError() bool { return true }
func (Failure) envelope()     {}

// Descriptor resolves the failure status through the status registry.
func (f Failure) Descriptor() (StatusDescriptor, bool) {
	return LookupStatus(f.Status)
}

func newSuccess(raw []byte) Success {
	return Success{
		Body: decodeBody(raw),
		raw:  raw,
	}
}

func decodeBody(raw []byte) any {
	if len(raw) == 0 {
		return ""
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return string(raw)
	}
	return body
}

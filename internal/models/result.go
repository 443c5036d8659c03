package models

import "encoding/json"

// ErrorKind classifies a failed Result so the HTTP layer can pick a status
// code without parsing error strings.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidInput
	KindUpstreamUnavailable
	KindUnauthorized
)

// Result is the envelope returned by every proxy operation. Data carries the
// already-serialized payload so a cache hit returns the cached bytes verbatim.
type Result struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Cached   bool            `json:"cached,omitempty"`
	Fallback bool            `json:"fallback,omitempty"`
	Warning  string          `json:"warning,omitempty"`
	Error    string          `json:"error,omitempty"`
	Details  string          `json:"details,omitempty"`

	Kind ErrorKind `json:"-"`
}

// Failure builds a failed Result with the given kind and message.
func Failure(kind ErrorKind, msg string) Result {
	return Result{Success: false, Error: msg, Kind: kind}
}

package client

import (
	"context"
	"errors"
	"strings"
)

// ErrorCategory is a stable label for error classification in logs.
type ErrorCategory string

// Error category constants.
const (
	ErrorCategoryTimeout  ErrorCategory = "timeout"
	ErrorCategoryNetwork  ErrorCategory = "network"
	ErrorCategoryUpstream ErrorCategory = "upstream_status"
	ErrorCategoryParsing  ErrorCategory = "parsing"
	ErrorCategoryEmpty    ErrorCategory = "empty_payload"
	ErrorCategoryCache    ErrorCategory = "cache"
	ErrorCategoryUnknown  ErrorCategory = "unknown"
)

// CategorizeError maps an error to a stable ErrorCategory.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, ErrUpstreamStatus) {
		return ErrorCategoryUpstream
	}
	if errors.Is(err, ErrUnparseableBody) {
		return ErrorCategoryParsing
	}
	if errors.Is(err, ErrEmptyPayload) {
		return ErrorCategoryEmpty
	}

	errStr := err.Error()
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, ErrUpstreamFailure) ||
		strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") {
		return ErrorCategoryNetwork
	}
	if strings.Contains(errStr, "cache") {
		return ErrorCategoryCache
	}
	return ErrorCategoryUnknown
}

// Package errors provides categorized error types for the webdust scan core.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType categorizes errors for handling decisions.
type ErrorType int

const (
	// Unknown is an uncategorized error.
	Unknown ErrorType = iota
	// Network represents network-related errors (DNS, connection).
	Network
	// Timeout represents timeout errors.
	Timeout
	// Parse represents HTML or URL parsing errors.
	Parse
	// Cancelled represents context cancellation.
	Cancelled
)

// String returns the string representation of ErrorType.
func (t ErrorType) String() string {
	switch t {
	case Network:
		return "network"
	case Timeout:
		return "timeout"
	case Parse:
		return "parse"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ScanError represents a categorized error tied to one URL.
//
// Every ScanError is recoverable: the traversal engine records it,
// skips the URL, and moves on. The only fatal condition in the core
// is an invalid seed URL, which is rejected before any fetch.
type ScanError struct {
	Type      ErrorType
	URL       string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error during %s on %s: %v",
			e.Type.String(), e.Operation, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s error during %s on %s",
		e.Type.String(), e.Operation, e.URL)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches a target by type.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// New creates a new ScanError.
func New(errType ErrorType, url, operation string, cause error) *ScanError {
	return &ScanError{
		Type:      errType,
		URL:       url,
		Operation: operation,
		Cause:     cause,
	}
}

// NewParseError creates a parse error.
func NewParseError(url, operation string, cause error) *ScanError {
	return New(Parse, url, operation, cause)
}

// Categorize determines the error type from a generic error.
func Categorize(err error, url string) *ScanError {
	if err == nil {
		return nil
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	if errors.Is(err, context.Canceled) {
		return New(Cancelled, url, "fetch", err)
	}

	if isTimeout(err) {
		return New(Timeout, url, "fetch", err)
	}

	if isNetworkError(err) {
		return New(Network, url, "fetch", err)
	}

	return New(Unknown, url, "fetch", err)
}

// IsTransport reports whether an error is a transport-level failure
// (timeout, connection error, DNS failure) that the traversal engine
// recovers from locally.
func IsTransport(err error) bool {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type == Network || scanErr.Type == Timeout
	}
	return isTimeout(err) || isNetworkError(err)
}

// GetErrorType extracts the error type from an error.
func GetErrorType(err error) ErrorType {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type
	}
	return Unknown
}

// isTimeout checks if an error is a timeout.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if an error is network-related.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp")
}

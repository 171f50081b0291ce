package domain

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// ErrorKind buckets pipeline failures for user messaging
type ErrorKind string

const (
	ErrKindValidation ErrorKind = "validation"
	ErrKindResolve    ErrorKind = "resolve"
	ErrKindNetwork    ErrorKind = "network"
	ErrKindTimeout    ErrorKind = "timeout"
	ErrKindPermission ErrorKind = "permission"
	ErrKindStorage    ErrorKind = "storage"
	ErrKindUnknown    ErrorKind = "unknown"
)

// User-facing messages, one per error kind
const (
	MsgResolveFailed = "Failed to extract video information. Please check if the URL is valid and public."
	MsgNetworkError  = "Network error: Please check your internet connection and try again."
	MsgTimeout       = "Connection timeout. Please check your internet speed and try again."
	MsgPermission    = "Permission denied. Please grant storage permission to download videos."
	MsgNoSpace       = "Not enough storage space. Please free up some space and try again."
	MsgFileOperation = "File operation failed. Please check your storage and try again."
	MsgUnknown       = "Something went wrong. Please try again later."
)

// Sentinel errors surfaced by the resolver and downloader layers
var (
	// ErrUnresolved means every resolution strategy for the platform failed
	ErrUnresolved = errors.New("could not resolve a direct video URL")
	// ErrEmptyFile means the download completed but produced a zero-byte file
	ErrEmptyFile = errors.New("downloaded file is empty")
)

// HTTPStatusError reports a non-success status from a video server
type HTTPStatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("server returned HTTP %s for %s", e.Status, e.URL)
}

// PipelineError pairs an underlying error with its kind and the
// message shown to users
type PipelineError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error { return e.Err }

func newPipelineError(kind ErrorKind, message string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Message: message, Err: err}
}

// Classify maps an arbitrary pipeline failure to a kind and a
// user-facing message. Timeout checks run before generic network
// checks so a timed-out dial is reported as a timeout.
func Classify(err error) *PipelineError {
	if err == nil {
		return nil
	}

	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe
	}

	if errors.Is(err, ErrUnresolved) {
		return newPipelineError(ErrKindResolve, MsgResolveFailed, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newPipelineError(ErrKindTimeout, MsgTimeout, err)
	}

	// bad status is a network-kind failure to the user; the status
	// text stays in the wrapped error for logs
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return newPipelineError(ErrKindNetwork, MsgNetworkError, err)
	}

	if errors.Is(err, os.ErrPermission) {
		return newPipelineError(ErrKindPermission, MsgPermission, err)
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		if strings.Contains(pathErr.Err.Error(), "no space left") {
			return newPipelineError(ErrKindStorage, MsgNoSpace, err)
		}
		return newPipelineError(ErrKindStorage, MsgFileOperation, err)
	}

	if errors.Is(err, ErrEmptyFile) {
		return newPipelineError(ErrKindStorage, MsgFileOperation, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return newPipelineError(ErrKindNetwork, MsgNetworkError, err)
	}

	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "connection reset") || strings.Contains(msg, "unexpected EOF") {
		return newPipelineError(ErrKindNetwork, MsgNetworkError, err)
	}

	return newPipelineError(ErrKindUnknown, MsgUnknown, err)
}

package search

import (
	"errors"
	"fmt"
)

var (
	// ErrPageOutOfRange is returned by RequestPage for pages outside [1, TotalPages].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrClosed is returned by controller operations after Close.
	ErrClosed = errors.New("controller closed")
)

// ErrorKind classifies a failed search.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindRateLimit
	KindServer
	KindClient
	KindEmptyResult
	KindNetworkOffline
	KindNetworkConnectivity
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	KindValidation:          "validation",
	KindRateLimit:           "rate_limit",
	KindServer:              "server",
	KindClient:              "client",
	KindEmptyResult:         "empty_result",
	KindNetworkOffline:      "network_offline",
	KindNetworkConnectivity: "network_connectivity",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// User facing messages shared by the fetcher and the controller.
const (
	MsgEmptyTerm    = "Please enter a keyword"
	MsgNoResults    = "No repositories found"
	MsgUnknownError = "An unknown error occurred while fetching repositories"
)

// Error is a classified search failure. Message is safe to show to users.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Err is the underlying cause, kept for logs.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns err as a classified *Error, wrapping unclassified errors
// as KindUnknown.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	msg := err.Error()
	if msg == "" {
		msg = MsgUnknownError
	}
	return &Error{Kind: KindUnknown, Message: msg, Err: err}
}

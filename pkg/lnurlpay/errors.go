package lnurlpay

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMalformedAddress    = errors.New("malformed lightning address")
	ErrUnreachableEndpoint = errors.New("lnurl-pay endpoint unreachable")
	ErrInvalidPayResponse  = errors.New("invalid lnurl-pay response")

	ErrInvalidAmount           = errors.New("invalid amount")
	ErrAmountOutOfRange        = errors.New("amount out of range")
	ErrCommentTooLong          = errors.New("comment too long")
	ErrUnreachableCallback     = errors.New("lnurl-pay callback unreachable")
	ErrInvalidCallbackResponse = errors.New("invalid lnurl-pay callback response")
	ErrRemoteRejected          = errors.New("lnurl-pay service rejected the request")
	ErrEmptyInvoice            = errors.New("lnurl-pay service returned no invoice")
)

// HTTPError is returned when a GET to the discovery endpoint or the callback fails.
// It matches its Kind and the transport error with errors.Is.
type HTTPError struct {
	// Kind is either ErrUnreachableEndpoint or ErrUnreachableCallback
	Kind error
	URL  string
	// StatusCode is 0 if no response was received
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: GET %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%v: GET %s: status %d %s", e.Kind, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// AmountOutOfRangeError carries the bounds of the service, all in millisatoshis
type AmountOutOfRangeError struct {
	MinSendable int64
	MaxSendable int64
	Requested   int64
}

func (e *AmountOutOfRangeError) Error() string {
	return fmt.Sprintf("%v: %d msat is not between %d and %d msat", ErrAmountOutOfRange, e.Requested, e.MinSendable, e.MaxSendable)
}

func (e *AmountOutOfRangeError) Is(target error) bool {
	return target == ErrAmountOutOfRange
}

type RemoteRejectedError struct {
	// Reason as sent by the service
	Reason string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRemoteRejected, e.Reason)
}

func (e *RemoteRejectedError) Is(target error) bool {
	return target == ErrRemoteRejected
}

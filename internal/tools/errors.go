package tools

import (
	"context"
	"errors"
	"net/http"

	"github.com/BoltzExchange/lnaddress/pkg/bolt11"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
)

type errorKind struct {
	err    error
	kind   string
	status int
}

// more specific errors first; unreachable errors also match context errors
var errorKinds = []errorKind{
	{ErrUnknownTool, "unknown_tool", http.StatusNotFound},
	{ErrInvalidArguments, "invalid_arguments", http.StatusBadRequest},

	{lnurlpay.ErrMalformedAddress, "malformed_address", http.StatusBadRequest},
	{lnurlpay.ErrInvalidAmount, "invalid_amount", http.StatusBadRequest},
	{lnurlpay.ErrAmountOutOfRange, "amount_out_of_range", http.StatusBadRequest},
	{lnurlpay.ErrCommentTooLong, "comment_too_long", http.StatusBadRequest},

	{lnurlpay.ErrUnreachableEndpoint, "unreachable_endpoint", http.StatusBadGateway},
	{lnurlpay.ErrInvalidPayResponse, "invalid_pay_response", http.StatusBadGateway},
	{lnurlpay.ErrUnreachableCallback, "unreachable_callback", http.StatusBadGateway},
	{lnurlpay.ErrInvalidCallbackResponse, "invalid_callback_response", http.StatusBadGateway},
	{lnurlpay.ErrRemoteRejected, "remote_rejected", http.StatusBadGateway},
	{lnurlpay.ErrEmptyInvoice, "empty_invoice", http.StatusBadGateway},

	{bolt11.ErrEmptyInput, "empty_input", http.StatusBadRequest},
	{bolt11.ErrBadPrefix, "bad_prefix", http.StatusBadRequest},
	{bolt11.ErrTooShort, "too_short", http.StatusBadRequest},

	{context.Canceled, "canceled", http.StatusServiceUnavailable},
	{context.DeadlineExceeded, "timeout", http.StatusGatewayTimeout},
}

const kindInternal = "internal"

func lookupKind(err error) (errorKind, bool) {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.err) {
			return kind, true
		}
	}
	return errorKind{}, false
}

// ErrorKind maps an error to a stable machine readable name
func ErrorKind(err error) string {
	if kind, ok := lookupKind(err); ok {
		return kind.kind
	}
	return kindInternal
}

func ErrorStatus(err error) int {
	if kind, ok := lookupKind(err); ok {
		return kind.status
	}
	return http.StatusInternalServerError
}

// ErrorDetails returns the structured fields of an error, or nil if it has none
func ErrorDetails(err error) map[string]any {
	var rangeErr *lnurlpay.AmountOutOfRangeError
	if errors.As(err, &rangeErr) {
		return map[string]any{
			"min_sendable_msat": rangeErr.MinSendable,
			"max_sendable_msat": rangeErr.MaxSendable,
			"requested_msat":    rangeErr.Requested,
		}
	}

	var rejectedErr *lnurlpay.RemoteRejectedError
	if errors.As(err, &rejectedErr) {
		return map[string]any{"reason": rejectedErr.Reason}
	}

	var httpErr *lnurlpay.HTTPError
	if errors.As(err, &httpErr) {
		details := map[string]any{"url": httpErr.URL}
		if httpErr.StatusCode != 0 {
			details["status_code"] = httpErr.StatusCode
		}
		return details
	}

	return nil
}

package lnurlpay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/BoltzExchange/lnaddress/internal/utils"
	golnurl "github.com/fiatjaf/go-lnurl"
	"github.com/tidwall/gjson"
)

const statusError = "ERROR"

// CallbackResponse is the body returned by the callback of an LNURL-pay service
type CallbackResponse struct {
	golnurl.LNURLResponse
	PR string `json:"pr"`
}

func ParseCallbackResponse(body []byte) (*CallbackResponse, error) {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidCallbackResponse)
	}

	// services fail with a reason only, so the status has to be checked before anything else
	parsed := gjson.ParseBytes(body)
	if strings.EqualFold(parsed.Get("status").String(), statusError) {
		return &CallbackResponse{
			LNURLResponse: golnurl.LNURLResponse{Status: statusError, Reason: parsed.Get("reason").String()},
		}, nil
	}

	var response CallbackResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCallbackResponse, err)
	}
	return &response, nil
}

// Result returns the invoice or the failure reported by the service
func (response *CallbackResponse) Result() (string, error) {
	if strings.EqualFold(response.Status, statusError) {
		return "", &RemoteRejectedError{Reason: response.Reason}
	}
	if response.PR == "" {
		return "", ErrEmptyInvoice
	}
	return response.PR, nil
}

// ToMilliSatoshis rejects non positive amounts and amounts that do not fit into an int64 in msat
func ToMilliSatoshis(amountSats int64) (int64, error) {
	if amountSats <= 0 {
		return 0, fmt.Errorf("%w: amount has to be positive: %d", ErrInvalidAmount, amountSats)
	}
	amountMsat, ok := utils.MultiplyChecked(amountSats, 1000)
	if !ok {
		return 0, fmt.Errorf("%w: %d satoshis overflow in millisatoshis", ErrInvalidAmount, amountSats)
	}
	return amountMsat, nil
}

// CallbackURL appends the amount, nonce and optional comment to the callback of a service
func CallbackURL(callback string, amountMsat int64, nonce string, comment string) string {
	delimiter := "?"
	if strings.Contains(callback, "?") {
		delimiter = "&"
	}

	var builder strings.Builder
	builder.WriteString(callback)
	builder.WriteString(delimiter)
	builder.WriteString("amount=")
	builder.WriteString(strconv.FormatInt(amountMsat, 10))
	builder.WriteString("&nonce=")
	builder.WriteString(url.QueryEscape(nonce))
	if comment != "" {
		builder.WriteString("&comment=")
		builder.WriteString(url.QueryEscape(comment))
	}
	return builder.String()
}

func (client *Client) RequestInvoice(ctx context.Context, metadata *PayMetadata, amountSats int64) (string, error) {
	return client.RequestInvoiceWithComment(ctx, metadata, amountSats, "")
}

func (client *Client) RequestInvoiceWithComment(
	ctx context.Context,
	metadata *PayMetadata,
	amountSats int64,
	comment string,
) (string, error) {
	if metadata == nil {
		return "", fmt.Errorf("%w: no metadata", ErrInvalidPayResponse)
	}

	amountMsat, err := ToMilliSatoshis(amountSats)
	if err != nil {
		return "", err
	}

	if amountMsat < metadata.MinSendable || amountMsat > metadata.MaxSendable {
		return "", &AmountOutOfRangeError{
			MinSendable: metadata.MinSendable,
			MaxSendable: metadata.MaxSendable,
			Requested:   amountMsat,
		}
	}

	if comment != "" {
		if length := utf8.RuneCountInString(comment); length > int(metadata.CommentAllowed) {
			return "", fmt.Errorf(
				"%w: %d characters, service allows %d", ErrCommentTooLong, length, metadata.CommentAllowed,
			)
		}
	}

	callback := CallbackURL(metadata.Callback, amountMsat, client.newNonce(), comment)
	logger.Debugf("Requesting invoice for %s", utils.Satoshis(amountSats))

	body, err := client.get(ctx, callback, ErrUnreachableCallback)
	if err != nil {
		return "", err
	}

	response, err := ParseCallbackResponse(body)
	if err != nil {
		return "", err
	}
	return response.Result()
}

// FetchInvoice resolves a lightning address and requests an invoice from it.
// The metadata is returned whenever the resolution succeeded, so callers can show the accepted range.
func (client *Client) FetchInvoice(
	ctx context.Context,
	address string,
	amountSats int64,
	comment string,
) (string, *PayMetadata, error) {
	if _, err := ToMilliSatoshis(amountSats); err != nil {
		return "", nil, err
	}

	metadata, err := client.Resolve(ctx, address)
	if err != nil {
		return "", nil, err
	}

	invoice, err := client.RequestInvoiceWithComment(ctx, metadata, amountSats, comment)
	if err != nil {
		return "", metadata, err
	}
	return invoice, metadata, nil
}

package lnurlpay

import (
	"fmt"
	"math"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/tidwall/gjson"
)

const TagPayRequest = "payRequest"

const (
	mimeTextPlain      = "text/plain"
	mimeTextIdentifier = "text/identifier"
)

// PayMetadata is the discovery response of an LNURL-pay service. Amounts are in millisatoshis.
type PayMetadata struct {
	Callback    string `json:"callback"`
	MinSendable int64  `json:"minSendable"`
	MaxSendable int64  `json:"maxSendable"`
	// EncodedMetadata is the raw JSON array string, kept opaque
	EncodedMetadata string `json:"metadata"`
	Tag             string `json:"tag"`
	CommentAllowed  int32  `json:"commentAllowed,omitempty"`
}

// ParsePayMetadata parses and validates a discovery response body.
// Bounds are accepted as JSON numbers or as decimal strings since both are seen in the wild.
func ParsePayMetadata(body []byte) (*PayMetadata, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidPayResponse)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidPayResponse)
	}

	tag := parsed.Get("tag")
	if tag.String() != TagPayRequest {
		if reason := parsed.Get("reason"); reason.Exists() {
			return nil, fmt.Errorf("%w: tag %q: %s", ErrInvalidPayResponse, tag.String(), reason.String())
		}
		return nil, fmt.Errorf("%w: unexpected tag %q", ErrInvalidPayResponse, tag.String())
	}

	minSendable, err := integerField(parsed, "minSendable", math.MaxInt64)
	if err != nil {
		return nil, err
	}
	maxSendable, err := integerField(parsed, "maxSendable", math.MaxInt64)
	if err != nil {
		return nil, err
	}

	var commentAllowed int64
	if parsed.Get("commentAllowed").Exists() {
		commentAllowed, err = integerField(parsed, "commentAllowed", math.MaxInt32)
		if err != nil {
			return nil, err
		}
	}

	metadata := &PayMetadata{
		Callback:        parsed.Get("callback").String(),
		MinSendable:     minSendable,
		MaxSendable:     maxSendable,
		EncodedMetadata: parsed.Get("metadata").String(),
		Tag:             tag.String(),
		CommentAllowed:  int32(commentAllowed),
	}

	if err := metadata.Validate(); err != nil {
		return nil, err
	}
	return metadata, nil
}

func integerField(parsed gjson.Result, name string, maximum int64) (int64, error) {
	field := parsed.Get(name)

	var raw string
	switch field.Type {
	case gjson.Number:
		raw = field.Raw
	case gjson.String:
		raw = field.Str
	default:
		return 0, fmt.Errorf("%w: %s is missing or not a number", ErrInvalidPayResponse, name)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer: %s", ErrInvalidPayResponse, name, raw)
	}
	if value > maximum {
		return 0, fmt.Errorf("%w: %s too large: %d", ErrInvalidPayResponse, name, value)
	}
	return value, nil
}

func (metadata *PayMetadata) Validate() error {
	if metadata.Tag != TagPayRequest {
		return fmt.Errorf("%w: unexpected tag %q", ErrInvalidPayResponse, metadata.Tag)
	}
	if metadata.Callback == "" {
		return fmt.Errorf("%w: no callback", ErrInvalidPayResponse)
	}
	if metadata.MinSendable < 0 {
		return fmt.Errorf("%w: negative minSendable %d", ErrInvalidPayResponse, metadata.MinSendable)
	}
	if metadata.MinSendable > metadata.MaxSendable {
		return fmt.Errorf(
			"%w: minSendable %d is greater than maxSendable %d",
			ErrInvalidPayResponse, metadata.MinSendable, metadata.MaxSendable,
		)
	}
	return nil
}

// MinSendableSat rounds up, so the result is always payable
func (metadata *PayMetadata) MinSendableSat() btcutil.Amount {
	minimum := lnwire.MilliSatoshi(metadata.MinSendable)
	sats := minimum.ToSatoshis()
	if lnwire.NewMSatFromSatoshis(sats) < minimum {
		sats++
	}
	return sats
}

// MaxSendableSat rounds down
func (metadata *PayMetadata) MaxSendableSat() btcutil.Amount {
	return lnwire.MilliSatoshi(metadata.MaxSendable).ToSatoshis()
}

func (metadata *PayMetadata) Description() string {
	return metadata.entry(mimeTextPlain)
}

func (metadata *PayMetadata) Identifier() string {
	return metadata.entry(mimeTextIdentifier)
}

func (metadata *PayMetadata) entry(mime string) string {
	var content string
	gjson.Parse(metadata.EncodedMetadata).ForEach(func(_, entry gjson.Result) bool {
		pair := entry.Array()
		if len(pair) == 2 && pair[0].String() == mime {
			content = pair[1].String()
			return false
		}
		return true
	})
	return content
}

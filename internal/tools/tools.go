package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/BoltzExchange/lnaddress/internal/logger"
	"github.com/BoltzExchange/lnaddress/pkg/bolt11"
	"github.com/BoltzExchange/lnaddress/pkg/lnurlpay"
	"github.com/mitchellh/mapstructure"
)

const (
	CreateInvoice  = "create_invoice"
	DecodeInvoice  = "decode_invoice"
	ResolveAddress = "resolve_address"
)

// DecodeCaveat accompanies every decoded invoice, the decoder only reads the human readable part
const DecodeCaveat = "heuristic decoding of the human readable part only; payment hash, destination, " +
	"description, expiry and routing hints are not decoded and the signature is not verified"

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Resolver is what the tools need from an LNURL-pay client
type Resolver interface {
	Resolve(ctx context.Context, address string) (*lnurlpay.PayMetadata, error)
	FetchInvoice(ctx context.Context, address string, amountSats int64, comment string) (string, *lnurlpay.PayMetadata, error)
}

type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

type handler func(ctx context.Context, args map[string]any) (any, error)

type tool struct {
	definition Definition
	call       handler
}

type Toolset struct {
	resolver Resolver
	tools    []tool
}

type InvoiceResult struct {
	Invoice    string `json:"invoice"`
	Address    string `json:"address"`
	AmountSats int64  `json:"amount_sats"`
	// Network is read heuristically from the invoice and empty if that failed
	Network string `json:"network,omitempty"`
}

type DecodeResult struct {
	Network      string `json:"network"`
	Prefix       string `json:"prefix"`
	AmountStatus string `json:"amount_status"`
	AmountSats   *int64 `json:"amount_sats,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Caveat       string `json:"caveat"`
}

type AddressResult struct {
	Address         string `json:"address"`
	LNURL           string `json:"lnurl"`
	Callback        string `json:"callback"`
	MinSendableMsat int64  `json:"min_sendable_msat"`
	MaxSendableMsat int64  `json:"max_sendable_msat"`
	MinSendableSats int64  `json:"min_sendable_sats"`
	MaxSendableSats int64  `json:"max_sendable_sats"`
	CommentAllowed  int32  `json:"comment_allowed"`
	Description     string `json:"description,omitempty"`
	Identifier      string `json:"identifier,omitempty"`
}

type createInvoiceArgs struct {
	Address    string `mapstructure:"address"`
	AmountSats int64  `mapstructure:"amount_sats"`
	Comment    string `mapstructure:"comment"`
}

type decodeInvoiceArgs struct {
	Invoice string `mapstructure:"invoice"`
}

type resolveAddressArgs struct {
	Address string `mapstructure:"address"`
}

func NewToolset(resolver Resolver) *Toolset {
	toolset := &Toolset{resolver: resolver}
	toolset.tools = []tool{
		{
			definition: Definition{
				Name:        CreateInvoice,
				Description: "Requests a BOLT11 invoice for an amount in satoshis from a lightning address",
				Parameters: []Parameter{
					{Name: "address", Type: "string", Description: "Lightning address like alice@example.com", Required: true},
					{Name: "amount_sats", Type: "integer", Description: "Amount in satoshis", Required: true},
					{Name: "comment", Type: "string", Description: "Comment for the recipient, if the service allows one"},
				},
			},
			call: toolset.createInvoice,
		},
		{
			definition: Definition{
				Name:        DecodeInvoice,
				Description: "Reads network and amount from the human readable part of a BOLT11 invoice",
				Parameters: []Parameter{
					{Name: "invoice", Type: "string", Description: "BOLT11 invoice", Required: true},
				},
			},
			call: toolset.decodeInvoice,
		},
		{
			definition: Definition{
				Name:        ResolveAddress,
				Description: "Looks up the LNURL-pay metadata of a lightning address",
				Parameters: []Parameter{
					{Name: "address", Type: "string", Description: "Lightning address like alice@example.com", Required: true},
				},
			},
			call: toolset.resolveAddress,
		},
	}
	return toolset
}

func (toolset *Toolset) Definitions() []Definition {
	definitions := make([]Definition, 0, len(toolset.tools))
	for _, tool := range toolset.tools {
		definitions = append(definitions, tool.definition)
	}
	return definitions
}

func (toolset *Toolset) Call(ctx context.Context, name string, args map[string]any) (any, error) {
	for _, tool := range toolset.tools {
		if tool.definition.Name != name {
			continue
		}

		for _, parameter := range tool.definition.Parameters {
			if _, ok := args[parameter.Name]; parameter.Required && !ok {
				return nil, fmt.Errorf("%w: %s is required", ErrInvalidArguments, parameter.Name)
			}
		}

		logger.Debugf("Calling tool %s", name)
		result, err := tool.call(ctx, args)
		if err != nil {
			logger.Debugf("Tool %s failed: %v", name, err)
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
}

func (toolset *Toolset) createInvoice(ctx context.Context, args map[string]any) (any, error) {
	var parsed createInvoiceArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return nil, err
	}

	address := strings.TrimSpace(parsed.Address)
	invoice, _, err := toolset.resolver.FetchInvoice(ctx, address, parsed.AmountSats, parsed.Comment)
	if err != nil {
		return nil, err
	}

	result := &InvoiceResult{
		Invoice:    invoice,
		Address:    address,
		AmountSats: parsed.AmountSats,
	}
	if decoded, err := bolt11.Decode(invoice); err == nil && decoded.Network != bolt11.Unknown {
		result.Network = decoded.Network.String()
	}
	return result, nil
}

func (toolset *Toolset) decodeInvoice(_ context.Context, args map[string]any) (any, error) {
	var parsed decodeInvoiceArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return nil, err
	}

	decoded, err := bolt11.Decode(parsed.Invoice)
	if err != nil {
		return nil, err
	}
	return NewDecodeResult(decoded), nil
}

func NewDecodeResult(decoded *bolt11.Decoded) *DecodeResult {
	result := &DecodeResult{
		Network:      decoded.Network.String(),
		Prefix:       decoded.Prefix,
		AmountStatus: decoded.Amount.Status.String(),
		Caveat:       DecodeCaveat,
	}
	if decoded.Amount.Unit != bolt11.UnitNone {
		result.Unit = decoded.Amount.Unit.String()
	}
	if decoded.Amount.IsSpecified() {
		sats := int64(decoded.Amount.Sats)
		result.AmountSats = &sats
	}
	return result
}

func (toolset *Toolset) resolveAddress(ctx context.Context, args map[string]any) (any, error) {
	var parsed resolveAddressArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return nil, err
	}

	address, err := lnurlpay.ParseAddress(strings.TrimSpace(parsed.Address))
	if err != nil {
		return nil, err
	}

	metadata, err := toolset.resolver.Resolve(ctx, address.String())
	if err != nil {
		return nil, err
	}

	return NewAddressResult(address, metadata), nil
}

func NewAddressResult(address lnurlpay.Address, metadata *lnurlpay.PayMetadata) *AddressResult {
	encoded, err := address.LNURL()
	if err != nil {
		logger.Warnf("Could not encode LNURL of %s: %v", address, err)
	}

	return &AddressResult{
		Address:         address.String(),
		LNURL:           encoded,
		Callback:        metadata.Callback,
		MinSendableMsat: metadata.MinSendable,
		MaxSendableMsat: metadata.MaxSendable,
		MinSendableSats: int64(metadata.MinSendableSat()),
		MaxSendableSats: int64(metadata.MaxSendableSat()),
		CommentAllowed:  metadata.CommentAllowed,
		Description:     metadata.Description(),
		Identifier:      metadata.Identifier(),
	}
}

func decodeArgs(args map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(rejectFractions),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}

// rejectFractions keeps 1.5 from silently becoming 1 when decoded into an integer
func rejectFractions(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if value, ok := data.(float64); ok && to.Kind() == reflect.Int64 && value != math.Trunc(value) {
		return nil, fmt.Errorf("%v is not a whole number", value)
	}
	return data, nil
}

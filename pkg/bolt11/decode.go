package bolt11

import (
	"fmt"
	"strings"
)

// MinLength is a sanity floor; checksum and data section alone make real invoices longer
const MinLength = 100

const uriScheme = "lightning:"

const separator = "1"

// Decoded is what can be learned from the human-readable part of an invoice without
// decoding the bech32 data part. Payment hash, destination, description, routing hints
// and expiry are never available.
type Decoded struct {
	Network Network
	// Prefix is the matched network prefix, "ln" for unknown networks
	Prefix            string
	HumanReadablePart string
	Amount            Amount
}

// Decode heuristically parses the human-readable part of a BOLT11 invoice.
// An amount that cannot be parsed does not fail the decoding, it is reported in Decoded.Amount.
func Decode(invoice string) (*Decoded, error) {
	normalized := strings.ToLower(strings.TrimSpace(invoice))
	normalized = strings.TrimPrefix(normalized, uriScheme)

	if normalized == "" {
		return nil, ErrEmptyInput
	}

	if !strings.HasPrefix(normalized, invoicePrefix) {
		return nil, ErrBadPrefix
	}

	if len(normalized) < MinLength {
		return nil, fmt.Errorf("%w: %d characters, expected at least %d", ErrTooShort, len(normalized), MinLength)
	}

	network, prefix := detectNetwork(normalized)

	// the bech32 data part never contains the separator
	humanReadablePart := normalized
	if index := strings.LastIndex(normalized, separator); index != -1 {
		humanReadablePart = normalized[:index]
	}

	decoded := &Decoded{
		Network:           network,
		Prefix:            prefix,
		HumanReadablePart: humanReadablePart,
	}

	if network == Unknown {
		decoded.Amount = Amount{Status: AmountUnparseable}
		return decoded, nil
	}

	decoded.Amount = parseAmount(humanReadablePart[len(prefix):])
	return decoded, nil
}

package lnurlpay

import (
	"context"
	"fmt"

	"github.com/BoltzExchange/lnaddress/internal/logger"
)

// Resolve fetches the LNURL-pay metadata of a lightning address with a single GET
func (client *Client) Resolve(ctx context.Context, address string) (*PayMetadata, error) {
	parsed, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return client.ResolveAddress(ctx, parsed)
}

func (client *Client) ResolveAddress(ctx context.Context, address Address) (*PayMetadata, error) {
	if address.domain == "" || address.localPart == "" {
		return nil, fmt.Errorf("%w: empty address", ErrMalformedAddress)
	}

	logger.Debugf("Resolving lightning address %s", address)
	body, err := client.get(ctx, address.DiscoveryURL(), ErrUnreachableEndpoint)
	if err != nil {
		return nil, err
	}

	metadata, err := ParsePayMetadata(body)
	if err != nil {
		return nil, err
	}

	logger.Debugf(
		"Lightning address %s accepts between %d and %d msat",
		address, metadata.MinSendable, metadata.MaxSendable,
	)
	return metadata, nil
}

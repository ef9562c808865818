package lnurlpay

import (
	"fmt"
	"strings"

	golnurl "github.com/fiatjaf/go-lnurl"
)

const wellKnownPath = "/.well-known/lnurlp/"

// Address is a lightning address of the form user@domain
type Address struct {
	localPart string
	domain    string
}

func ParseAddress(address string) (Address, error) {
	parts := strings.Split(address, "@")
	if len(parts) != 2 {
		return Address{}, fmt.Errorf("%w: expected exactly one @ in %q", ErrMalformedAddress, address)
	}

	localPart, domain := parts[0], parts[1]
	if localPart == "" || domain == "" {
		return Address{}, fmt.Errorf("%w: user and domain of %q must not be empty", ErrMalformedAddress, address)
	}

	if !strings.Contains(domain, ".") {
		return Address{}, fmt.Errorf("%w: domain %q is not a DNS name", ErrMalformedAddress, domain)
	}

	return Address{localPart: localPart, domain: domain}, nil
}

func (address Address) LocalPart() string {
	return address.localPart
}

func (address Address) Domain() string {
	return address.domain
}

func (address Address) String() string {
	return address.localPart + "@" + address.domain
}

// DiscoveryURL uses user and domain verbatim
func (address Address) DiscoveryURL() string {
	return "https://" + address.domain + wellKnownPath + address.localPart
}

// LNURL returns the bech32 encoded discovery URL
func (address Address) LNURL() (string, error) {
	return golnurl.LNURLEncode(address.DiscoveryURL())
}

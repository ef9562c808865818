package bolt11

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

type Network int

const (
	Unknown Network = iota
	Mainnet
	Testnet
	Regtest
)

const invoicePrefix = "ln"

type networkPrefix struct {
	prefix  string
	network Network
}

// Longest prefix first: lnbcrt has to be checked before lnbc.
var networkPrefixes = []networkPrefix{
	{invoicePrefix + chaincfg.RegressionNetParams.Bech32HRPSegwit, Regtest},
	{invoicePrefix + chaincfg.MainNetParams.Bech32HRPSegwit, Mainnet},
	{invoicePrefix + chaincfg.TestNet3Params.Bech32HRPSegwit, Testnet},
}

func (network Network) String() string {
	switch network {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	case Regtest:
		return "regtest"
	default:
		return "unknown"
	}
}

// Params returns the chain parameters of the network or nil if it is unknown
func (network Network) Params() *chaincfg.Params {
	switch network {
	case Mainnet:
		return &chaincfg.MainNetParams
	case Testnet:
		return &chaincfg.TestNet3Params
	case Regtest:
		return &chaincfg.RegressionNetParams
	default:
		return nil
	}
}

func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(name) {
	case "mainnet", "bitcoin":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	case "regtest":
		return Regtest, nil
	default:
		return Unknown, errors.New("network " + name + " not supported")
	}
}

// detectNetwork expects a lowercase invoice
func detectNetwork(invoice string) (Network, string) {
	for _, candidate := range networkPrefixes {
		if strings.HasPrefix(invoice, candidate.prefix) {
			return candidate.network, candidate.prefix
		}
	}
	return Unknown, invoicePrefix
}

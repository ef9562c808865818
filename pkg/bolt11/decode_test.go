package bolt11

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

// fakeInvoice appends a data part without a separator so the result is long enough
func fakeInvoice(humanReadablePart string) string {
	return humanReadablePart + separator + strings.Repeat("qpzry9x8", 13)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		invoice string
		err     error
	}{
		{"Empty", "", ErrEmptyInput},
		{"Whitespace", " \t\n ", ErrEmptyInput},
		{"OnlyScheme", "lightning:", ErrEmptyInput},
		{"NotLightning", "notln" + strings.Repeat("q", 100), ErrBadPrefix},
		{"Address", "alice@example.com", ErrBadPrefix},
		{"TooShort", "lnbc" + strings.Repeat("q", 46), ErrTooShort},
		{"JustBelowFloor", "lnbc1" + strings.Repeat("q", MinLength-6), ErrTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := Decode(tc.invoice)
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, decoded)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		invoice string
		network Network
		prefix  string
		amount  Amount
	}{
		{
			name:    "RegtestBeforeMainnet",
			invoice: fakeInvoice("lnbcrt2500u"),
			network: Regtest,
			prefix:  "lnbcrt",
			amount:  Amount{Sats: 250000, Value: 2500, Unit: UnitMicro, Status: AmountSpecified},
		},
		{
			name:    "MainnetMicro",
			invoice: fakeInvoice("lnbc2500u"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Sats: 250000, Value: 2500, Unit: UnitMicro, Status: AmountSpecified},
		},
		{
			name:    "AnyAmount",
			invoice: fakeInvoice("lnbc"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Status: AmountUnspecified},
		},
		{
			name:    "TestnetNano",
			invoice: fakeInvoice("lntb10n"),
			network: Testnet,
			prefix:  "lntb",
			amount:  Amount{Sats: 1_000_000, Value: 10, Unit: UnitNano, Status: AmountSpecified},
		},
		{
			name:    "Pico",
			invoice: fakeInvoice("lnbc5p"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Sats: 500_000_000, Value: 5, Unit: UnitPico, Status: AmountSpecified},
		},
		{
			name:    "Milli",
			invoice: fakeInvoice("lntb1500m"),
			network: Testnet,
			prefix:  "lntb",
			amount:  Amount{Sats: 1, Value: 1500, Unit: UnitMilli, Status: AmountSpecified},
		},
		{
			// sub satoshi remainders are dropped, not rounded
			name:    "MilliTruncates",
			invoice: fakeInvoice("lnbc999m"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Sats: 0, Value: 999, Unit: UnitMilli, Status: AmountSpecified},
		},
		{
			name:    "UnknownUnit",
			invoice: fakeInvoice("lnbc2500x"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Value: 2500, Status: AmountUnparseable},
		},
		{
			name:    "MissingUnit",
			invoice: fakeInvoice("lnbcrt2500"),
			network: Regtest,
			prefix:  "lnbcrt",
			amount:  Amount{Status: AmountUnparseable},
		},
		{
			name:    "NumberOverflow",
			invoice: fakeInvoice("lnbc99999999999999999999u"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Status: AmountOverflow},
		},
		{
			name:    "MultiplicationOverflow",
			invoice: fakeInvoice("lnbc92233720368547758p"),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Value: 92233720368547758, Unit: UnitPico, Status: AmountOverflow},
		},
		{
			name:    "UnknownNetwork",
			invoice: fakeInvoice("lnxy2500u"),
			network: Unknown,
			prefix:  "ln",
			amount:  Amount{Status: AmountUnparseable},
		},
		{
			name:    "Uppercase",
			invoice: strings.ToUpper(fakeInvoice("lnbc2500u")),
			network: Mainnet,
			prefix:  "lnbc",
			amount:  Amount{Sats: 250000, Value: 2500, Unit: UnitMicro, Status: AmountSpecified},
		},
		{
			name:    "LightningScheme",
			invoice: "lightning:" + fakeInvoice("lnbcrt100n"),
			network: Regtest,
			prefix:  "lnbcrt",
			amount:  Amount{Sats: 10_000_000, Value: 100, Unit: UnitNano, Status: AmountSpecified},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := Decode(tc.invoice)
			require.NoError(t, err)
			require.Equal(t, tc.network, decoded.Network)
			require.Equal(t, tc.prefix, decoded.Prefix)
			require.Equal(t, tc.amount, decoded.Amount)
			require.True(t, strings.HasPrefix(decoded.HumanReadablePart, tc.prefix))
		})
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	for _, invoice := range []string{fakeInvoice("lnbcrt2500u"), fakeInvoice("lnbc"), "", "lnbc"} {
		first, firstErr := Decode(invoice)
		second, secondErr := Decode(invoice)
		require.Equal(t, first, second)
		require.Equal(t, firstErr, secondErr)
	}
}

func TestAmountErr(t *testing.T) {
	require.NoError(t, Amount{Status: AmountSpecified}.Err())
	require.NoError(t, Amount{Status: AmountUnspecified}.Err())
	require.ErrorIs(t, Amount{Status: AmountUnparseable}.Err(), ErrAmountUnparseable)
	require.ErrorIs(t, Amount{Status: AmountOverflow}.Err(), ErrAmountOverflow)

	require.True(t, Amount{Status: AmountSpecified, Sats: btcutil.Amount(1)}.IsSpecified())
	require.False(t, Amount{Status: AmountUnspecified}.IsSpecified())
}

func TestUnitString(t *testing.T) {
	require.Equal(t, "milli", UnitMilli.String())
	require.Equal(t, "micro", UnitMicro.String())
	require.Equal(t, "nano", UnitNano.String())
	require.Equal(t, "pico", UnitPico.String())
	require.Equal(t, "none", UnitNone.String())
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		name    string
		network Network
		params  *chaincfg.Params
	}{
		{"mainnet", Mainnet, &chaincfg.MainNetParams},
		{"testnet", Testnet, &chaincfg.TestNet3Params},
		{"regtest", Regtest, &chaincfg.RegressionNetParams},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.network.String())
			require.Equal(t, tc.params, tc.network.Params())

			parsed, err := ParseNetwork(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.network, parsed)
		})
	}

	require.Equal(t, "unknown", Unknown.String())
	require.Nil(t, Unknown.Params())

	_, err := ParseNetwork("litecoin")
	require.Error(t, err)
}

func TestNetworkPrefixes(t *testing.T) {
	require.Equal(t, "lnbcrt", networkPrefixes[0].prefix)
	require.Equal(t, "lnbc", networkPrefixes[1].prefix)
	require.Equal(t, "lntb", networkPrefixes[2].prefix)

	// no prefix may shadow a later, longer one
	for i, earlier := range networkPrefixes {
		for _, later := range networkPrefixes[i+1:] {
			require.False(t, strings.HasPrefix(later.prefix, earlier.prefix))
		}
	}
}

package bolt11

import (
	"errors"
	"strconv"

	"github.com/BoltzExchange/lnaddress/internal/utils"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
)

type Unit byte

const (
	UnitNone  Unit = 0
	UnitMilli Unit = 'm'
	UnitMicro Unit = 'u'
	UnitNano  Unit = 'n'
	UnitPico  Unit = 'p'
)

func (unit Unit) String() string {
	switch unit {
	case UnitMilli:
		return "milli"
	case UnitMicro:
		return "micro"
	case UnitNano:
		return "nano"
	case UnitPico:
		return "pico"
	default:
		return "none"
	}
}

type AmountStatus int

const (
	// AmountUnspecified means the invoice can be paid with any amount
	AmountUnspecified AmountStatus = iota
	AmountSpecified
	AmountUnparseable
	AmountOverflow
)

func (status AmountStatus) String() string {
	switch status {
	case AmountSpecified:
		return "specified"
	case AmountUnparseable:
		return "unparseable"
	case AmountOverflow:
		return "overflow"
	default:
		return "unspecified"
	}
}

type Amount struct {
	// Sats is only meaningful when Status is AmountSpecified
	Sats btcutil.Amount
	// Value is the number as it was written in the invoice
	Value  int64
	Unit   Unit
	Status AmountStatus
}

func (amount Amount) IsSpecified() bool {
	return amount.Status == AmountSpecified
}

func (amount Amount) Err() error {
	switch amount.Status {
	case AmountUnparseable:
		return ErrAmountUnparseable
	case AmountOverflow:
		return ErrAmountOverflow
	default:
		return nil
	}
}

var unitMultipliers = map[Unit]int64{
	UnitMicro: 100,
	UnitNano:  100_000,
	UnitPico:  100_000_000,
}

// parseAmount parses the part of the human-readable part between the network prefix and the separator
func parseAmount(section string) Amount {
	numberEnd := 0
	for numberEnd < len(section) && section[numberEnd] >= '0' && section[numberEnd] <= '9' {
		numberEnd++
	}

	if numberEnd == 0 {
		return Amount{Status: AmountUnspecified}
	}

	// a number without a unit
	if numberEnd == len(section) {
		return Amount{Status: AmountUnparseable}
	}

	value, err := strconv.ParseInt(section[:numberEnd], 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Amount{Status: AmountOverflow}
		}
		return Amount{Status: AmountUnparseable}
	}

	amount := Amount{Value: value, Unit: Unit(section[numberEnd])}

	switch amount.Unit {
	case UnitMilli:
		// precision loss: sub satoshi remainders are truncated
		amount.Sats = lnwire.MilliSatoshi(value).ToSatoshis()
	case UnitMicro, UnitNano, UnitPico:
		sats, ok := utils.MultiplyChecked(value, unitMultipliers[amount.Unit])
		if !ok {
			return Amount{Value: value, Unit: amount.Unit, Status: AmountOverflow}
		}
		amount.Sats = btcutil.Amount(sats)
	default:
		return Amount{Value: value, Status: AmountUnparseable}
	}

	amount.Status = AmountSpecified
	return amount
}

package bolt11

import "errors"

var (
	ErrEmptyInput = errors.New("invoice is empty")
	ErrBadPrefix  = errors.New("invoice does not start with ln")
	ErrTooShort   = errors.New("invoice is too short")

	// only ever reported for the amount, the network is still detected
	ErrAmountOverflow    = errors.New("invoice amount overflows")
	ErrAmountUnparseable = errors.New("invoice amount could not be parsed")
)

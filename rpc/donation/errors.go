package donation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
)

// Errors the contract fails with.
var (
	ErrUnauthorized           = errors.New(donationconst.ErrUnauthorized)
	ErrInvalidAddress         = errors.New(donationconst.ErrInvalidAddress)
	ErrTokenAlreadyRegistered = errors.New(donationconst.ErrTokenAlreadyRegistered)
	ErrTokenNotRegistered     = errors.New(donationconst.ErrTokenNotRegistered)
	ErrDonationAmountTooLow   = errors.New(donationconst.ErrDonationAmountTooLow)
	ErrValueDoesNotMatch      = errors.New(donationconst.ErrValueDoesNotMatch)
	ErrInsufficientAllowance  = errors.New(donationconst.ErrInsufficientAllowance)
	ErrInsufficientBalance    = errors.New(donationconst.ErrInsufficientBalance)
)

var contractErrors = []error{
	ErrUnauthorized,
	ErrInvalidAddress,
	ErrTokenAlreadyRegistered,
	ErrTokenNotRegistered,
	ErrDonationAmountTooLow,
	ErrValueDoesNotMatch,
	ErrInsufficientAllowance,
	ErrInsufficientBalance,
}

// TranslateError wraps err with the contract error mentioned in its message,
// so that it can be checked with errors.Is. Other errors are returned as is.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	for _, e := range contractErrors {
		if errors.Is(err, e) {
			return err
		}
	}

	msg := err.Error()
	for _, e := range contractErrors {
		if strings.Contains(msg, e.Error()) {
			return fmt.Errorf("%w: %w", e, err)
		}
	}

	return err
}

// Package donationconst holds values shared by the Donation contract and its
// off-chain clients.
package donationconst

// Failure messages the contract aborts with. Each names exactly one violated
// precondition.
const (
	ErrUnauthorized           = "Unauthorized"
	ErrInvalidAddress         = "InvalidAddress"
	ErrTokenAlreadyRegistered = "TokenAlreadyRegistered"
	ErrTokenNotRegistered     = "TokenNotRegistered"
	ErrDonationAmountTooLow   = "DonationAmountTooLow"
	ErrValueDoesNotMatch      = "ValueDoesNotMatch"
	ErrInsufficientAllowance  = "InsufficientAllowance"
	ErrInsufficientBalance    = "InsufficientBalance"
)

const (
	// SymbolLen is the length of asset symbol in bytes (Keccak-256 digest).
	SymbolLen = 32

	// NativeSymbol is Keccak-256 digest of "NATIVE". It stands for native GAS
	// and is never stored in the token registry.
	NativeSymbol = "\xfd\xae\x1b\xa7\xc8\x26\xab\xdc\x4c\x99\x90\x3c\x80\x56\xf8\x2a" +
		"\x1a\x04\xa6\x15\xc9\x4c\x89\x5c\x32\xd2\x4a\x82\xe8\xec\xf7\xcd"

	// DonationNotification is the name of the event emitted on every deposit.
	DonationNotification = "Donation"

	// DepositDataLen is the number of elements in onNEP17Payment data of
	// a deposit: storyID, symbol, receiver, amount, tips.
	DepositDataLen = 5
)

package donation

import (
	"github.com/bitkind/donation-contract/common"
	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

const (
	ownerKey    = "o"
	tokenPrefix = "t"

	errInvalidSymbol  = "invalid symbol"
	errInvalidData    = "invalid deposit data"
	errNegativeAmount = "negative amount"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	ctx := storage.GetContext()

	owner := runtime.GetScriptContainer().Sender
	storage.Put(ctx, ownerKey, owner)

	runtime.Log("donation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	checkOwner(storage.GetReadOnlyContext())

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("donation contract updated")
}

// Owner returns the account that deployed the contract. Only this account can
// manage token registry and withdraw collected tips.
func Owner() interop.Hash160 {
	return getOwner(storage.GetReadOnlyContext())
}

// RegisterToken maps asset symbol (Keccak-256 digest of the human-readable
// symbol) to NEP-17 token contract hash. Native GAS symbol is always
// registered and can't be overridden.
func RegisterToken(symbol []byte, token interop.Hash160) {
	ctx := storage.GetContext()
	checkOwner(ctx)
	common.CheckAddress(token, donationconst.ErrInvalidAddress)
	checkSymbol(symbol)

	key := tokenKey(symbol)
	if isNative(symbol) || storage.Get(ctx, key) != nil {
		panic(donationconst.ErrTokenAlreadyRegistered)
	}

	storage.Put(ctx, key, token)
}

// DeregisterToken removes asset symbol from the token registry.
func DeregisterToken(symbol []byte) {
	ctx := storage.GetContext()
	checkOwner(ctx)
	checkSymbol(symbol)

	key := tokenKey(symbol)
	if storage.Get(ctx, key) == nil {
		panic(donationconst.ErrTokenNotRegistered)
	}

	storage.Delete(ctx, key)
}

// ResolveToken returns token contract hash registered for the symbol. Null is
// returned for native GAS symbol and for unknown symbols.
func ResolveToken(symbol []byte) interop.Hash160 {
	return resolve(storage.GetReadOnlyContext(), symbol)
}

// ListTokens returns iterator over registered (symbol, token hash) pairs.
func ListTokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte(tokenPrefix), storage.RemovePrefix)
}

// OnNEP17Payment accepts deposits in native GAS and registered tokens.
//
// Without data the payment tops up the contract balance. Otherwise data must
// be an array of storyID, symbol, receiver, amount and tips: amount is
// forwarded to the receiver, tips stay on the contract balance. Transferred
// value must be exactly amount + tips of the asset named by symbol.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	caller := runtime.GetCallingScriptHash()

	if data == nil {
		if !caller.Equals(gas.Hash) && !isRegistered(ctx, caller) {
			panic(donationconst.ErrTokenNotRegistered)
		}
		return
	}

	args := data.([]any)
	if len(args) != donationconst.DepositDataLen {
		panic(errInvalidData)
	}

	var (
		storyID  = args[0].(int)
		symbol   = args[1].([]byte)
		receiver = args[2].(interop.Hash160)
		payout   = args[3].(int)
		tips     = args[4].(int)
	)

	total := checkDonation(receiver, payout, tips)
	checkSymbol(symbol)

	token := interop.Hash160(gas.Hash)
	if !isNative(symbol) {
		token = resolve(ctx, symbol)
		if token == nil {
			panic(donationconst.ErrTokenNotRegistered)
		}
	}

	if !caller.Equals(token) || amount != total {
		panic(donationconst.ErrValueDoesNotMatch)
	}

	settle(token, storyID, symbol, receiver, payout, tips)
}

// Donate pulls amount + tips of the registered token from the donor, forwards
// amount to the receiver and keeps tips. Donor must witness the transaction,
// this authorizes the contract to transfer donor's tokens. Native GAS can't be
// pulled, it must be transferred to the contract with deposit data instead.
func Donate(from interop.Hash160, storyID int, symbol []byte, receiver interop.Hash160, amount, tips int) {
	total := checkDonation(receiver, amount, tips)
	checkSymbol(symbol)

	if isNative(symbol) {
		// no GAS is attached to a plain invocation
		panic(donationconst.ErrValueDoesNotMatch)
	}

	token := resolve(storage.GetReadOnlyContext(), symbol)
	if token == nil {
		panic(donationconst.ErrTokenNotRegistered)
	}

	common.CheckAddress(from, donationconst.ErrInvalidAddress)
	common.CheckWitness(from, donationconst.ErrInsufficientAllowance)

	if common.BalanceOf(token, from) < total {
		panic(donationconst.ErrInsufficientBalance)
	}

	if !common.Transfer(token, from, runtime.GetExecutingScriptHash(), total, nil) {
		panic(donationconst.ErrInsufficientAllowance)
	}

	settle(token, storyID, symbol, receiver, amount, tips)
}

// WithdrawNative transfers GAS from the contract balance to the given account.
func WithdrawNative(to interop.Hash160, amount int) {
	checkOwner(storage.GetReadOnlyContext())
	common.CheckAddress(to, donationconst.ErrInvalidAddress)

	withdraw(interop.Hash160(gas.Hash), to, amount)
}

// WithdrawToken transfers registered token from the contract balance to the
// given account.
func WithdrawToken(symbol []byte, to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	checkOwner(ctx)
	common.CheckAddress(to, donationconst.ErrInvalidAddress)
	checkSymbol(symbol)

	token := resolve(ctx, symbol)
	if token == nil {
		panic(donationconst.ErrTokenNotRegistered)
	}

	withdraw(token, to, amount)
}

// NativeBalance returns amount of GAS held by the contract.
func NativeBalance() int {
	return gas.BalanceOf(runtime.GetExecutingScriptHash())
}

// TokenBalance returns amount of the asset held by the contract. Native GAS
// symbol is accepted as well.
func TokenBalance(symbol []byte) int {
	checkSymbol(symbol)

	if isNative(symbol) {
		return NativeBalance()
	}

	token := resolve(storage.GetReadOnlyContext(), symbol)
	if token == nil {
		panic(donationconst.ErrTokenNotRegistered)
	}

	return common.BalanceOf(token, runtime.GetExecutingScriptHash())
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func settle(token interop.Hash160, storyID int, symbol []byte, receiver interop.Hash160, amount, tips int) {
	common.TransferFromSelf(token, receiver, amount)

	runtime.Notify("Donation", storyID, symbol, receiver, amount, tips)
}

func withdraw(token, to interop.Hash160, amount int) {
	if amount < 0 {
		panic(errNegativeAmount)
	}

	if common.BalanceOf(token, runtime.GetExecutingScriptHash()) < amount {
		panic(donationconst.ErrInsufficientBalance)
	}

	common.TransferFromSelf(token, to, amount)
}

// checkDonation returns the total value of a valid donation.
func checkDonation(receiver interop.Hash160, amount, tips int) int {
	common.CheckAddress(receiver, donationconst.ErrInvalidAddress)

	if amount < 0 || tips < 0 || amount+tips == 0 {
		panic(donationconst.ErrDonationAmountTooLow)
	}

	return amount + tips
}

func checkOwner(ctx storage.Context) {
	common.CheckWitness(getOwner(ctx), donationconst.ErrUnauthorized)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func checkSymbol(symbol []byte) {
	if len(symbol) != donationconst.SymbolLen {
		panic(errInvalidSymbol)
	}
}

func isNative(symbol []byte) bool {
	return util.Equals(string(symbol), donationconst.NativeSymbol)
}

func resolve(ctx storage.Context, symbol []byte) interop.Hash160 {
	if len(symbol) != donationconst.SymbolLen {
		return nil
	}

	data := storage.Get(ctx, tokenKey(symbol))
	if data == nil {
		return nil
	}

	return data.(interop.Hash160)
}

func isRegistered(ctx storage.Context, token interop.Hash160) bool {
	it := storage.Find(ctx, []byte(tokenPrefix), storage.ValuesOnly)
	for iterator.Next(it) {
		if token.Equals(iterator.Value(it).(interop.Hash160)) {
			return true
		}
	}

	return false
}

func tokenKey(symbol []byte) []byte {
	return append([]byte(tokenPrefix), symbol...)
}

// Package donation contains RPC wrappers for Donation contract.
package donation

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// DonationEvent represents "Donation" event emitted by the contract.
type DonationEvent struct {
	StoryID *big.Int
	Symbol []byte
	Receiver util.Uint160
	Amount *big.Int
	Tips *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ListTokens invokes `listTokens` method of contract.
func (c *ContractReader) ListTokens() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listTokens"))
}

// ListTokensExpanded is similar to ListTokens (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ListTokensExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listTokens", _numOfIteratorItems))
}

// NativeBalance invokes `nativeBalance` method of contract.
func (c *ContractReader) NativeBalance() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "nativeBalance"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// ResolveToken invokes `resolveToken` method of contract.
func (c *ContractReader) ResolveToken(symbol []byte) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "resolveToken", symbol))
}

// TokenBalance invokes `tokenBalance` method of contract.
func (c *ContractReader) TokenBalance(symbol []byte) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "tokenBalance", symbol))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// DeregisterToken creates a transaction invoking `deregisterToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DeregisterToken(symbol []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deregisterToken", symbol)
}

// DeregisterTokenTransaction creates a transaction invoking `deregisterToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DeregisterTokenTransaction(symbol []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deregisterToken", symbol)
}

// DeregisterTokenUnsigned creates a transaction invoking `deregisterToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DeregisterTokenUnsigned(symbol []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deregisterToken", nil, symbol)
}

// Donate creates a transaction invoking `donate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Donate(from util.Uint160, storyID *big.Int, symbol []byte, receiver util.Uint160, amount *big.Int, tips *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "donate", from, storyID, symbol, receiver, amount, tips)
}

// DonateTransaction creates a transaction invoking `donate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DonateTransaction(from util.Uint160, storyID *big.Int, symbol []byte, receiver util.Uint160, amount *big.Int, tips *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "donate", from, storyID, symbol, receiver, amount, tips)
}

// DonateUnsigned creates a transaction invoking `donate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DonateUnsigned(from util.Uint160, storyID *big.Int, symbol []byte, receiver util.Uint160, amount *big.Int, tips *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "donate", nil, from, storyID, symbol, receiver, amount, tips)
}

// RegisterToken creates a transaction invoking `registerToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterToken(symbol []byte, token util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerToken", symbol, token)
}

// RegisterTokenTransaction creates a transaction invoking `registerToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterTokenTransaction(symbol []byte, token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerToken", symbol, token)
}

// RegisterTokenUnsigned creates a transaction invoking `registerToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterTokenUnsigned(symbol []byte, token util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerToken", nil, symbol, token)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// WithdrawNative creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawNative(to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawNative", to, amount)
}

// WithdrawNativeTransaction creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawNativeTransaction(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawNative", to, amount)
}

// WithdrawNativeUnsigned creates a transaction invoking `withdrawNative` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawNativeUnsigned(to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawNative", nil, to, amount)
}

// WithdrawToken creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawToken(symbol []byte, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawToken", symbol, to, amount)
}

// WithdrawTokenTransaction creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTokenTransaction(symbol []byte, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawToken", symbol, to, amount)
}

// WithdrawTokenUnsigned creates a transaction invoking `withdrawToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawTokenUnsigned(symbol []byte, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawToken", nil, symbol, to, amount)
}

// DonationEventsFromApplicationLog retrieves a set of all emitted events
// with "Donation" name from the provided [result.ApplicationLog].
func DonationEventsFromApplicationLog(log *result.ApplicationLog) ([]*DonationEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DonationEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Donation" {
				continue
			}
			event := new(DonationEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DonationEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DonationEvent or
// returns an error if it's not possible to do to so.
func (e *DonationEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.StoryID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field StoryID: %w", err)
	}

	index++
	e.Symbol, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Symbol: %w", err)
	}

	index++
	e.Receiver, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Receiver: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Tips, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Tips: %w", err)
	}

	return nil
}

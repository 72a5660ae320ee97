package tests

import (
	"encoding/json"
	"math/big"
	"path"
	"testing"

	"github.com/bitkind/donation-contract/common"
	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	rpcdonation "github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestDonation_Deploy(t *testing.T) {
	d := newDonationEnv(t)

	d.donation.Invoke(t, d.donation.CommitteeHash, "owner")
	d.donation.Invoke(t, common.Version, "version")
	d.donation.Invoke(t, 0, "nativeBalance")
	d.donation.Invoke(t, 0, "tokenBalance", nativeSymbol)
}

func TestDonation_Update(t *testing.T) {
	d := newDonationEnv(t)

	c := neotest.CompileFile(t, d.donation.CommitteeHash, donationPath, path.Join(donationPath, "config.yml"))
	rawNEF, err := c.NEF.Bytes()
	require.NoError(t, err)
	rawManifest, err := json.Marshal(c.Manifest)
	require.NoError(t, err)

	stranger := d.donation.WithSigners(d.donation.NewAccount(t))
	stranger.InvokeFail(t, donationconst.ErrUnauthorized, "update", rawNEF, rawManifest, nil)

	d.donation.InvokeFail(t, common.ErrAlreadyUpdated, "update", rawNEF, rawManifest, nil)
}

func TestDonation_RegisterToken(t *testing.T) {
	d := newDonationEnv(t)
	stranger := d.donation.WithSigners(d.donation.NewAccount(t))
	otherToken := util.Uint160{1, 2, 3}

	stranger.InvokeFail(t, donationconst.ErrUnauthorized, "registerToken", testSymbol, d.token.Hash)
	d.donation.InvokeFail(t, donationconst.ErrInvalidAddress, "registerToken", testSymbol, util.Uint160{})
	d.donation.InvokeFail(t, donationconst.ErrInvalidAddress, "registerToken", testSymbol, []byte{1, 2, 3})
	d.donation.InvokeFail(t, errInvalidSymbol, "registerToken", []byte("TEST"), d.token.Hash)
	d.donation.InvokeFail(t, donationconst.ErrTokenAlreadyRegistered, "registerToken", nativeSymbol, d.token.Hash)

	d.donation.Invoke(t, stackitem.Null{}, "resolveToken", testSymbol)
	d.registerToken(t)
	d.donation.Invoke(t, d.token.Hash, "resolveToken", testSymbol)

	d.donation.InvokeFail(t, donationconst.ErrTokenAlreadyRegistered, "registerToken", testSymbol, otherToken)
	d.donation.Invoke(t, d.token.Hash, "resolveToken", testSymbol)

	d.donation.Invoke(t, stackitem.Null{}, "resolveToken", nativeSymbol)
	d.donation.Invoke(t, stackitem.Null{}, "resolveToken", rpcdonation.SymbolOf("UNKNOWN"))
	d.donation.Invoke(t, stackitem.Null{}, "resolveToken", []byte{1})
}

func TestDonation_DeregisterToken(t *testing.T) {
	d := newDonationEnv(t)
	stranger := d.donation.WithSigners(d.donation.NewAccount(t))

	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "deregisterToken", testSymbol)
	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "deregisterToken", nativeSymbol)

	d.registerToken(t)
	stranger.InvokeFail(t, donationconst.ErrUnauthorized, "deregisterToken", testSymbol)
	d.donation.Invoke(t, d.token.Hash, "resolveToken", testSymbol)

	d.donation.Invoke(t, stackitem.Null{}, "deregisterToken", testSymbol)
	d.donation.Invoke(t, stackitem.Null{}, "resolveToken", testSymbol)
	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "deregisterToken", testSymbol)

	// symbol can be registered again after removal
	d.registerToken(t)
	d.donation.Invoke(t, d.token.Hash, "resolveToken", testSymbol)
}

func TestDonation_ListTokens(t *testing.T) {
	d := newDonationEnv(t)
	otherSymbol := rpcdonation.SymbolOf("OTHER")
	otherToken := util.Uint160{1, 2, 3}

	d.registerToken(t)
	d.donation.Invoke(t, stackitem.Null{}, "registerToken", otherSymbol, otherToken)

	s, err := d.donation.TestInvoke(t, "listTokens")
	require.NoError(t, err)

	iter := s.Pop().Value().(*storage.Iterator)
	tokens, err := rpcdonation.TokensFromItems(iteratorToArray(iter))
	require.NoError(t, err)
	require.ElementsMatch(t, []rpcdonation.Token{
		{Symbol: testSymbol, Hash: d.token.Hash},
		{Symbol: otherSymbol, Hash: otherToken},
	}, tokens)
}

func TestDonation_NativeDeposit(t *testing.T) {
	d := newDonationEnv(t)

	donor := d.gas.NewAccount(t)
	receiver := d.gas.NewAccount(t).ScriptHash()
	gasDonor := d.gas.WithSigners(donor)

	const (
		payout = 1_0000_0000
		tips   = 1000_0000
	)

	receiverBefore := balanceOf(t, d.gas, receiver)
	data := depositData(123, nativeSymbol, receiver, payout, tips)

	gasDonor.InvokeFail(t, donationconst.ErrValueDoesNotMatch, "transfer",
		donor.ScriptHash(), d.donation.Hash, int64(payout), data)
	gasDonor.InvokeFail(t, donationconst.ErrValueDoesNotMatch, "transfer",
		donor.ScriptHash(), d.donation.Hash, int64(payout+tips+1), data)
	require.Equal(t, receiverBefore, balanceOf(t, d.gas, receiver))
	require.Zero(t, balanceOf(t, d.gas, d.donation.Hash))

	h := gasDonor.Invoke(t, true, "transfer",
		donor.ScriptHash(), d.donation.Hash, int64(payout+tips), data)

	require.Equal(t, receiverBefore+payout, balanceOf(t, d.gas, receiver))
	require.EqualValues(t, tips, balanceOf(t, d.gas, d.donation.Hash))
	d.donation.Invoke(t, tips, "nativeBalance")
	d.donation.Invoke(t, tips, "tokenBalance", nativeSymbol)

	events := donationEvents(t, d.donation, h)
	require.Len(t, events, 1)
	require.Equal(t, &rpcdonation.DonationEvent{
		StoryID:  big.NewInt(123),
		Symbol:   nativeSymbol,
		Receiver: receiver,
		Amount:   big.NewInt(payout),
		Tips:     big.NewInt(tips),
	}, events[0])
}

func TestDonation_NativeDepositTipsOnly(t *testing.T) {
	d := newDonationEnv(t)

	donor := d.gas.NewAccount(t)
	receiver := d.gas.NewAccount(t).ScriptHash()
	receiverBefore := balanceOf(t, d.gas, receiver)

	d.gas.WithSigners(donor).Invoke(t, true, "transfer",
		donor.ScriptHash(), d.donation.Hash, int64(500), depositData(1, nativeSymbol, receiver, 0, 500))

	require.Equal(t, receiverBefore, balanceOf(t, d.gas, receiver))
	require.EqualValues(t, 500, balanceOf(t, d.gas, d.donation.Hash))
}

func TestDonation_DepositValidation(t *testing.T) {
	d := newDonationEnv(t)
	d.registerToken(t)

	donor := d.gas.NewAccount(t)
	receiver := d.gas.NewAccount(t).ScriptHash()
	gasDonor := d.gas.WithSigners(donor)
	donorHash := donor.ScriptHash()

	transfer := func(amount int64, data any) {
		gasDonor.Invoke(t, true, "transfer", donorHash, d.donation.Hash, amount, data)
	}
	transferFail := func(msg string, amount int64, data any) {
		gasDonor.InvokeFail(t, msg, "transfer", donorHash, d.donation.Hash, amount, data)
	}

	t.Run("null receiver", func(t *testing.T) {
		transferFail(donationconst.ErrInvalidAddress, 2, depositData(1, nativeSymbol, util.Uint160{}, 1, 1))
	})
	t.Run("zero amount", func(t *testing.T) {
		transferFail(donationconst.ErrDonationAmountTooLow, 1, depositData(1, nativeSymbol, receiver, 0, 0))
	})
	t.Run("negative tips", func(t *testing.T) {
		transferFail(donationconst.ErrDonationAmountTooLow, 1, depositData(1, nativeSymbol, receiver, 2, -1))
	})
	t.Run("unknown symbol", func(t *testing.T) {
		transferFail(donationconst.ErrTokenNotRegistered, 2, depositData(1, rpcdonation.SymbolOf("NOPE"), receiver, 1, 1))
	})
	t.Run("wrong asset", func(t *testing.T) {
		transferFail(donationconst.ErrValueDoesNotMatch, 2, depositData(1, testSymbol, receiver, 1, 1))
	})
	t.Run("invalid symbol", func(t *testing.T) {
		transferFail(errInvalidSymbol, 2, depositData(1, []byte("NATIVE"), receiver, 1, 1))
	})
	t.Run("invalid data", func(t *testing.T) {
		transferFail("invalid deposit data", 2, []any{int64(1), nativeSymbol})
	})
	t.Run("top up", func(t *testing.T) {
		before := balanceOf(t, d.gas, d.donation.Hash)
		transfer(7, nil)
		require.Equal(t, before+7, balanceOf(t, d.gas, d.donation.Hash))
	})

	require.EqualValues(t, 7, balanceOf(t, d.gas, d.donation.Hash))
}

func TestDonation_TokenDonate(t *testing.T) {
	d := newDonationEnv(t)
	d.registerToken(t)

	donor := d.token.NewAccount(t)
	donorHash := donor.ScriptHash()
	receiver := d.token.NewAccount(t).ScriptHash()
	dest := d.token.NewAccount(t).ScriptHash()

	d.token.Invoke(t, stackitem.Null{}, "mint", donorHash, 10000)
	donating := d.donation.WithSigners(donor)

	t.Run("invalid", func(t *testing.T) {
		donating.InvokeFail(t, donationconst.ErrInvalidAddress, "donate",
			donorHash, 123, testSymbol, util.Uint160{}, 200, 50)
		donating.InvokeFail(t, donationconst.ErrDonationAmountTooLow, "donate",
			donorHash, 123, testSymbol, receiver, 0, 0)
		donating.InvokeFail(t, donationconst.ErrDonationAmountTooLow, "donate",
			donorHash, 123, testSymbol, receiver, -1, 50)
		donating.InvokeFail(t, donationconst.ErrTokenNotRegistered, "donate",
			donorHash, 123, rpcdonation.SymbolOf("NOPE"), receiver, 200, 50)
		donating.InvokeFail(t, donationconst.ErrValueDoesNotMatch, "donate",
			donorHash, 123, nativeSymbol, receiver, 200, 50)
		donating.InvokeFail(t, errInvalidSymbol, "donate",
			donorHash, 123, []byte("TEST"), receiver, 200, 50)
	})

	t.Run("insufficient allowance", func(t *testing.T) {
		thief := d.donation.WithSigners(d.donation.NewAccount(t))
		thief.InvokeFail(t, donationconst.ErrInsufficientAllowance, "donate",
			donorHash, 123, testSymbol, receiver, 200, 50)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		donating.InvokeFail(t, donationconst.ErrInsufficientBalance, "donate",
			donorHash, 123, testSymbol, receiver, 10000, 1)
	})

	require.EqualValues(t, 10000, balanceOf(t, d.token, donorHash))
	require.Zero(t, balanceOf(t, d.token, receiver))
	require.Zero(t, balanceOf(t, d.token, d.donation.Hash))

	h := donating.Invoke(t, stackitem.Null{}, "donate", donorHash, 123, testSymbol, receiver, 200, 50)

	require.EqualValues(t, 9750, balanceOf(t, d.token, donorHash))
	require.EqualValues(t, 200, balanceOf(t, d.token, receiver))
	require.EqualValues(t, 50, balanceOf(t, d.token, d.donation.Hash))
	d.donation.Invoke(t, 50, "tokenBalance", testSymbol)

	events := donationEvents(t, d.donation, h)
	require.Len(t, events, 1)
	require.Equal(t, &rpcdonation.DonationEvent{
		StoryID:  big.NewInt(123),
		Symbol:   testSymbol,
		Receiver: receiver,
		Amount:   big.NewInt(200),
		Tips:     big.NewInt(50),
	}, events[0])

	stranger := d.donation.WithSigners(d.donation.NewAccount(t))
	stranger.InvokeFail(t, donationconst.ErrUnauthorized, "withdrawToken", testSymbol, dest, 50)
	d.donation.InvokeFail(t, donationconst.ErrInvalidAddress, "withdrawToken", testSymbol, util.Uint160{}, 50)
	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "withdrawToken", rpcdonation.SymbolOf("NOPE"), dest, 50)
	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "withdrawToken", nativeSymbol, dest, 50)
	d.donation.InvokeFail(t, "negative amount", "withdrawToken", testSymbol, dest, -1)
	d.donation.InvokeFail(t, donationconst.ErrInsufficientBalance, "withdrawToken", testSymbol, dest, 51)
	require.EqualValues(t, 50, balanceOf(t, d.token, d.donation.Hash))

	d.donation.Invoke(t, stackitem.Null{}, "withdrawToken", testSymbol, dest, 50)
	require.Zero(t, balanceOf(t, d.token, d.donation.Hash))
	require.EqualValues(t, 50, balanceOf(t, d.token, dest))
	d.donation.Invoke(t, 0, "tokenBalance", testSymbol)
}

func TestDonation_TokenDonateSignerScope(t *testing.T) {
	d := newDonationEnv(t)
	d.registerToken(t)

	donor := d.token.NewAccount(t)
	donorHash := donor.ScriptHash()
	receiver := d.token.NewAccount(t).ScriptHash()

	d.token.Invoke(t, stackitem.Null{}, "mint", donorHash, 10000)

	donate := func(t *testing.T, signer transaction.Signer) util.Uint256 {
		return invokeSigned(t, d.donation, donor, signer, "donate", donorHash, 123, testSymbol, receiver, 200, 50)
	}

	t.Run("called by entry", func(t *testing.T) {
		h := donate(t, transaction.Signer{Account: donorHash, Scopes: transaction.CalledByEntry})
		d.donation.CheckFault(t, h, donationconst.ErrInsufficientAllowance)
	})

	t.Run("donation contract only", func(t *testing.T) {
		h := donate(t, transaction.Signer{
			Account:          donorHash,
			Scopes:           transaction.CustomContracts,
			AllowedContracts: []util.Uint160{d.donation.Hash},
		})
		d.donation.CheckFault(t, h, donationconst.ErrInsufficientAllowance)
	})

	require.EqualValues(t, 10000, balanceOf(t, d.token, donorHash))
	require.Zero(t, balanceOf(t, d.token, receiver))

	h := donate(t, rpcdonation.PullSigner(donorHash, d.donation.Hash, d.token.Hash))
	aer := d.donation.CheckHalt(t, h)

	require.EqualValues(t, 9750, balanceOf(t, d.token, donorHash))
	require.EqualValues(t, 200, balanceOf(t, d.token, receiver))
	require.EqualValues(t, 50, balanceOf(t, d.token, d.donation.Hash))

	events, err := rpcdonation.ContractDonationEvents(&result.ApplicationLog{
		Executions: []state.Execution{aer.Execution},
	}, d.donation.Hash)
	require.NoError(t, err)
	require.Equal(t, []*rpcdonation.DonationEvent{{
		StoryID:  big.NewInt(123),
		Symbol:   testSymbol,
		Receiver: receiver,
		Amount:   big.NewInt(200),
		Tips:     big.NewInt(50),
	}}, events)
}

func TestDonation_TokenDeposit(t *testing.T) {
	d := newDonationEnv(t)
	d.registerToken(t)

	donor := d.token.NewAccount(t)
	donorHash := donor.ScriptHash()
	receiver := d.token.NewAccount(t).ScriptHash()

	d.token.Invoke(t, stackitem.Null{}, "mint", donorHash, 1000)
	tokenDonor := d.token.WithSigners(donor)
	data := depositData(7, testSymbol, receiver, 200, 50)

	tokenDonor.InvokeFail(t, donationconst.ErrValueDoesNotMatch, "transfer", donorHash, d.donation.Hash, 200, data)
	tokenDonor.InvokeFail(t, donationconst.ErrValueDoesNotMatch, "transfer", donorHash, d.donation.Hash, 250,
		depositData(7, nativeSymbol, receiver, 200, 50))

	h := tokenDonor.Invoke(t, true, "transfer", donorHash, d.donation.Hash, 250, data)
	require.EqualValues(t, 750, balanceOf(t, d.token, donorHash))
	require.EqualValues(t, 200, balanceOf(t, d.token, receiver))
	require.EqualValues(t, 50, balanceOf(t, d.token, d.donation.Hash))
	require.Len(t, donationEvents(t, d.donation, h), 1)

	// plain transfers are accepted from registered tokens only
	tokenDonor.Invoke(t, true, "transfer", donorHash, d.donation.Hash, 10, nil)
	require.EqualValues(t, 60, balanceOf(t, d.token, d.donation.Hash))

	d.donation.Invoke(t, stackitem.Null{}, "deregisterToken", testSymbol)
	tokenDonor.InvokeFail(t, donationconst.ErrTokenNotRegistered, "transfer", donorHash, d.donation.Hash, 10, nil)
	tokenDonor.InvokeFail(t, donationconst.ErrTokenNotRegistered, "transfer", donorHash, d.donation.Hash, 250, data)
	d.donation.InvokeFail(t, donationconst.ErrTokenNotRegistered, "tokenBalance", testSymbol)
}

func TestDonation_WithdrawNative(t *testing.T) {
	d := newDonationEnv(t)
	dest := d.gas.NewAccount(t).ScriptHash()
	stranger := d.donation.WithSigners(d.donation.NewAccount(t))

	const amount = 5_0000_0000
	d.gas.Invoke(t, true, "transfer", d.gas.CommitteeHash, d.donation.Hash, int64(amount), nil)
	d.donation.Invoke(t, amount, "nativeBalance")

	destBefore := balanceOf(t, d.gas, dest)

	stranger.InvokeFail(t, donationconst.ErrUnauthorized, "withdrawNative", dest, amount)
	d.donation.InvokeFail(t, donationconst.ErrInvalidAddress, "withdrawNative", util.Uint160{}, amount)
	d.donation.InvokeFail(t, "negative amount", "withdrawNative", dest, -1)
	d.donation.InvokeFail(t, donationconst.ErrInsufficientBalance, "withdrawNative", dest, amount+1)
	d.donation.Invoke(t, amount, "nativeBalance")
	require.Equal(t, destBefore, balanceOf(t, d.gas, dest))

	d.donation.Invoke(t, stackitem.Null{}, "withdrawNative", dest, amount)
	d.donation.Invoke(t, 0, "nativeBalance")
	require.Equal(t, destBefore+amount, balanceOf(t, d.gas, dest))
}

package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	"github.com/bitkind/donation-contract/internal/config"
	"github.com/bitkind/donation-contract/rpc/donation"
	"github.com/nspcc-dev/neo-go/cli/input"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// dial connects to the configured RPC node.
func dial(ctx context.Context) (*rpcclient.Client, error) {
	c, err := rpcclient.New(ctx, cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client construction: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client initialization: %w", err)
	}

	return c, nil
}

// openAccount returns decrypted account of the configured wallet.
func openAccount() (*wallet.Account, error) {
	if cfg.Wallet.Path == "" {
		return nil, errors.New("wallet is not configured")
	}

	w, err := wallet.NewWalletFromFile(cfg.Wallet.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	h := w.GetChangeAddress()
	if cfg.Wallet.Address != "" {
		h, err = address.StringToUint160(cfg.Wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("decode account address: %w", err)
		}
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s not found in the wallet", address.Uint160ToString(h))
	}

	pass := cfg.Wallet.Password
	if pass == "" {
		pass, err = input.ReadPassword(fmt.Sprintf("Enter password for %s > ", acc.Address))
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
	}

	err = acc.Decrypt(pass, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account: %w", err)
	}

	return acc, nil
}

// readerEnv provides read-only access to the Donation contract.
type readerEnv struct {
	client *rpcclient.Client
	inv    *invoker.Invoker
	reader *donation.ContractReader
}

func newReaderEnv(ctx context.Context) (*readerEnv, error) {
	hash, err := cfg.ContractHash()
	if err != nil {
		return nil, err
	}

	c, err := dial(ctx)
	if err != nil {
		return nil, err
	}

	inv := invoker.New(c, nil)

	return &readerEnv{
		client: c,
		inv:    inv,
		reader: donation.NewReader(inv, hash),
	}, nil
}

func (e *readerEnv) close() {
	e.client.Close()
}

// writerEnv sends Donation contract transactions signed by the configured
// account.
type writerEnv struct {
	client   *rpcclient.Client
	acc      *wallet.Account
	hash     util.Uint160
	act      *actor.Actor
	reader   *donation.ContractReader
	contract *donation.Contract
}

func newWriterEnv(ctx context.Context) (*writerEnv, error) {
	hash, err := cfg.ContractHash()
	if err != nil {
		return nil, err
	}

	c, acc, act, err := newActor(ctx)
	if err != nil {
		return nil, err
	}

	return &writerEnv{
		client:   c,
		acc:      acc,
		hash:     hash,
		act:      act,
		reader:   donation.NewReader(act, hash),
		contract: donation.New(act, hash),
	}, nil
}

func newActor(ctx context.Context) (*rpcclient.Client, *wallet.Account, *actor.Actor, error) {
	acc, err := openAccount()
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := dial(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	act, err := actor.NewSimple(c, acc)
	if err != nil {
		c.Close()
		return nil, nil, nil, fmt.Errorf("init actor: %w", err)
	}

	return c, acc, act, nil
}

// pullContract returns Donation contract wrapper which signs Donate calls
// with the witness allowing the contract to transfer the token on behalf of
// the account.
func (e *writerEnv) pullContract(token util.Uint160) (*donation.Contract, error) {
	act, err := actor.New(e.client, []actor.SignerAccount{{
		Signer:  donation.PullSigner(e.acc.ScriptHash(), e.hash, token),
		Account: e.acc,
	}})
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return donation.New(act, e.hash), nil
}

func (e *writerEnv) close() {
	e.client.Close()
}

// await waits for the sent transaction and checks that it has been executed
// successfully.
func (e *writerEnv) await(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, donation.TranslateError(err)
	}

	logger.Debug("transaction sent, waiting for it to be accepted",
		zap.Stringer("hash", h), zap.Uint32("vub", vub))

	res, err := e.act.Wait(h, vub, nil)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", h.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %w",
			h.StringLE(), donation.TranslateError(errors.New(res.FaultException)))
	}

	logger.Info("transaction accepted", zap.Stringer("hash", h))

	return res, nil
}

// assetDecimals returns decimals of the asset the symbol stands for.
func assetDecimals(inv nep17.Invoker, reader *donation.ContractReader, symbol []byte) (int, error) {
	if donation.IsNative(symbol) {
		return gas.NewReader(inv).Decimals()
	}

	token, err := reader.Resolve(symbol)
	if err != nil {
		return 0, err
	}

	return nep17.NewReader(inv, token).Decimals()
}

// parseSymbol returns registry key of the asset: either hex-encoded 0x-prefixed
// digest or the digest of the human-readable symbol.
func parseSymbol(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") && len(s) == 2+2*donationconst.SymbolLen {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("decode symbol digest: %w", err)
		}
		return b, nil
	}
	if s == "" {
		return nil, errors.New("empty symbol")
	}
	return donation.SymbolOf(s), nil
}

func parseAmount(s string, decimals int) (*big.Int, error) {
	amount, err := fixedn.FromString(s, decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	return amount, nil
}

func parseHash(s string) (util.Uint160, error) {
	return config.ParseHash160(s)
}

package donation

import (
	"fmt"

	"github.com/bitkind/donation-contract/contracts/donation/donationconst"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Token is an entry of the token registry.
type Token struct {
	Symbol []byte
	Hash   util.Uint160
}

// Resolve returns token registered for the symbol. Unlike ResolveToken it
// distinguishes missing tokens: ErrTokenNotRegistered is returned for them.
func (c *ContractReader) Resolve(symbol []byte) (util.Uint160, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "resolveToken", symbol))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("resolve token: %w", err)
	}

	if _, ok := item.(stackitem.Null); ok {
		return util.Uint160{}, ErrTokenNotRegistered
	}

	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, fmt.Errorf("resolve token: %w", err)
	}

	return util.Uint160DecodeBytesBE(b)
}

// Tokens returns the whole token registry, it's fetched with up to maxItems
// iterator items expanded in the VM.
func (c *ContractReader) Tokens(maxItems int) ([]Token, error) {
	items, err := c.ListTokensExpanded(maxItems)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	return TokensFromItems(items)
}

// TokensFromItems converts items returned by listTokens iterator.
func TokensFromItems(items []stackitem.Item) ([]Token, error) {
	res := make([]Token, 0, len(items))

	for i := range items {
		kv, ok := items[i].Value().([]stackitem.Item)
		if !ok || len(kv) != 2 {
			return nil, fmt.Errorf("item #%d: not a key-value pair", i)
		}

		symbol, err := kv[0].TryBytes()
		if err != nil {
			return nil, fmt.Errorf("item #%d: symbol: %w", i, err)
		}
		if len(symbol) != donationconst.SymbolLen {
			return nil, fmt.Errorf("item #%d: invalid symbol length %d", i, len(symbol))
		}

		b, err := kv[1].TryBytes()
		if err != nil {
			return nil, fmt.Errorf("item #%d: hash: %w", i, err)
		}

		h, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return nil, fmt.Errorf("item #%d: hash: %w", i, err)
		}

		res = append(res, Token{Symbol: symbol, Hash: h})
	}

	return res, nil
}

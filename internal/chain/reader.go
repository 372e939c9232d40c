package chain

import (
	"context"
	"errors"
)

// ErrUpstream wraps every failure coming back from a chain read, the
// price feed or the holder-count source. Callers may retry later or fall
// back to the last good snapshot.
var ErrUpstream = errors.New("upstream fetch failed")

// TokenInfo describes the tracked token contract.
type TokenInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"totalSupply"`
	Address     string `json:"address"`
}

// Reader exposes the upstream reads the statistics refresh depends on.
// Every call carries a context; implementations must honor its deadline
// and fail with ErrUpstream rather than hang the caller.
type Reader interface {
	// TokenInfo reads name, symbol, decimals and total supply from the
	// token contract.
	TokenInfo(ctx context.Context) (*TokenInfo, error)

	// BalanceOf reads the token balance of an address, as an integer string.
	BalanceOf(ctx context.Context, address string) (string, error)

	// BurnedTokens reads the balance of the burn address.
	BurnedTokens(ctx context.Context) (string, error)

	// TokenPrice returns the current token price as a decimal string.
	TokenPrice(ctx context.Context) (string, error)

	// HolderCount returns the current number of token holders.
	HolderCount(ctx context.Context) (int, error)
}

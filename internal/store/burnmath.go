package store

import "math/big"

// BurnTotals is the supply side of a statistics snapshot after a burn
// has been applied.
type BurnTotals struct {
	TotalSupply  string
	BurnedTokens string
}

// ApplyBurn moves amount from totalSupply to burnedTokens. Returns
// ErrInvalidInput if either running total is not an integer string, and
// ErrIntegrity if the burn would drive totalSupply below zero.
func ApplyBurn(totalSupply, burnedTokens string, amount *big.Int) (BurnTotals, error) {
	total, ok := new(big.Int).SetString(totalSupply, 10)
	if !ok {
		return BurnTotals{}, ErrInvalidInput
	}
	burned, ok := new(big.Int).SetString(burnedTokens, 10)
	if !ok {
		return BurnTotals{}, ErrInvalidInput
	}
	newTotal := new(big.Int).Sub(total, amount)
	if newTotal.Sign() < 0 {
		return BurnTotals{}, ErrIntegrity
	}
	newBurned := new(big.Int).Add(burned, amount)
	return BurnTotals{TotalSupply: newTotal.String(), BurnedTokens: newBurned.String()}, nil
}

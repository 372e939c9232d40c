package domain

import (
	"math/big"
	"strings"
)

// NormalizeAddress lower-cases a wallet address. Addresses are normalized
// once at write time and again on read-side filters, so two casings of the
// same address can never bypass the store's uniqueness constraint.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// ValidAddress reports whether address is a well-formed 0x-prefixed
// 20-byte hex address (42 characters total).
func ValidAddress(address string) bool {
	return isHexString(address, 42)
}

// ValidTxHash reports whether txHash is a well-formed 0x-prefixed
// 32-byte transaction hash (66 characters total).
func ValidTxHash(txHash string) bool {
	return isHexString(txHash, 66)
}

// ParseAmount parses an amount string as an arbitrary-precision
// non-negative integer. Returns nil if the string is not a base-10
// integer or is negative.
func ParseAmount(amount string) *big.Int {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() < 0 {
		return nil
	}
	return n
}

// isHexString checks for a 0x prefix followed by hex characters,
// with the given total length.
func isHexString(s string, length int) bool {
	if len(s) != length || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, char := range strings.ToLower(s[2:]) {
		if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'f')) {
			return false
		}
	}
	return true
}

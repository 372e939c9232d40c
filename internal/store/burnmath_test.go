package store

import (
	"errors"
	"math/big"
	"testing"
)

func TestApplyBurn(t *testing.T) {
	got, err := ApplyBurn("10000000", "2450000", big.NewInt(1000))
	if err != nil {
		t.Fatalf("ApplyBurn returned error: %v", err)
	}
	if got.TotalSupply != "9999000" || got.BurnedTokens != "2451000" {
		t.Errorf("totals = %s/%s, want 9999000/2451000", got.TotalSupply, got.BurnedTokens)
	}
}

func TestApplyBurnExactSupply(t *testing.T) {
	got, err := ApplyBurn("1000", "0", big.NewInt(1000))
	if err != nil {
		t.Fatalf("ApplyBurn returned error: %v", err)
	}
	if got.TotalSupply != "0" || got.BurnedTokens != "1000" {
		t.Errorf("totals = %s/%s, want 0/1000", got.TotalSupply, got.BurnedTokens)
	}
}

func TestApplyBurnOverdraw(t *testing.T) {
	if _, err := ApplyBurn("1000", "0", big.NewInt(1001)); !errors.Is(err, ErrIntegrity) {
		t.Fatalf("error = %v, want ErrIntegrity", err)
	}
}

func TestApplyBurnBeyondUint64(t *testing.T) {
	// Amounts are arbitrary-precision strings, not machine integers.
	huge := new(big.Int)
	huge.SetString("100000000000000000000000000", 10)
	got, err := ApplyBurn("100000000000000000000000001", "0", huge)
	if err != nil {
		t.Fatalf("ApplyBurn returned error: %v", err)
	}
	if got.TotalSupply != "1" || got.BurnedTokens != "100000000000000000000000000" {
		t.Errorf("totals = %s/%s", got.TotalSupply, got.BurnedTokens)
	}
}

func TestApplyBurnBadTotals(t *testing.T) {
	if _, err := ApplyBurn("abc", "0", big.NewInt(1)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad supply error = %v, want ErrInvalidInput", err)
	}
	if _, err := ApplyBurn("10", "x", big.NewInt(1)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad burned error = %v, want ErrInvalidInput", err)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{10, 20, 10, 20},
		{0, 0, DefaultLimit, 0},
		{-5, -5, DefaultLimit, 0},
	}
	for _, tc := range cases {
		limit, offset := NormalizePage(tc.limit, tc.offset)
		if limit != tc.wantLimit || offset != tc.wantOffset {
			t.Errorf("NormalizePage(%d, %d) = %d, %d, want %d, %d", tc.limit, tc.offset, limit, offset, tc.wantLimit, tc.wantOffset)
		}
	}
}

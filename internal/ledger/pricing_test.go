package ledger

import (
	"testing"

	"burn_tracker/internal/domain"
)

func TestAuditPricing(t *testing.T) {
	stats := &domain.TokenStats{Price: "$0.0032"}
	pricing := AuditPricing(stats)

	want := map[string]int{
		"basic":         156250,
		"standard":      312500,
		"premium":       781250,
		"comprehensive": 1562500,
	}
	if len(pricing) != len(want) {
		t.Fatalf("tier count = %d, want %d", len(pricing), len(want))
	}
	for tier, bob := range want {
		got, ok := pricing[tier]
		if !ok {
			t.Errorf("missing tier %q", tier)
			continue
		}
		if got.BobPrice != bob {
			t.Errorf("%s BobPrice = %d, want %d", tier, got.BobPrice, bob)
		}
		if got.ExchangeRate != 0.0032 {
			t.Errorf("%s ExchangeRate = %v, want 0.0032", tier, got.ExchangeRate)
		}
	}
	if pricing["basic"].UsdtPrice != 500 || pricing["comprehensive"].UsdtPrice != 5000 {
		t.Errorf("usdt prices = %d/%d, want 500/5000", pricing["basic"].UsdtPrice, pricing["comprehensive"].UsdtPrice)
	}
}

func TestAuditPricingFallbackRate(t *testing.T) {
	// A zero or unparsable price falls back to 1 USDT = 100 tokens.
	for _, price := range []string{"$0", "free", ""} {
		pricing := AuditPricing(&domain.TokenStats{Price: price})
		if got := pricing["standard"].BobPrice; got != 100000 {
			t.Errorf("price %q: standard BobPrice = %d, want 100000", price, got)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$0.0032", 0.0032},
		{"0.5", 0.5},
		{" $1.25 ", 1.25},
		{"not a price", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

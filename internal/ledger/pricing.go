package ledger

import (
	"math"
	"strconv"
	"strings"

	"burn_tracker/internal/domain"
)

// Base audit prices in USDT per audit tier.
var auditBasePrices = map[string]int{
	"basic":         500,
	"standard":      1000,
	"premium":       2500,
	"comprehensive": 5000,
}

// TierPrice is the cost of one audit tier in USDT and in tokens at the
// snapshot's exchange rate.
type TierPrice struct {
	UsdtPrice    int     `json:"usdtPrice"`
	BobPrice     int     `json:"bobPrice"`
	ExchangeRate float64 `json:"exchangeRate"`
}

// AuditPricing derives per-tier audit prices from the snapshot's token
// price. A zero or unparsable price falls back to a fixed 1 USDT = 100
// token rate instead of dividing by zero.
func AuditPricing(stats *domain.TokenStats) map[string]TierPrice {
	rate := ParsePrice(stats.Price)

	pricing := make(map[string]TierPrice, len(auditBasePrices))
	for tier, usdt := range auditBasePrices {
		bob := usdt * 100
		if rate > 0 {
			bob = int(math.Ceil(float64(usdt) / rate))
		}
		pricing[tier] = TierPrice{UsdtPrice: usdt, BobPrice: bob, ExchangeRate: rate}
	}
	return pricing
}

// ParsePrice reads a "$0.0032"-style decimal string. Returns 0 when the
// string does not parse.
func ParsePrice(price string) float64 {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(price), "$"), 64)
	if err != nil {
		return 0
	}
	return v
}

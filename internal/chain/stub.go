package chain

import (
	"context"
	"sync"
)

// Stub is a canned-value Reader for tests and offline runs. The Fail flag
// makes every call return ErrUpstream.
type Stub struct {
	Info    TokenInfo
	Balance string
	Burned  string
	Price   string
	Holders int
	Fail    bool

	mu    sync.Mutex
	Calls int // number of reads served, across all methods
}

// NewStub returns a stub preloaded with plausible token values.
func NewStub() *Stub {
	return &Stub{
		Info: TokenInfo{
			Name:        "Bob Token",
			Symbol:      "BOB",
			Decimals:    18,
			TotalSupply: "10000000",
			Address:     "0xfa4c07636b53d868e514777b9d4005f1e9c6c40b",
		},
		Balance: "5000",
		Burned:  "2450000",
		Price:   "$0.0032",
		Holders: 42839,
	}
}

func (s *Stub) TokenInfo(_ context.Context) (*TokenInfo, error) {
	s.count()
	if s.Fail {
		return nil, ErrUpstream
	}
	info := s.Info
	return &info, nil
}

func (s *Stub) BalanceOf(_ context.Context, _ string) (string, error) {
	s.count()
	if s.Fail {
		return "", ErrUpstream
	}
	return s.Balance, nil
}

func (s *Stub) BurnedTokens(_ context.Context) (string, error) {
	s.count()
	if s.Fail {
		return "", ErrUpstream
	}
	return s.Burned, nil
}

func (s *Stub) TokenPrice(_ context.Context) (string, error) {
	s.count()
	if s.Fail {
		return "", ErrUpstream
	}
	return s.Price, nil
}

func (s *Stub) HolderCount(_ context.Context) (int, error) {
	s.count()
	if s.Fail {
		return 0, ErrUpstream
	}
	return s.Holders, nil
}

// count tallies one served read.
func (s *Stub) count() {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
}

// CallCount returns the number of reads served so far.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}

// Verify interface compliance at compile time.
var _ Reader = (*Stub)(nil)

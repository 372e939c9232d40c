package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"burn_tracker/internal/chain"
	"burn_tracker/internal/domain"
	"burn_tracker/internal/store"

	"github.com/sirupsen/logrus"
)

// DefaultFreshness is how old the latest snapshot may be before a refresh
// from upstream sources is triggered.
const DefaultFreshness = 5 * time.Minute

// DefaultRefreshTimeout bounds one round of upstream fetches.
const DefaultRefreshTimeout = 15 * time.Second

// StatsService serves the current token statistics snapshot, refreshing
// it from the chain reader when it has gone stale. A staleness check on a
// fresh snapshot never mutates history.
type StatsService struct {
	store   store.Store
	reader  chain.Reader
	window  time.Duration
	timeout time.Duration
}

// NewStatsService builds a stats service. A non-positive window or
// timeout falls back to the default.
func NewStatsService(s store.Store, r chain.Reader, window, timeout time.Duration) *StatsService {
	if window <= 0 {
		window = DefaultFreshness
	}
	if timeout <= 0 {
		timeout = DefaultRefreshTimeout
	}
	return &StatsService{store: s, reader: r, window: window, timeout: timeout}
}

// CurrentStats returns the latest snapshot, refreshing first when it is
// missing or older than the freshness window. When a refresh fails and a
// last good snapshot exists, that snapshot is served instead.
func (s *StatsService) CurrentStats(ctx context.Context) (*domain.TokenStats, error) {
	latest, err := s.store.LatestTokenStats(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if latest != nil && time.Since(latest.LastUpdated) <= s.window {
		return latest, nil
	}

	refreshed, err := s.refresh(ctx)
	if err != nil {
		if latest != nil {
			logrus.WithField("error", err.Error()).Warn("Stats refresh failed, serving last good snapshot")
			return latest, nil
		}
		return nil, err
	}
	return refreshed, nil
}

// refresh fetches all four upstream values concurrently under a bounded
// timeout and appends the resulting snapshot.
func (s *StatsService) refresh(ctx context.Context) (*domain.TokenStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		totalSupply string
		burned      string
		price       string
		holders     int
	)
	errc := make(chan error, 4)
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		info, err := s.reader.TokenInfo(ctx)
		if err == nil {
			totalSupply = info.TotalSupply
		}
		errc <- err
	}()
	go func() {
		defer wg.Done()
		var err error
		burned, err = s.reader.BurnedTokens(ctx)
		errc <- err
	}()
	go func() {
		defer wg.Done()
		var err error
		price, err = s.reader.TokenPrice(ctx)
		errc <- err
	}()
	go func() {
		defer wg.Done()
		var err error
		holders, err = s.reader.HolderCount(ctx)
		errc <- err
	}()
	wg.Wait()
	close(errc)
	for err := range errc {
		if err != nil {
			return nil, err
		}
	}

	st, err := s.store.AppendTokenStats(ctx, totalSupply, burned, price, holders)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"total_supply": st.TotalSupply,
		"burned":       st.BurnedTokens,
		"holders":      st.Holders,
	}).Info("Token stats refreshed")
	return st, nil
}

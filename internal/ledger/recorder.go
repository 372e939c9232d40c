package ledger

import (
	"context"
	"errors"
	"fmt"

	"burn_tracker/internal/domain"
	"burn_tracker/internal/store"

	"github.com/sirupsen/logrus"
)

// Recorder is the write path for client-reported burns. It validates the
// report, enforces idempotency by tx hash and commits through the store,
// which persists the burn, its companion transaction and the recomputed
// snapshot as one unit. Safe to retry under at-least-once delivery: a
// replay fails with ErrDuplicateKey and mutates nothing.
type Recorder struct {
	store store.Store
}

// NewRecorder builds a recorder over a ledger store.
func NewRecorder(s store.Store) *Recorder {
	return &Recorder{store: s}
}

// RecordBurn validates and commits one reported burn, returning the
// created record. Malformed input fails with ErrInvalidInput before any
// store mutation; a known tx hash fails with ErrDuplicateKey.
func (r *Recorder) RecordBurn(ctx context.Context, walletAddress, amount, txHash string) (*domain.Burn, error) {
	if !domain.ValidAddress(walletAddress) {
		return nil, fmt.Errorf("%w: walletAddress must be a 42-character hex address", store.ErrInvalidInput)
	}
	amt := domain.ParseAmount(amount)
	if amt == nil || amt.Sign() == 0 {
		return nil, fmt.Errorf("%w: amount must be a positive integer", store.ErrInvalidInput)
	}
	if !domain.ValidTxHash(txHash) {
		return nil, fmt.Errorf("%w: txHash must be a 66-character transaction hash", store.ErrInvalidInput)
	}

	if _, err := r.store.BurnByTxHash(ctx, txHash); err == nil {
		return nil, store.ErrDuplicateKey
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	// Wallet records are created lazily on first reference. A concurrent
	// first reference may win the insert; that is still success here.
	if _, err := r.store.WalletByAddress(ctx, walletAddress); errors.Is(err, store.ErrNotFound) {
		if _, err := r.store.CreateWalletAddress(ctx, walletAddress, nil); err != nil && !errors.Is(err, store.ErrDuplicateKey) {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	burn, err := r.store.CreateBurn(ctx, walletAddress, amount, txHash)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"wallet":  domain.NormalizeAddress(walletAddress),
			"tx_hash": txHash,
			"amount":  amount,
			"error":   err.Error(),
		}).Error("Burn commit failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"wallet":  burn.WalletAddress,
		"tx_hash": burn.TxHash,
		"amount":  burn.Amount,
	}).Info("Burn recorded")
	return burn, nil
}

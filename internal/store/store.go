package store

import (
	"context"

	"burn_tracker/internal/domain"
)

// Default page size for list queries when the caller does not specify one.
const DefaultLimit = 10

// Store is the ledger bookkeeping interface: wallets, burns, transactions
// and the append-only token statistics history. Implementations must
// serialize the read-modify-append sequence inside CreateBurn (a mutex for
// the in-memory store, a database transaction for the SQL store), because
// two concurrent burns computing the new supply from a stale snapshot is
// a lost-update race.
//
// All list queries return records newest-first by timestamp, ties broken
// by id descending, sliced [offset, offset+limit). A limit <= 0 falls back
// to DefaultLimit, a negative offset to 0.
type Store interface {
	// Users
	UserByID(ctx context.Context, id uint) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreateUser inserts a user. Returns ErrDuplicateKey if the username exists.
	CreateUser(ctx context.Context, username, passwordHash, role string) (*domain.User, error)

	// Wallet addresses
	WalletByAddress(ctx context.Context, address string) (*domain.WalletAddress, error)
	// CreateWalletAddress inserts an address record. Returns ErrDuplicateKey
	// if the (lowercased) address is already present.
	CreateWalletAddress(ctx context.Context, address string, ownerUserID *uint) (*domain.WalletAddress, error)

	// Burns
	Burns(ctx context.Context, limit, offset int) ([]domain.Burn, error)
	BurnsByWallet(ctx context.Context, address string, limit, offset int) ([]domain.Burn, error)
	BurnByTxHash(ctx context.Context, txHash string) (*domain.Burn, error)
	// CreateBurn records a burn and, in the same unit of work, its
	// companion confirmed transaction and a new statistics snapshot with
	// the burned amount moved from totalSupply to burnedTokens. Returns
	// ErrDuplicateKey if the tx hash is already recorded as a burn or a
	// transaction, ErrIntegrity (and persists nothing) if the burn would
	// drive totalSupply negative.
	CreateBurn(ctx context.Context, walletAddress, amount, txHash string) (*domain.Burn, error)

	// Transactions
	Transactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
	TransactionsByWallet(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error)
	TransactionByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error)
	// CreateTransaction inserts a transaction record. Returns
	// ErrDuplicateKey if the tx hash already exists.
	CreateTransaction(ctx context.Context, walletAddress, amount, txType, txHash, status string) (*domain.Transaction, error)
	TransactionsCount(ctx context.Context) (int64, error)

	// Token statistics history
	// LatestTokenStats returns the most recently appended snapshot, or
	// ErrNotFound if the history is empty.
	LatestTokenStats(ctx context.Context) (*domain.TokenStats, error)
	// AppendTokenStats appends a snapshot to the history. Prior snapshots
	// are never mutated.
	AppendTokenStats(ctx context.Context, totalSupply, burnedTokens, price string, holders int) (*domain.TokenStats, error)
}

// NormalizePage applies the list-query defaults shared by all
// implementations.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

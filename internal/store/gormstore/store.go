package gormstore

import (
	"context"
	"errors"
	"time"

	"burn_tracker/internal/domain"
	"burn_tracker/internal/store"

	"gorm.io/gorm"
)

// Store is a SQL-backed implementation of store.Store on GORM. Ordering
// and pagination are pushed into the query engine, and the burn commit
// runs inside a single database transaction.
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UserByID retrieves a user by primary key.
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// UserByUsername retrieves a user by username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// CreateUser inserts a user. Returns ErrDuplicateKey if the username exists.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, role string) (*domain.User, error) {
	if username == "" || passwordHash == "" {
		return nil, store.ErrInvalidInput
	}
	u := domain.User{Username: username, Password: passwordHash, Role: role}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, mapCreateErr(err)
	}
	return &u, nil
}

// WalletByAddress retrieves a wallet address record by lowercased address.
func (s *Store) WalletByAddress(ctx context.Context, address string) (*domain.WalletAddress, error) {
	var w domain.WalletAddress
	if err := s.db.WithContext(ctx).Where("address = ?", domain.NormalizeAddress(address)).First(&w).Error; err != nil {
		return nil, mapErr(err)
	}
	return &w, nil
}

// CreateWalletAddress inserts a wallet address record, lowercased.
func (s *Store) CreateWalletAddress(ctx context.Context, address string, ownerUserID *uint) (*domain.WalletAddress, error) {
	if !domain.ValidAddress(address) {
		return nil, store.ErrInvalidInput
	}
	w := domain.WalletAddress{Address: domain.NormalizeAddress(address), OwnerUserID: ownerUserID}
	if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
		return nil, mapCreateErr(err)
	}
	return &w, nil
}

// Burns returns burns newest-first, paginated by the query engine.
func (s *Store) Burns(ctx context.Context, limit, offset int) ([]domain.Burn, error) {
	limit, offset = store.NormalizePage(limit, offset)
	burns := []domain.Burn{}
	err := s.db.WithContext(ctx).
		Order("timestamp desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&burns).Error
	return burns, err
}

// BurnsByWallet returns burns for one wallet newest-first.
func (s *Store) BurnsByWallet(ctx context.Context, address string, limit, offset int) ([]domain.Burn, error) {
	limit, offset = store.NormalizePage(limit, offset)
	burns := []domain.Burn{}
	err := s.db.WithContext(ctx).
		Where("wallet_address = ?", domain.NormalizeAddress(address)).
		Order("timestamp desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&burns).Error
	return burns, err
}

// BurnByTxHash retrieves a burn by tx hash.
func (s *Store) BurnByTxHash(ctx context.Context, txHash string) (*domain.Burn, error) {
	var b domain.Burn
	if err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&b).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

// CreateBurn records the burn, its companion confirmed transaction and
// the recomputed snapshot inside one database transaction. A rollback on
// any step leaves no partial state visible to readers.
func (s *Store) CreateBurn(ctx context.Context, walletAddress, amount, txHash string) (*domain.Burn, error) {
	amt := domain.ParseAmount(amount)
	if amt == nil || !domain.ValidAddress(walletAddress) || !domain.ValidTxHash(txHash) {
		return nil, store.ErrInvalidInput
	}
	walletAddress = domain.NormalizeAddress(walletAddress)

	var b domain.Burn
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Burn
		if err := tx.Where("tx_hash = ?", txHash).First(&existing).Error; err == nil {
			return store.ErrDuplicateKey
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var existingTx domain.Transaction
		if err := tx.Where("tx_hash = ?", txHash).First(&existingTx).Error; err == nil {
			return store.ErrDuplicateKey
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		b = domain.Burn{WalletAddress: walletAddress, Amount: amt.String(), TxHash: txHash, Timestamp: time.Now()}
		if err := tx.Create(&b).Error; err != nil {
			return mapCreateErr(err)
		}
		t := domain.Transaction{
			WalletAddress: walletAddress,
			Amount:        amt.String(),
			Type:          domain.TxTypeBurn,
			TxHash:        txHash,
			Timestamp:     b.Timestamp,
			Status:        domain.TxStatusConfirmed,
		}
		if err := tx.Create(&t).Error; err != nil {
			return mapCreateErr(err)
		}

		var latest domain.TokenStats
		if err := tx.Order("id desc").First(&latest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unseeded history: record the burn without a snapshot.
				return nil
			}
			return err
		}
		totals, err := store.ApplyBurn(latest.TotalSupply, latest.BurnedTokens, amt)
		if err != nil {
			return err
		}
		next := domain.TokenStats{
			TotalSupply:  totals.TotalSupply,
			BurnedTokens: totals.BurnedTokens,
			Price:        latest.Price,
			Holders:      latest.Holders,
			LastUpdated:  b.Timestamp,
		}
		return tx.Create(&next).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Transactions returns transactions newest-first.
func (s *Store) Transactions(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	limit, offset = store.NormalizePage(limit, offset)
	txs := []domain.Transaction{}
	err := s.db.WithContext(ctx).
		Order("timestamp desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// TransactionsByWallet returns transactions for one wallet newest-first.
func (s *Store) TransactionsByWallet(ctx context.Context, address string, limit, offset int) ([]domain.Transaction, error) {
	limit, offset = store.NormalizePage(limit, offset)
	txs := []domain.Transaction{}
	err := s.db.WithContext(ctx).
		Where("wallet_address = ?", domain.NormalizeAddress(address)).
		Order("timestamp desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// TransactionByTxHash retrieves a transaction by tx hash.
func (s *Store) TransactionByTxHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&t).Error; err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

// CreateTransaction inserts a transaction record.
func (s *Store) CreateTransaction(ctx context.Context, walletAddress, amount, txType, txHash, status string) (*domain.Transaction, error) {
	amt := domain.ParseAmount(amount)
	if amt == nil || !domain.ValidAddress(walletAddress) || !domain.ValidTxHash(txHash) ||
		!domain.ValidTxType(txType) || !domain.ValidTxStatus(status) {
		return nil, store.ErrInvalidInput
	}
	t := domain.Transaction{
		WalletAddress: domain.NormalizeAddress(walletAddress),
		Amount:        amt.String(),
		Type:          txType,
		TxHash:        txHash,
		Timestamp:     time.Now(),
		Status:        status,
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, mapCreateErr(err)
	}
	return &t, nil
}

// TransactionsCount returns the number of transaction records.
func (s *Store) TransactionsCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Count(&total).Error
	return total, err
}

// LatestTokenStats returns the most recently appended snapshot.
func (s *Store) LatestTokenStats(ctx context.Context) (*domain.TokenStats, error) {
	var st domain.TokenStats
	if err := s.db.WithContext(ctx).Order("id desc").First(&st).Error; err != nil {
		return nil, mapErr(err)
	}
	return &st, nil
}

// AppendTokenStats appends a snapshot to the history.
func (s *Store) AppendTokenStats(ctx context.Context, totalSupply, burnedTokens, price string, holders int) (*domain.TokenStats, error) {
	if domain.ParseAmount(totalSupply) == nil || domain.ParseAmount(burnedTokens) == nil || holders < 0 {
		return nil, store.ErrInvalidInput
	}
	st := domain.TokenStats{
		TotalSupply:  totalSupply,
		BurnedTokens: burnedTokens,
		Price:        price,
		Holders:      holders,
		LastUpdated:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// mapErr translates GORM lookup errors to store sentinels.
func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// mapCreateErr translates GORM insert errors to store sentinels.
func mapCreateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicateKey
	}
	return err
}

// Verify interface compliance at compile time.
var _ store.Store = (*Store)(nil)

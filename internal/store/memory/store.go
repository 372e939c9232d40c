package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"burn_tracker/internal/domain"
	"burn_tracker/internal/store"
)

// Store is an in-memory implementation of store.Store. A single RWMutex
// guards every map; CreateBurn holds the write lock across the burn
// insert, the companion transaction insert and the snapshot
// read-modify-append, so concurrent burns can never compute the new
// supply from a stale snapshot.
type Store struct {
	mu          sync.RWMutex
	users       map[uint]*domain.User
	usersByName map[string]uint
	wallets     map[string]*domain.WalletAddress // keyed by lowercase address
	burns       map[string]*domain.Burn          // keyed by tx hash
	txs         map[string]*domain.Transaction   // keyed by tx hash
	stats       []*domain.TokenStats             // append-only history

	nextUserID   uint
	nextWalletID uint
	nextBurnID   uint
	nextTxID     uint
	nextStatsID  uint
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:        make(map[uint]*domain.User),
		usersByName:  make(map[string]uint),
		wallets:      make(map[string]*domain.WalletAddress),
		burns:        make(map[string]*domain.Burn),
		txs:          make(map[string]*domain.Transaction),
		nextUserID:   1,
		nextWalletID: 1,
		nextBurnID:   1,
		nextTxID:     1,
		nextStatsID:  1,
	}
}

// UserByID retrieves a user by primary key. Returns ErrNotFound if absent.
func (s *Store) UserByID(_ context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	userCopy := *u
	return &userCopy, nil
}

// UserByUsername retrieves a user by username. Returns ErrNotFound if absent.
func (s *Store) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.usersByName[username]
	if !exists {
		return nil, store.ErrNotFound
	}
	userCopy := *s.users[id]
	return &userCopy, nil
}

// CreateUser inserts a user. Returns ErrDuplicateKey if the username exists.
func (s *Store) CreateUser(_ context.Context, username, passwordHash, role string) (*domain.User, error) {
	if username == "" || passwordHash == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByName[username]; exists {
		return nil, store.ErrDuplicateKey
	}
	u := &domain.User{ID: s.nextUserID, Username: username, Password: passwordHash, Role: role}
	s.nextUserID++
	s.users[u.ID] = u
	s.usersByName[username] = u.ID

	userCopy := *u
	return &userCopy, nil
}

// WalletByAddress retrieves a wallet address record. The lookup key is the
// lowercased address. Returns ErrNotFound if absent.
func (s *Store) WalletByAddress(_ context.Context, address string) (*domain.WalletAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.wallets[domain.NormalizeAddress(address)]
	if !exists {
		return nil, store.ErrNotFound
	}
	walletCopy := *w
	return &walletCopy, nil
}

// CreateWalletAddress inserts a wallet address record, lowercasing the
// address first. Returns ErrDuplicateKey if the address is present.
func (s *Store) CreateWalletAddress(_ context.Context, address string, ownerUserID *uint) (*domain.WalletAddress, error) {
	if !domain.ValidAddress(address) {
		return nil, store.ErrInvalidInput
	}
	address = domain.NormalizeAddress(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[address]; exists {
		return nil, store.ErrDuplicateKey
	}
	w := &domain.WalletAddress{ID: s.nextWalletID, Address: address, OwnerUserID: ownerUserID}
	s.nextWalletID++
	s.wallets[address] = w

	walletCopy := *w
	return &walletCopy, nil
}

// Burns returns burns newest-first, sliced [offset, offset+limit).
func (s *Store) Burns(_ context.Context, limit, offset int) ([]domain.Burn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pageBurns(s.burnSlice(""), limit, offset), nil
}

// BurnsByWallet returns burns for one wallet newest-first. The filter is
// applied on the lowercased address.
func (s *Store) BurnsByWallet(_ context.Context, address string, limit, offset int) ([]domain.Burn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pageBurns(s.burnSlice(domain.NormalizeAddress(address)), limit, offset), nil
}

// BurnByTxHash retrieves a burn by tx hash. Returns ErrNotFound if absent.
func (s *Store) BurnByTxHash(_ context.Context, txHash string) (*domain.Burn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.burns[txHash]
	if !exists {
		return nil, store.ErrNotFound
	}
	burnCopy := *b
	return &burnCopy, nil
}

// CreateBurn records a burn, its companion confirmed transaction and the
// recomputed statistics snapshot as one unit under the write lock.
// Nothing is persisted on a duplicate tx hash or an integrity failure.
func (s *Store) CreateBurn(_ context.Context, walletAddress, amount, txHash string) (*domain.Burn, error) {
	amt := domain.ParseAmount(amount)
	if amt == nil || !domain.ValidAddress(walletAddress) || !domain.ValidTxHash(txHash) {
		return nil, store.ErrInvalidInput
	}
	walletAddress = domain.NormalizeAddress(walletAddress)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.burns[txHash]; exists {
		return nil, store.ErrDuplicateKey
	}
	if _, exists := s.txs[txHash]; exists {
		return nil, store.ErrDuplicateKey
	}

	// Compute the next snapshot before touching any map, so an integrity
	// failure leaves no partial state behind.
	var next *domain.TokenStats
	if len(s.stats) > 0 {
		latest := s.stats[len(s.stats)-1]
		totals, err := store.ApplyBurn(latest.TotalSupply, latest.BurnedTokens, amt)
		if err != nil {
			return nil, err
		}
		next = &domain.TokenStats{
			TotalSupply:  totals.TotalSupply,
			BurnedTokens: totals.BurnedTokens,
			Price:        latest.Price,
			Holders:      latest.Holders,
		}
	}

	now := time.Now()
	b := &domain.Burn{ID: s.nextBurnID, WalletAddress: walletAddress, Amount: amt.String(), TxHash: txHash, Timestamp: now}
	s.nextBurnID++
	s.burns[txHash] = b

	t := &domain.Transaction{
		ID:            s.nextTxID,
		WalletAddress: walletAddress,
		Amount:        amt.String(),
		Type:          domain.TxTypeBurn,
		TxHash:        txHash,
		Timestamp:     now,
		Status:        domain.TxStatusConfirmed,
	}
	s.nextTxID++
	s.txs[txHash] = t

	if next != nil {
		next.ID = s.nextStatsID
		next.LastUpdated = now
		s.nextStatsID++
		s.stats = append(s.stats, next)
	}

	burnCopy := *b
	return &burnCopy, nil
}

// Transactions returns transactions newest-first, sliced [offset, offset+limit).
func (s *Store) Transactions(_ context.Context, limit, offset int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pageTxs(s.txSlice(""), limit, offset), nil
}

// TransactionsByWallet returns transactions for one wallet newest-first.
func (s *Store) TransactionsByWallet(_ context.Context, address string, limit, offset int) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pageTxs(s.txSlice(domain.NormalizeAddress(address)), limit, offset), nil
}

// TransactionByTxHash retrieves a transaction by tx hash. Returns
// ErrNotFound if absent.
func (s *Store) TransactionByTxHash(_ context.Context, txHash string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.txs[txHash]
	if !exists {
		return nil, store.ErrNotFound
	}
	txCopy := *t
	return &txCopy, nil
}

// CreateTransaction inserts a transaction record. Returns ErrDuplicateKey
// if the tx hash already exists.
func (s *Store) CreateTransaction(_ context.Context, walletAddress, amount, txType, txHash, status string) (*domain.Transaction, error) {
	amt := domain.ParseAmount(amount)
	if amt == nil || !domain.ValidAddress(walletAddress) || !domain.ValidTxHash(txHash) ||
		!domain.ValidTxType(txType) || !domain.ValidTxStatus(status) {
		return nil, store.ErrInvalidInput
	}
	walletAddress = domain.NormalizeAddress(walletAddress)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.txs[txHash]; exists {
		return nil, store.ErrDuplicateKey
	}
	t := &domain.Transaction{
		ID:            s.nextTxID,
		WalletAddress: walletAddress,
		Amount:        amt.String(),
		Type:          txType,
		TxHash:        txHash,
		Timestamp:     time.Now(),
		Status:        status,
	}
	s.nextTxID++
	s.txs[txHash] = t

	txCopy := *t
	return &txCopy, nil
}

// TransactionsCount returns the number of transaction records.
func (s *Store) TransactionsCount(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.txs)), nil
}

// LatestTokenStats returns the most recently appended snapshot, or
// ErrNotFound if the history is empty.
func (s *Store) LatestTokenStats(_ context.Context) (*domain.TokenStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.stats) == 0 {
		return nil, store.ErrNotFound
	}
	statsCopy := *s.stats[len(s.stats)-1]
	return &statsCopy, nil
}

// AppendTokenStats appends a snapshot to the history.
func (s *Store) AppendTokenStats(_ context.Context, totalSupply, burnedTokens, price string, holders int) (*domain.TokenStats, error) {
	if domain.ParseAmount(totalSupply) == nil || domain.ParseAmount(burnedTokens) == nil || holders < 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := &domain.TokenStats{
		ID:           s.nextStatsID,
		TotalSupply:  totalSupply,
		BurnedTokens: burnedTokens,
		Price:        price,
		Holders:      holders,
		LastUpdated:  time.Now(),
	}
	s.nextStatsID++
	s.stats = append(s.stats, st)

	statsCopy := *st
	return &statsCopy, nil
}

// burnSlice copies burns out of the map, optionally filtered by wallet,
// sorted newest-first with id as the tie-breaker. Callers must hold mu.
func (s *Store) burnSlice(wallet string) []domain.Burn {
	result := make([]domain.Burn, 0, len(s.burns))
	for _, b := range s.burns {
		if wallet != "" && b.WalletAddress != wallet {
			continue
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// txSlice is burnSlice for transactions. Callers must hold mu.
func (s *Store) txSlice(wallet string) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		if wallet != "" && t.WalletAddress != wallet {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func pageBurns(all []domain.Burn, limit, offset int) []domain.Burn {
	limit, offset = store.NormalizePage(limit, offset)
	if offset >= len(all) {
		return []domain.Burn{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func pageTxs(all []domain.Transaction, limit, offset int) []domain.Transaction {
	limit, offset = store.NormalizePage(limit, offset)
	if offset >= len(all) {
		return []domain.Transaction{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// Verify interface compliance at compile time.
var _ store.Store = (*Store)(nil)

package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc                  func(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Transaction, error)
	UpdateFunc                  func(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error
	DeleteFunc                  func(ctx context.Context, tx usecase.Tx, id string) error
	ListByHouseholdFunc         func(ctx context.Context, householdID string) ([]domain.Transaction, error)
	ListDepositsByHouseholdFunc func(ctx context.Context, householdID string) ([]domain.Transaction, error)
	SumDepositsByAccountFunc    func(ctx context.Context, accountID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Tx, t *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[t.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error) {
	if m.ListByHouseholdFunc != nil {
		return m.ListByHouseholdFunc(ctx, householdID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txs []domain.Transaction
	for _, t := range m.transactions {
		if t.HouseholdID == householdID {
			txs = append(txs, *t)
		}
	}
	return txs, nil
}

func (m *MockTransactionRepository) ListDepositsByHousehold(ctx context.Context, householdID string) ([]domain.Transaction, error) {
	if m.ListDepositsByHouseholdFunc != nil {
		return m.ListDepositsByHouseholdFunc(ctx, householdID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txs []domain.Transaction
	for _, t := range m.transactions {
		if t.HouseholdID == householdID && t.Type == domain.TypeSavingDeposit {
			txs = append(txs, *t)
		}
	}
	return txs, nil
}

func (m *MockTransactionRepository) SumDepositsByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumDepositsByAccountFunc != nil {
		return m.SumDepositsByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.Type == domain.TypeSavingDeposit && t.SavingsAccountID == accountID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

// MockSavingsAccountRepository is a mock implementation of SavingsAccountRepository.
type MockSavingsAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.SavingsAccount

	CreateFunc          func(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.SavingsAccount, error)
	UpdateFunc          func(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error
	UpdateValueFunc     func(ctx context.Context, tx usecase.Tx, id string, value decimal.Decimal) error
	ListByHouseholdFunc func(ctx context.Context, householdID string) ([]domain.SavingsAccount, error)
}

func NewMockSavingsAccountRepository() *MockSavingsAccountRepository {
	return &MockSavingsAccountRepository{
		accounts: make(map[string]*domain.SavingsAccount),
	}
}

func (m *MockSavingsAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockSavingsAccountRepository) GetByID(ctx context.Context, id string) (*domain.SavingsAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrSavingsAccountNotFound
}

func (m *MockSavingsAccountRepository) Update(ctx context.Context, tx usecase.Tx, account *domain.SavingsAccount) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrSavingsAccountNotFound
	}
	cp := *account
	m.accounts[account.ID] = &cp
	return nil
}

func (m *MockSavingsAccountRepository) UpdateValue(ctx context.Context, tx usecase.Tx, id string, value decimal.Decimal) error {
	if m.UpdateValueFunc != nil {
		return m.UpdateValueFunc(ctx, tx, id, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrSavingsAccountNotFound
	}
	acc.CurrentValue = decimal.NewNullDecimal(value)
	return nil
}

func (m *MockSavingsAccountRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.SavingsAccount, error) {
	if m.ListByHouseholdFunc != nil {
		return m.ListByHouseholdFunc(ctx, householdID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []domain.SavingsAccount
	for _, acc := range m.accounts {
		if acc.HouseholdID == householdID {
			accounts = append(accounts, *acc)
		}
	}
	return accounts, nil
}

// MockSnapshotRepository is a mock implementation of SnapshotRepository.
type MockSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []domain.SavingsSnapshot

	CreateFunc        func(ctx context.Context, tx usecase.Tx, snapshot *domain.SavingsSnapshot) error
	ListByAccountFunc func(ctx context.Context, accountID string) ([]domain.SavingsSnapshot, error)
}

func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

func (m *MockSnapshotRepository) Create(ctx context.Context, tx usecase.Tx, snapshot *domain.SavingsSnapshot) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, snapshot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots = append(m.snapshots, *snapshot)
	return nil
}

func (m *MockSnapshotRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.SavingsSnapshot, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var snaps []domain.SavingsSnapshot
	for _, s := range m.snapshots {
		if s.AccountID == accountID {
			snaps = append(snaps, s)
		}
	}
	return snaps, nil
}

// All returns every stored snapshot in append order.
func (m *MockSnapshotRepository) All() []domain.SavingsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.SavingsSnapshot(nil), m.snapshots...)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc          func(ctx context.Context, category *domain.Category) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Category, error)
	DeleteFunc          func(ctx context.Context, id string) error
	ListByHouseholdFunc func(ctx context.Context, householdID string) ([]domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MockCategoryRepository) ListByHousehold(ctx context.Context, householdID string) ([]domain.Category, error) {
	if m.ListByHouseholdFunc != nil {
		return m.ListByHouseholdFunc(ctx, householdID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []domain.Category
	for _, c := range m.categories {
		if c.HouseholdID == householdID {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			unpublished = append(unpublished, e)
		}
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns every recorded event in append order.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTx is a no-op database transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	t.RolledBack = true
	return nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	mu  sync.Mutex
	txs []*MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.txs = append(m.txs, tx)
	return tx, nil
}

// Txs returns every transaction handed out.
func (m *MockTxManager) Txs() []*MockTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTx(nil), m.txs...)
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10)) + "-" + time.Now().Format("150405.000000000")
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, keys ...string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		entries: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.entries[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Contains reports whether the cache holds a value for key.
func (m *MockCache) Contains(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// MockRetrier runs the operation once with no retries.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

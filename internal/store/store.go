// Package store holds the authoritative in-memory sets of customers and
// transactions and provides the invariant-preserving mutations over them.
// Every mutation writes the touched set through the persistence collaborator
// before returning.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bricknote/ledger/internal/errs"
	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/persist"
)

// DefaultItem is filled in when a purchase carries no item description.
const DefaultItem = "Bricks"

// Store owns the customer and transaction sets. Slices keep insertion order,
// which the listing and report ordering rules depend on. Guarded by an
// RWMutex: the HTTP surface serves requests concurrently.
type Store struct {
	mu           sync.RWMutex
	kv           persist.KV
	customers    []ledger.Customer
	transactions []ledger.Transaction
}

// New constructs an empty store backed by an in-process KV.
func New() *Store {
	s, _ := Open(context.Background(), persist.NewMemory())
	return s
}

// Open loads both record sets from the collaborator. Absent or corrupt data
// loads as an empty set, not an error.
func Open(ctx context.Context, kv persist.KV) (*Store, error) {
	s := &Store{kv: kv}
	var err error
	if s.customers, err = loadSet[ledger.Customer](ctx, kv, persist.KeyCustomers); err != nil {
		return nil, err
	}
	if s.transactions, err = loadSet[ledger.Transaction](ctx, kv, persist.KeyTransactions); err != nil {
		return nil, err
	}
	return s, nil
}

func loadSet[T any](ctx context.Context, kv persist.KV, key string) ([]T, error) {
	raw, err := kv.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		// Corrupt persisted data reads as empty.
		return nil, nil
	}
	return out, nil
}

// Ready forwards readiness to the collaborator when it supports probing.
func (s *Store) Ready(ctx context.Context) error {
	if rc, ok := s.kv.(interface{ Ready(context.Context) error }); ok {
		return rc.Ready(ctx)
	}
	return nil
}

// Seed helpers for local dev/tests.
func (s *Store) SeedCustomer(c ledger.Customer) {
	s.mu.Lock()
	s.customers = append(s.customers, c)
	s.mu.Unlock()
}

func (s *Store) SeedTransaction(t ledger.Transaction) {
	s.mu.Lock()
	t.Date = ledger.DateOnly(t.Date)
	s.transactions = append(s.transactions, t)
	s.mu.Unlock()
}

// UpsertCustomer trims both fields and either updates the first customer
// matching on exact mobile or case-insensitive name, or appends a new one.
// When both fields match different customers the first match in scan order
// wins; that ambiguity is inherited behavior.
func (s *Store) UpsertCustomer(ctx context.Context, name, mobile string) (ledger.Customer, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	if name == "" || mobile == "" {
		return ledger.Customer{}, fmt.Errorf("%w: name and mobile are required", errs.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		c := &s.customers[i]
		if c.Mobile == mobile || strings.EqualFold(c.Name, name) {
			c.Name = name
			c.Mobile = mobile
			if err := s.saveCustomersLocked(ctx); err != nil {
				return ledger.Customer{}, err
			}
			return *c, nil
		}
	}
	c := ledger.Customer{ID: uuid.NewString(), Name: name, Mobile: mobile}
	s.customers = append(s.customers, c)
	if err := s.saveCustomersLocked(ctx); err != nil {
		return ledger.Customer{}, err
	}
	return c, nil
}

// DeleteCustomer removes the customer and every transaction referencing it.
// Unknown ids are a silent no-op.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.customers {
		if s.customers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	s.customers = append(s.customers[:idx], s.customers[idx+1:]...)
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.CustomerID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	if err := s.saveCustomersLocked(ctx); err != nil {
		return err
	}
	return s.saveTransactionsLocked(ctx)
}

// TransactionInput carries the editable fields of a transaction.
type TransactionInput struct {
	CustomerID string
	Type       ledger.TxType
	Date       time.Time
	Item       string
	Qty        float64
	Rate       float64
	Discount   float64
	Paid       float64
}

// UpsertTransaction overwrites the editable fields of an existing
// transaction when existingID resolves, otherwise appends a new one.
// ID and CustomerID never change after creation.
func (s *Store) UpsertTransaction(ctx context.Context, in TransactionInput, existingID string) (ledger.Transaction, error) {
	if strings.TrimSpace(in.CustomerID) == "" {
		return ledger.Transaction{}, fmt.Errorf("%w: customer is required", errs.ErrValidation)
	}
	if in.Date.IsZero() {
		return ledger.Transaction{}, fmt.Errorf("%w: date is required", errs.ErrValidation)
	}
	in.Type = in.Type.Normalize()
	in.Date = ledger.DateOnly(in.Date)
	in.Item = strings.TrimSpace(in.Item)
	if in.Item == "" && in.Type == ledger.TxTypePurchase {
		in.Item = DefaultItem
	}
	in.Qty = clampZero(in.Qty)
	in.Rate = clampZero(in.Rate)
	in.Discount = clampZero(in.Discount)
	in.Paid = clampZero(in.Paid)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existingID != "" {
		for i := range s.transactions {
			if s.transactions[i].ID != existingID {
				continue
			}
			t := &s.transactions[i]
			t.Type = in.Type
			t.Date = in.Date
			t.Item = in.Item
			t.Qty = in.Qty
			t.Rate = in.Rate
			t.Discount = in.Discount
			t.Paid = in.Paid
			if err := s.saveTransactionsLocked(ctx); err != nil {
				return ledger.Transaction{}, err
			}
			return *t, nil
		}
		// fall through: unknown existing id creates a fresh record
	}
	if !s.hasCustomerLocked(in.CustomerID) {
		return ledger.Transaction{}, fmt.Errorf("%w: customer %s", errs.ErrNotFound, in.CustomerID)
	}
	t := ledger.Transaction{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Type:       in.Type,
		Date:       in.Date,
		Item:       in.Item,
		Qty:        in.Qty,
		Rate:       in.Rate,
		Discount:   in.Discount,
		Paid:       in.Paid,
	}
	s.transactions = append(s.transactions, t)
	if err := s.saveTransactionsLocked(ctx); err != nil {
		return ledger.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction; unknown ids are a silent no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return s.saveTransactionsLocked(ctx)
		}
	}
	return nil
}

// FindCustomer returns a customer by id.
func (s *Store) FindCustomer(_ context.Context, id string) (ledger.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return ledger.Customer{}, errs.ErrNotFound
}

// ListCustomers returns customers in insertion order, filtered by a
// case-insensitive substring over name or mobile.
func (s *Store) ListCustomers(_ context.Context, filter string) ([]ledger.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(filter))
	out := make([]ledger.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Mobile), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Customers returns all customers in insertion order.
func (s *Store) Customers(ctx context.Context) ([]ledger.Customer, error) {
	return s.ListCustomers(ctx, "")
}

// TransactionsByCustomer returns a customer's transactions in insertion
// order. The calculator relies on that order for stable tie-breaking.
func (s *Store) TransactionsByCustomer(_ context.Context, customerID string) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, 0)
	for _, t := range s.transactions {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Transactions returns every transaction in insertion order.
func (s *Store) Transactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *Store) hasCustomerLocked(id string) bool {
	for _, c := range s.customers {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) saveCustomersLocked(ctx context.Context) error {
	b, err := json.Marshal(s.customers)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, persist.KeyCustomers, b)
}

func (s *Store) saveTransactionsLocked(ctx context.Context) error {
	b, err := json.Marshal(s.transactions)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, persist.KeyTransactions, b)
}

// Monetary fields are lenient: absent or unparsable input reaches here as
// zero, and negatives clamp to zero to keep the model's lower bound.
func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

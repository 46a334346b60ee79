package httpapi

import (
	"context"

	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/store"
)

// Store is the mutation and lookup surface the API needs from the ledger
// store. It is a superset of the calculator's read-only repository.
type Store interface {
	UpsertCustomer(ctx context.Context, name, mobile string) (ledger.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	UpsertTransaction(ctx context.Context, in store.TransactionInput, existingID string) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	FindCustomer(ctx context.Context, id string) (ledger.Customer, error)
	ListCustomers(ctx context.Context, filter string) ([]ledger.Customer, error)
	Customers(ctx context.Context) ([]ledger.Customer, error)
	TransactionsByCustomer(ctx context.Context, customerID string) ([]ledger.Transaction, error)
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

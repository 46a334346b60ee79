package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bricknote/ledger/internal/errs"
	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/persist"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertCustomer_MatchesCaseInsensitiveName(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.UpsertCustomer(ctx, "Alice", "555")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := s.UpsertCustomer(ctx, "alice", "555")
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record, got %s and %s", first.ID, second.ID)
	}
	if second.Name != "alice" {
		t.Fatalf("name not updated in place: %q", second.Name)
	}
	all, _ := s.Customers(ctx)
	if len(all) != 1 {
		t.Fatalf("customer count = %d, want 1", len(all))
	}
}

func TestUpsertCustomer_MatchesByMobile(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.UpsertCustomer(ctx, "Alice", "555")
	b, err := s.UpsertCustomer(ctx, "Alicia", "555")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if b.ID != a.ID {
		t.Fatal("mobile match must update the existing record")
	}
	if b.Name != "Alicia" {
		t.Fatalf("name = %q, want Alicia", b.Name)
	}
}

func TestUpsertCustomer_Validation(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, in := range [][2]string{{"", "555"}, {"Alice", ""}, {"   ", " "}} {
		if _, err := s.UpsertCustomer(ctx, in[0], in[1]); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("UpsertCustomer(%q, %q) = %v, want ErrValidation", in[0], in[1], err)
		}
	}
	if all, _ := s.Customers(ctx); len(all) != 0 {
		t.Fatal("failed upsert must leave the store unchanged")
	}
}

func TestDeleteCustomer_Cascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.UpsertCustomer(ctx, "Alice", "555")
	b, _ := s.UpsertCustomer(ctx, "Bob", "666")
	if _, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: a.ID, Date: date(2024, 1, 10), Qty: 10, Rate: 5}, ""); err != nil {
		t.Fatalf("tx: %v", err)
	}
	keep, _ := s.UpsertTransaction(ctx, TransactionInput{CustomerID: b.ID, Date: date(2024, 1, 11), Qty: 1, Rate: 1}, "")

	if err := s.DeleteCustomer(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindCustomer(ctx, a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("FindCustomer after delete = %v, want ErrNotFound", err)
	}
	txs, _ := s.Transactions(ctx)
	if len(txs) != 1 || txs[0].ID != keep.ID {
		t.Fatalf("cascade left %d transactions", len(txs))
	}
	// deleting again is a no-op
	if err := s.DeleteCustomer(ctx, a.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestUpsertTransaction_Rules(t *testing.T) {
	ctx := context.Background()
	s := New()
	c, _ := s.UpsertCustomer(ctx, "Alice", "555")

	if _, err := s.UpsertTransaction(ctx, TransactionInput{Date: date(2024, 1, 1)}, ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing customer = %v, want ErrValidation", err)
	}
	if _, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID}, ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing date = %v, want ErrValidation", err)
	}
	if _, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: "ghost", Date: date(2024, 1, 1)}, ""); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown customer = %v, want ErrNotFound", err)
	}

	created, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID, Date: date(2024, 1, 10), Qty: 100, Rate: 5, Discount: 20, Paid: 300}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Item != DefaultItem {
		t.Fatalf("item = %q, want default", created.Item)
	}
	if created.Type != ledger.TxTypePurchase {
		t.Fatalf("type = %q, want purchase", created.Type)
	}

	// update in place: id and customer stay fixed
	updated, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: "ignored", Date: date(2024, 1, 12), Item: "Red bricks", Qty: 50, Rate: 6}, created.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatal("update must keep the id")
	}
	if updated.CustomerID != c.ID {
		t.Fatal("customer reference is immutable")
	}
	if updated.Qty != 50 || updated.Item != "Red bricks" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if txs, _ := s.Transactions(ctx); len(txs) != 1 {
		t.Fatalf("transaction count = %d, want 1", len(txs))
	}

	// unknown existing id falls through to create
	fresh, err := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID, Date: date(2024, 2, 1), Type: ledger.TxTypeMoney, Paid: 10}, "missing")
	if err != nil {
		t.Fatalf("create via missing id: %v", err)
	}
	if fresh.ID == created.ID || fresh.ID == "missing" {
		t.Fatalf("expected fresh id, got %q", fresh.ID)
	}

	// negatives clamp to zero
	neg, _ := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID, Date: date(2024, 2, 2), Qty: -5, Rate: -1, Discount: -2, Paid: -3}, "")
	if neg.Qty != 0 || neg.Rate != 0 || neg.Discount != 0 || neg.Paid != 0 {
		t.Fatalf("negative fields must clamp to zero: %+v", neg)
	}
}

func TestDeleteTransaction_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	c, _ := s.UpsertCustomer(ctx, "Alice", "555")
	tx, _ := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID, Date: date(2024, 1, 1), Qty: 1, Rate: 1}, "")
	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if txs, _ := s.Transactions(ctx); len(txs) != 0 {
		t.Fatal("transaction not removed")
	}
}

func TestListCustomers_Filter(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.UpsertCustomer(ctx, "Alice Mason", "0455")
	s.UpsertCustomer(ctx, "Bob Kiln", "0466")
	s.UpsertCustomer(ctx, "Carol", "0457")

	got, _ := s.ListCustomers(ctx, "MASON")
	if len(got) != 1 || got[0].Name != "Alice Mason" {
		t.Fatalf("name filter: %+v", got)
	}
	got, _ = s.ListCustomers(ctx, "045")
	if len(got) != 2 {
		t.Fatalf("mobile filter matched %d, want 2", len(got))
	}
	if got[0].Name != "Alice Mason" || got[1].Name != "Carol" {
		t.Fatalf("insertion order not preserved: %+v", got)
	}
	got, _ = s.ListCustomers(ctx, "")
	if len(got) != 3 {
		t.Fatalf("empty filter matched %d, want 3", len(got))
	}
}

func TestOpen_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	kv := persist.NewMemory()

	s, err := Open(ctx, kv)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	c, _ := s.UpsertCustomer(ctx, "Alice", "555")
	tx, _ := s.UpsertTransaction(ctx, TransactionInput{CustomerID: c.ID, Date: date(2024, 1, 10), Qty: 2, Rate: 3}, "")

	reloaded, err := Open(ctx, kv)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reloaded.FindCustomer(ctx, c.ID)
	if err != nil {
		t.Fatalf("find after reload: %v", err)
	}
	if got.Name != "Alice" {
		t.Fatalf("customer = %+v", got)
	}
	txs, _ := reloaded.TransactionsByCustomer(ctx, c.ID)
	if len(txs) != 1 || txs[0].ID != tx.ID {
		t.Fatalf("transactions after reload: %+v", txs)
	}
}

func TestOpen_CorruptDataLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := persist.NewMemory()
	_ = kv.Save(ctx, persist.KeyCustomers, []byte("{not json"))
	_ = kv.Save(ctx, persist.KeyTransactions, []byte("also not json"))

	s, err := Open(ctx, kv)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if all, _ := s.Customers(ctx); len(all) != 0 {
		t.Fatal("corrupt customers must load as empty")
	}
	if txs, _ := s.Transactions(ctx); len(txs) != 0 {
		t.Fatal("corrupt transactions must load as empty")
	}
}

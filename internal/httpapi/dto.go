package httpapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/service/report"
)

// flexFloat decodes a JSON number, a numeric string, or anything else as a
// float64, defaulting to zero for absent or unparsable input. Monetary
// fields are deliberately lenient rather than a crash path.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type upsertCustomerRequest struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

type customerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

func toCustomerResponse(c ledger.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Mobile: c.Mobile}
}

type upsertTransactionRequest struct {
	ID         string        `json:"id,omitempty"`
	CustomerID string        `json:"customer_id"`
	Type       ledger.TxType `json:"type,omitempty"`
	Date       string        `json:"date"`
	Item       string        `json:"item,omitempty"`
	Qty        flexFloat     `json:"qty,omitempty"`
	Rate       flexFloat     `json:"rate,omitempty"`
	Discount   flexFloat     `json:"discount,omitempty"`
	Paid       flexFloat     `json:"paid,omitempty"`
}

type transactionResponse struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customer_id"`
	Type       ledger.TxType `json:"type"`
	Date       string        `json:"date"`
	Item       string        `json:"item"`
	Qty        float64       `json:"qty"`
	Rate       float64       `json:"rate"`
	Discount   float64       `json:"discount"`
	Paid       float64       `json:"paid"`
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		Type:       t.Type.Normalize(),
		Date:       t.Date.Format(time.DateOnly),
		Item:       t.Item,
		Qty:        t.Qty,
		Rate:       t.Rate,
		Discount:   t.Discount,
		Paid:       t.Paid,
	}
}

type statementLineResponse struct {
	Date     string  `json:"date"`
	Item     string  `json:"item"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
	Total    float64 `json:"total"`
	Discount float64 `json:"discount"`
	Net      float64 `json:"net"`
	Paid     float64 `json:"paid"`
	Balance  float64 `json:"balance"`
}

type statementResponse struct {
	Customer       customerResponse        `json:"customer"`
	Period         string                  `json:"period"`
	OpeningBalance float64                 `json:"opening_balance"`
	Lines          []statementLineResponse `json:"lines"`
	PeriodNet      float64                 `json:"period_net"`
	PeriodPaid     float64                 `json:"period_paid"`
	PeriodDiscount float64                 `json:"period_discount"`
	ClosingBalance float64                 `json:"closing_balance"`
	LifetimeNet    float64                 `json:"lifetime_net"`
	LifetimePaid   float64                 `json:"lifetime_paid"`
	LifetimeClose  float64                 `json:"lifetime_closing"`
}

func toStatementResponse(st report.Statement) statementResponse {
	resp := statementResponse{
		Customer:       toCustomerResponse(st.Customer),
		Period:         st.Period.String(),
		OpeningBalance: st.OpeningBalance,
		Lines:          make([]statementLineResponse, 0, len(st.Lines)),
		PeriodNet:      st.PeriodNet,
		PeriodPaid:     st.PeriodPaid,
		PeriodDiscount: st.PeriodDiscount,
		ClosingBalance: st.ClosingBalance,
		LifetimeNet:    st.LifetimeNet,
		LifetimePaid:   st.LifetimePaid,
		LifetimeClose:  st.LifetimeClose,
	}
	for _, ln := range st.Lines {
		t := ln.Transaction
		resp.Lines = append(resp.Lines, statementLineResponse{
			Date:     t.Date.Format(time.DateOnly),
			Item:     t.Item,
			Qty:      t.Qty,
			Rate:     ledger.Round2(t.Rate),
			Total:    ln.Total,
			Discount: ledger.Round2(t.Discount),
			Net:      ln.Net,
			Paid:     ledger.Round2(t.Paid),
			Balance:  ln.Balance,
		})
	}
	return resp
}

type summaryRowResponse struct {
	Customer       customerResponse `json:"customer"`
	Opening        float64          `json:"opening"`
	PeriodNet      float64          `json:"period_net"`
	PeriodPaid     float64          `json:"period_paid"`
	PeriodDiscount float64          `json:"period_discount"`
	Closing        float64          `json:"closing"`
}

type summaryResponse struct {
	Period string               `json:"period"`
	Rows   []summaryRowResponse `json:"rows"`
}

func toSummaryResponse(p ledger.Period, rows []report.SummaryRow) summaryResponse {
	resp := summaryResponse{Period: p.String(), Rows: make([]summaryRowResponse, 0, len(rows))}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, summaryRowResponse{
			Customer:       toCustomerResponse(r.Customer),
			Opening:        r.Opening,
			PeriodNet:      r.PeriodNet,
			PeriodPaid:     r.PeriodPaid,
			PeriodDiscount: r.PeriodDiscount,
			Closing:        r.Closing,
		})
	}
	return resp
}

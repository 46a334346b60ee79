package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/store"
)

type ctxKey string

const ctxKeyUpsertCustomer ctxKey = "validatedUpsertCustomer"
const ctxKeyUpsertTransaction ctxKey = "validatedUpsertTransaction"
const ctxKeyPeriod ctxKey = "validatedPeriod"

// upsertTransactionInput pairs the store input with the optional id of the
// record being edited.
type upsertTransactionInput struct {
	Input      store.TransactionInput
	ExistingID string
}

// validateUpsertCustomer ensures the POST /customers body parses and carries
// both fields, and stores the trimmed request in the context.
func (s *Server) validateUpsertCustomer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req upsertCustomerRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			req.Name = strings.TrimSpace(req.Name)
			req.Mobile = strings.TrimSpace(req.Mobile)
			if req.Name == "" || req.Mobile == "" {
				writeErr(w, http.StatusBadRequest, "name and mobile are required", "validation_error")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUpsertCustomer, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateUpsertTransaction parses the POST /transactions body. Monetary
// fields decode leniently; customer and date are the only hard requirements.
func (s *Server) validateUpsertTransaction() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req upsertTransactionRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if strings.TrimSpace(req.CustomerID) == "" {
				writeErr(w, http.StatusBadRequest, "customer_id is required", "validation_error")
				return
			}
			if strings.TrimSpace(req.Date) == "" {
				writeErr(w, http.StatusBadRequest, "date is required", "validation_error")
				return
			}
			date, err := time.Parse(time.DateOnly, req.Date)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", "validation_error")
				return
			}
			in := upsertTransactionInput{
				Input: store.TransactionInput{
					CustomerID: req.CustomerID,
					Type:       req.Type,
					Date:       date,
					Item:       req.Item,
					Qty:        float64(req.Qty),
					Rate:       float64(req.Rate),
					Discount:   float64(req.Discount),
					Paid:       float64(req.Paid),
				},
				ExistingID: req.ID,
			}
			ctx := context.WithValue(r.Context(), ctxKeyUpsertTransaction, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePeriod parses exactly one of month=YYYY-MM, day=YYYY-MM-DD or
// year=YYYY from the query and stores the resulting period in the context.
func (s *Server) validatePeriod() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := parsePeriod(r.URL.Query().Get("month"), r.URL.Query().Get("day"), r.URL.Query().Get("year"))
			if err != nil {
				writeErr(w, http.StatusBadRequest, err.Error(), "invalid_period")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPeriod, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func periodFromContext(ctx context.Context) ledger.Period {
	p, _ := ctx.Value(ctxKeyPeriod).(ledger.Period)
	return p
}

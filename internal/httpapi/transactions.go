package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
)

// POST /v1/transactions
// An id in the body selects the record to overwrite; otherwise a new
// transaction is created.
func (s *Server) upsertTransaction(w http.ResponseWriter, r *http.Request) {
	in, ok := r.Context().Value(ctxKeyUpsertTransaction).(upsertTransactionInput)
	if !ok {
		badRequest(w, "missing validated request")
		return
	}
	t, err := s.store.UpsertTransaction(r.Context(), in.Input, in.ExistingID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	status := http.StatusCreated
	if in.ExistingID != "" && t.ID == in.ExistingID {
		status = http.StatusOK
	}
	toJSON(w, status, toTransactionResponse(t))
}

// DELETE /v1/transactions/{id}
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

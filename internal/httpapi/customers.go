package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
)

// POST /v1/customers
func (s *Server) upsertCustomer(w http.ResponseWriter, r *http.Request) {
	req, ok := r.Context().Value(ctxKeyUpsertCustomer).(upsertCustomerRequest)
	if !ok {
		badRequest(w, "missing validated request")
		return
	}
	c, err := s.store.UpsertCustomer(r.Context(), req.Name, req.Mobile)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toCustomerResponse(c))
}

// GET /v1/customers?q=
func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	toJSON(w, http.StatusOK, out)
}

// GET /v1/customers/{id}
func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.FindCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toCustomerResponse(c))
}

// DELETE /v1/customers/{id}
// Cascades to the customer's transactions. Idempotent: unknown ids still 204.
func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

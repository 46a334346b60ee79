package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/bricknote/ledger/internal/export"
)

// GET /v1/customers/{id}/statement?month=|day=|year=
func (s *Server) getStatement(w http.ResponseWriter, r *http.Request) {
	p := periodFromContext(r.Context())
	st, err := s.svc.BuildStatement(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toStatementResponse(st))
}

// GET /v1/customers/{id}/statement/export?format=csv|excel
func (s *Server) exportStatement(w http.ResponseWriter, r *http.Request) {
	p := periodFromContext(r.Context())
	st, err := s.svc.BuildStatement(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeExport(w, r, export.StatementRows(st), "ledger-"+p.String())
}

// GET /v1/summary?month=|day=|year=
func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	p := periodFromContext(r.Context())
	rows, err := s.svc.BuildSummary(r.Context(), p)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	toJSON(w, http.StatusOK, toSummaryResponse(p, rows))
}

// GET /v1/summary/export?format=csv|excel
func (s *Server) exportSummary(w http.ResponseWriter, r *http.Request) {
	p := periodFromContext(r.Context())
	rows, err := s.svc.BuildSummary(r.Context(), p)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeExport(w, r, export.SummaryRows(rows), "summary-"+p.String())
}

// writeExport serializes rows in the requested format. CSV is the default.
func writeExport(w http.ResponseWriter, r *http.Request, rows [][]string, basename string) {
	switch r.URL.Query().Get("format") {
	case "excel":
		w.Header().Set("Content-Type", "application/vnd.ms-excel")
		w.Header().Set("Content-Disposition", `attachment; filename="`+basename+`.xls"`)
		_, _ = w.Write([]byte(export.ExcelHTML(rows)))
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+basename+`.csv"`)
		_, _ = w.Write([]byte(export.CSV(rows)))
	default:
		badRequest(w, "format must be csv or excel")
	}
}

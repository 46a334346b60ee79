// Package export serializes already-computed report rows. These are pure
// functions; the calculator does not depend on them.
package export

import (
	"strconv"
	"strings"

	"github.com/bricknote/ledger/internal/ledger"
	"github.com/bricknote/ledger/internal/service/report"
)

// StatementHeader matches the ledger table column order.
var StatementHeader = []string{"Date", "Item", "Qty", "Rate", "Total", "Discount", "Net", "Paid", "Balance"}

// SummaryHeader matches the summary table column order.
var SummaryHeader = []string{"Customer", "Mobile", "Opening", "Purchase", "Paid", "Discount", "Closing"}

// StatementRows renders a statement as table rows, header included.
func StatementRows(st report.Statement) [][]string {
	rows := make([][]string, 0, len(st.Lines)+1)
	rows = append(rows, StatementHeader)
	for _, ln := range st.Lines {
		t := ln.Transaction
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Item,
			strconv.FormatFloat(t.Qty, 'f', -1, 64),
			ledger.Fixed2(t.Rate),
			ledger.Fixed2(ln.Total),
			ledger.Fixed2(t.Discount),
			ledger.Fixed2(ln.Net),
			ledger.Fixed2(t.Paid),
			ledger.Fixed2(ln.Balance),
		})
	}
	return rows
}

// SummaryRows renders summary rows as a table, header included.
func SummaryRows(rows []report.SummaryRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, SummaryHeader)
	for _, r := range rows {
		out = append(out, []string{
			r.Customer.Name,
			r.Customer.Mobile,
			ledger.Fixed2(r.Opening),
			ledger.Fixed2(r.PeriodNet),
			ledger.Fixed2(r.PeriodPaid),
			ledger.Fixed2(r.PeriodDiscount),
			ledger.Fixed2(r.Closing),
		})
	}
	return out
}

// CSV serializes rows with every field double-quoted and embedded quotes
// doubled, one line per row.
func CSV(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// ExcelHTML wraps rows in the office-namespace HTML document that
// spreadsheet applications accept as a worksheet.
func ExcelHTML(rows [][]string) string {
	var b strings.Builder
	b.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office"` + "\n")
	b.WriteString(`      xmlns:x="urn:schemas-microsoft-com:office:excel"` + "\n")
	b.WriteString(`      xmlns="http://www.w3.org/TR/REC-html40">` + "\n")
	b.WriteString("<head><meta charset=\"UTF-8\"></head>\n<body><table>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, field := range row {
			b.WriteString("<td>")
			b.WriteString(escapeHTML(field))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	return b.String()
}

func escapeHTML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

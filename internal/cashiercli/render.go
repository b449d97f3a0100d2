package cashiercli

import (
	"fmt"
	"io"
	"strings"

	"github.com/SscSPs/barbershop_cashdrawer/internal/core/domain"
	"github.com/SscSPs/barbershop_cashdrawer/internal/dto"
	"github.com/SscSPs/barbershop_cashdrawer/internal/utils"
	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}

func sessionMarkdown(s *dto.CashSessionResponse, summary *dto.ReconciliationSummaryResponse, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session %s\n\n", s.SessionID)
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Employee | %s |\n", s.EmployeeID)
	fmt.Fprintf(&b, "| Status | %s |\n", s.Status)
	fmt.Fprintf(&b, "| Opened | %s |\n", s.OpenedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "| Opening balance | %s |\n", utils.FormatMoney(s.OpeningBalance, currency))
	if summary != nil {
		fmt.Fprintf(&b, "| Income (%d) | %s |\n", summary.IncomeCount, utils.FormatMoney(summary.TotalIncome, currency))
		fmt.Fprintf(&b, "| Expenses (%d) | %s |\n", summary.ExpenseCount, utils.FormatMoney(summary.TotalExpense, currency))
		fmt.Fprintf(&b, "| Expected in drawer | %s |\n", utils.FormatMoney(summary.ExpectedBalance, currency))
	}
	return b.String()
}

func entriesMarkdown(list *dto.ListEntriesResponse, kind *domain.EntryKind, currency string) string {
	var b strings.Builder
	b.WriteString("# Entries\n\n")
	if len(list.Entries) == 0 {
		b.WriteString("_No entries recorded._\n")
		return b.String()
	}
	b.WriteString("| Time | Kind | Class | Description | Amount |\n|---|---|---|---|---:|\n")
	for _, e := range list.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			e.CreatedAt.Local().Format("15:04"), e.Kind, e.Classification,
			escapeCell(e.Description), utils.FormatMoney(e.Amount, currency))
	}
	b.WriteString("\n")
	switch {
	case kind == nil:
		fmt.Fprintf(&b, "**Income** %s, **Expenses** %s, **Net** %s\n",
			utils.FormatMoney(list.TotalIncome, currency),
			utils.FormatMoney(list.TotalExpense, currency),
			utils.FormatMoney(list.Total, currency))
	default:
		fmt.Fprintf(&b, "**Total %s** %s\n", strings.ToLower(string(*kind)), utils.FormatMoney(list.Total, currency))
	}
	return b.String()
}

func closeMarkdown(r *dto.CloseSessionResponse, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session %s closed\n\n", r.Session.SessionID)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Expected | %s |\n", utils.FormatMoney(r.Summary.ExpectedBalance, currency))
	fmt.Fprintf(&b, "| Counted | %s |\n", utils.FormatMoney(r.Summary.ReportedBalance, currency))
	fmt.Fprintf(&b, "| Discrepancy | %s |\n", utils.FormatMoney(r.Summary.Discrepancy, currency))
	fmt.Fprintf(&b, "| Result | %s |\n", r.Summary.Classification)
	if r.Warning != nil {
		fmt.Fprintf(&b, "\n> **Warning:** %s\n", *r.Warning)
	}
	return b.String()
}

func historyMarkdown(list *dto.ListSessionsResponse, currency string) string {
	var b strings.Builder
	b.WriteString("# Session history\n\n")
	if len(list.Sessions) == 0 {
		b.WriteString("_No sessions._\n")
		return b.String()
	}
	b.WriteString("| Opened | Employee | Status | Opening | Closing | Discrepancy | Result |\n|---|---|---|---:|---:|---:|---|\n")
	for _, s := range list.Sessions {
		closing, discrepancy, result := "-", "-", "-"
		if s.ClosingBalance != nil {
			closing = utils.FormatMoney(*s.ClosingBalance, currency)
		}
		if s.Discrepancy != nil {
			discrepancy = utils.FormatMoney(*s.Discrepancy, currency)
		}
		if s.ReconciliationStatus != nil {
			result = string(*s.ReconciliationStatus)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			s.OpenedAt.Local().Format("2006-01-02 15:04"), s.EmployeeID, s.Status,
			utils.FormatMoney(s.OpeningBalance, currency), closing, discrepancy, result)
	}
	if list.NextToken != nil {
		fmt.Fprintf(&b, "\nMore sessions: `-next %s`\n", *list.NextToken)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

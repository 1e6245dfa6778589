// Package renderer turns finboard reports into markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/finboard"
	md "github.com/nao1215/markdown"
)

// Summary renders the book overview to a markdown string.
func Summary(s *finboard.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Summary on %s", s.Date))
	doc.PlainText(fmt.Sprintf("Net Worth: %s", s.NetWorth))

	doc.H2("Balances")
	doc.Table(md.TableSet{
		Header: []string{"", "Amount"},
		Rows: [][]string{
			{"Cash", s.Cash.String()},
			{"Securities", s.SecuritiesValue.String()},
			{"Valuation", s.Valuation.String()},
			{"Debt", s.Debt.Neg().SignedString()},
			{"Net Worth", s.NetWorth.String()},
		},
	})

	if len(s.Holdings) > 0 {
		doc.H2("Portfolio")
		doc.Table(holdingsTable(s.Holdings))
	}
	if len(s.Loans) > 0 {
		doc.H2("Loans")
		doc.Table(loansTable(s.Loans))
	}
	if len(s.Goals) > 0 {
		doc.H2("Goals")
		doc.Table(goalsTable(s.Goals))
	}
	if len(s.Recent) > 0 {
		doc.H2("Recent Transactions")
		doc.Table(transactionsTable(s.Recent))
	}

	return doc.String()
}

// Holdings renders the portfolio positions to a markdown string.
func Holdings(holdings []finboard.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Portfolio")
	doc.Table(holdingsTable(holdings))
	return doc.String()
}

func holdingsTable(holdings []finboard.Holding) md.TableSet {
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Symbol,
			h.Shares.String(),
			h.Price().String(),
			h.MarketValue().String(),
			h.UnrealizedGain().SignedString(),
		})
	}
	return md.TableSet{
		Header: []string{"Symbol", "Shares", "Price", "Value", "Gain"},
		Rows:   rows,
	}
}

// Loans renders the loan book to a markdown string.
func Loans(loans []finboard.Loan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Loans")
	if len(loans) == 0 {
		doc.PlainText("No outstanding loans.")
	} else {
		doc.Table(loansTable(loans))
	}
	return doc.String()
}

func loansTable(loans []finboard.Loan) md.TableSet {
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []string{
			l.ID,
			l.Principal.String(),
			l.Remaining.String(),
			l.InterestPerMinute.String(),
			fmt.Sprintf("%d", l.MinutesLeft),
		})
	}
	return md.TableSet{
		Header: []string{"ID", "Principal", "Remaining", "Interest/min", "Minutes Left"},
		Rows:   rows,
	}
}

// Goals renders the savings goals to a markdown string.
func Goals(goals []finboard.Goal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Goals")
	if len(goals) == 0 {
		doc.PlainText("No goals yet.")
	} else {
		doc.Table(goalsTable(goals))
	}
	return doc.String()
}

func goalsTable(goals []finboard.Goal) md.TableSet {
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		status := fmt.Sprintf("%.0f%%", g.Progress()*100)
		if g.Reached() {
			status = "reached"
		}
		rows = append(rows, []string{g.Name, g.Current.String(), g.Target.String(), status})
	}
	return md.TableSet{
		Header: []string{"Goal", "Saved", "Target", "Progress"},
		Rows:   rows,
	}
}

// Transactions renders ledger entries to a markdown string, with the running
// total of all listed amounts.
func Transactions(txs []finboard.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}
	doc.Table(transactionsTable(txs))
	return doc.String()
}

func transactionsTable(txs []finboard.Transaction) md.TableSet {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.String(),
			tx.Category,
			tx.Amount.SignedString(),
			tx.Description,
		})
	}
	return md.TableSet{
		Header: []string{"Date", "Category", "Amount", "Description"},
		Rows:   rows,
	}
}

package finboard

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON implements the json.Marshaler interface with a canonical field
// order. Prices are bare numbers in the base currency.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Append("shares", h.Shares)
	w.Append("avg_price", h.AvgPrice.value)
	w.Append("current_price", h.CurrentPrice.value)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var temp struct {
		Symbol       string          `json:"symbol"`
		Shares       Quantity        `json:"shares"`
		AvgPrice     decimal.Decimal `json:"avg_price"`
		CurrentPrice decimal.Decimal `json:"current_price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	h.Symbol = temp.Symbol
	h.Shares = temp.Shares
	h.AvgPrice = M(temp.AvgPrice, BaseCurrency)
	h.CurrentPrice = M(temp.CurrentPrice, BaseCurrency)
	return nil
}

// MarshalJSON implements the json.Marshaler interface with a canonical field
// order.
func (l Loan) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", l.ID)
	w.Append("amount", l.Principal.value)
	w.Append("remaining", l.Remaining.value)
	w.Append("interest_per_min", l.InterestPerMinute.value)
	w.Append("mins_left", l.MinutesLeft)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (l *Loan) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID                string          `json:"id"`
		Amount            decimal.Decimal `json:"amount"`
		Remaining         decimal.Decimal `json:"remaining"`
		InterestPerMinute decimal.Decimal `json:"interest_per_min"`
		MinutesLeft       int             `json:"mins_left"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	l.ID = temp.ID
	l.Principal = M(temp.Amount, BaseCurrency)
	l.Remaining = M(temp.Remaining, BaseCurrency)
	l.InterestPerMinute = M(temp.InterestPerMinute, BaseCurrency)
	l.MinutesLeft = temp.MinutesLeft
	return nil
}

// MarshalJSON implements the json.Marshaler interface with a canonical field
// order.
func (g Goal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", g.Name)
	w.Append("target", g.Target.value)
	w.Append("current", g.Current.value)
	w.Optional("category", g.Category)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (g *Goal) UnmarshalJSON(data []byte) error {
	var temp struct {
		Name     string          `json:"name"`
		Target   decimal.Decimal `json:"target"`
		Current  decimal.Decimal `json:"current"`
		Category string          `json:"category"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	g.Name = temp.Name
	g.Target = M(temp.Target, BaseCurrency)
	g.Current = M(temp.Current, BaseCurrency)
	g.Category = temp.Category
	return nil
}

// EncodeBook persists the complete book state as a single JSON document with
// a canonical field order, so saves stay diff-friendly.
//
// The cash_balance field and the CASH entry in the portfolio are mirrors of
// the ledger sum, written for readers that want the figure without replaying
// the log. DecodeBook recomputes cash from the transactions and never trusts
// the mirrors.
func EncodeBook(w io.Writer, b *Book) error {
	decimal.MarshalJSONWithoutQuotes = true

	portfolio := make(map[string]Holding, len(b.holdings)+1)
	for h := range b.Holdings() {
		portfolio[h.Symbol] = h
	}
	b.ledger.stableSort()

	var obj jsonObjectWriter
	obj.Append("portfolio", portfolio)
	obj.Append("goals", b.goals)
	obj.Append("loans", b.loans)
	obj.Append("cash_balance", b.CashBalance().value)
	obj.Append("transactions", b.ledger.transactions)
	obj.Append("last_interest_time", b.lastInterest)
	obj.Append("interest_per_min", b.interestPerMinute.value)

	content, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode book: %w", err)
	}
	var indented json.RawMessage = content
	out, err := json.MarshalIndent(indented, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode book: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	return nil
}

// DecodeBook reads a JSON state document and rebuilds the book. The cash
// balance is recomputed as the ledger sum; a stored cash_balance that
// disagrees is logged and discarded. A missing last_interest_time starts the
// interest clock at now, so no interest accrues for the unrecorded gap.
func DecodeBook(r io.Reader, now Time) (*Book, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading state: %w", err)
	}

	var temp struct {
		Portfolio         map[string]Holding `json:"portfolio"`
		Goals             []Goal             `json:"goals"`
		Loans             []Loan             `json:"loans"`
		CashBalance       decimal.Decimal    `json:"cash_balance"`
		Transactions      []Transaction      `json:"transactions"`
		LastInterestTime  Time               `json:"last_interest_time"`
		InterestPerMinute decimal.Decimal    `json:"interest_per_min"`
	}
	if err := json.Unmarshal(content, &temp); err != nil {
		return nil, fmt.Errorf("could not decode state: %v: %w", err, ErrCorruptState)
	}

	b := NewBook(now)
	b.ledger.Append(temp.Transactions...)
	for symbol, h := range temp.Portfolio {
		if symbol == CashSymbol {
			continue // synthesized from the ledger, never stored state
		}
		h.Symbol = symbol
		b.holdings[symbol] = h
	}
	b.goals = temp.Goals
	b.loans = temp.Loans
	if !temp.LastInterestTime.IsZero() {
		b.lastInterest = temp.LastInterestTime
	}
	if temp.InterestPerMinute.IsPositive() {
		b.interestPerMinute = M(temp.InterestPerMinute, BaseCurrency)
	}

	if stored := M(temp.CashBalance, BaseCurrency); !stored.Equal(b.CashBalance()) {
		log.Printf("stored cash balance %s disagrees with ledger sum %s, using the ledger",
			stored, b.CashBalance())
	}
	return b, nil
}

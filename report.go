package finboard

import "slices"

// Summary is an at-a-glance overview of the book: cash, positions, debt and
// goals, as of a given instant.
type Summary struct {
	Date Time

	Cash            Money
	SecuritiesValue Money
	Valuation       Money // Cash + SecuritiesValue
	Debt            Money // sum of outstanding loan balances
	NetWorth        Money // Valuation - Debt

	Holdings []Holding // CASH first, then symbol order
	Loans    []Loan
	Goals    []Goal
	Recent   []Transaction // most recent first
}

// NewSummary computes the overview, including the last recent transactions.
func (b *Book) NewSummary(now Time, recent int) *Summary {
	s := &Summary{
		Date:      now,
		Cash:      b.CashBalance(),
		Valuation: b.Valuation(),
		NetWorth:  b.NetWorth(),
		Holdings:  slices.Collect(b.Holdings()),
		Loans:     b.Loans(),
		Goals:     b.Goals(),
		Recent:    b.ledger.Recent(recent),
	}
	s.SecuritiesValue = s.Valuation.Sub(s.Cash)
	s.Debt = s.Valuation.Sub(s.NetWorth)
	return s
}

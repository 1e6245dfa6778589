package finboard

import (
	"iter"
	"sort"
)

// Ledger is an append-only list of transactions.
//
// In a Ledger transactions are always in chronological order. The cash
// balance is never stored: it is recomputed as the sum of all amounts, which
// makes the ledger the single source of truth for cash.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions at the same instant maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// CashBalance computes the cash balance as the sum of all transaction
// amounts. Every mutation path derives cash through this method, so the
// balance can never drift from the log.
func (l *Ledger) CashBalance() Money {
	balance := USD(0)
	for _, tx := range l.transactions {
		balance = balance.Add(tx.Amount)
	}
	return balance
}

// Transactions returns an iterator that yields each transaction in
// chronological order. Optional filters restrict the output; a transaction is
// yielded when any filter accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if len(filters) > 0 {
				accept := false
				for _, filter := range filters {
					if filter(tx) {
						accept = true
						break
					}
				}
				if !accept {
					continue
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Recent returns the last n transactions, most recent first.
func (l *Ledger) Recent(n int) []Transaction {
	if n > len(l.transactions) {
		n = len(l.transactions)
	}
	recent := make([]Transaction, 0, n)
	for i := len(l.transactions) - 1; i >= len(l.transactions)-n; i-- {
		recent = append(recent, l.transactions[i])
	}
	return recent
}

// OldestTransactionDate returns the date of the earliest transaction, or the
// zero Time for an empty ledger.
func (l *Ledger) OldestTransactionDate() Time {
	if len(l.transactions) == 0 {
		return Time{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction, or the
// zero Time for an empty ledger.
func (l *Ledger) NewestTransactionDate() Time {
	if len(l.transactions) == 0 {
		return Time{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// ByCategory returns a predicate that filters transactions by exact category.
func ByCategory(category string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Category == category }
}

package finboard

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction categories written by the book's own operations. Manual records
// can use any category.
const (
	CategoryInterest       = "Interest"
	CategoryMissedInterest = "Missed Interest"
	CategoryLoan           = "Loan"
	CategoryLoanInterest   = "Loan Interest"
	CategoryLoanRepayment  = "Loan Repayment"
	CategorySavings        = "Savings"
)

// InvestmentCategory is the category used for a purchase of the given symbol.
func InvestmentCategory(symbol string) string { return "Investment: " + symbol }

// SaleCategory is the category used for a sale of the given symbol.
func SaleCategory(symbol string) string { return "Sale: " + symbol }

// Transaction is a single immutable ledger entry. The cash balance is the sum
// of all transaction amounts; a negative amount is an expense or purchase.
type Transaction struct {
	Date        Time
	Category    string
	Amount      Money
	Description string
}

// NewTransaction creates a ledger entry in the base currency.
func NewTransaction(date Time, category string, amount Money, description string) Transaction {
	return Transaction{Date: date, Category: category, Amount: amount, Description: description}
}

// Equal reports whether two transactions are identical.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) && t.Category == o.Category &&
		t.Amount.Equal(o.Amount) && t.Description == o.Description
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s", t.Date.Date(), t.Category, t.Amount.SignedString())
}

// SignedString returns the string representation of the money value with an
// explicit sign, "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON implements the json.Marshaler interface with a canonical field
// order matching the on-disk state format.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Append("category", t.Category)
	w.Append("amount", t.Amount.value)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface. Amounts are bare
// numbers in the base currency.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date        Time            `json:"date"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.Date = temp.Date
	t.Category = temp.Category
	t.Amount = M(temp.Amount, BaseCurrency)
	t.Description = temp.Description
	return nil
}

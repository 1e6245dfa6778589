package finboard

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

// DefaultInterestPerMinute is the flat amount credited to cash once per
// minute while the cash balance is positive.
var DefaultInterestPerMinute = USD(10)

// Book holds the complete bookkeeping state: the transaction ledger, the
// portfolio of holdings, the loan book, the goals, and the cash interest
// clock.
//
// A Book is not safe for concurrent use. Callers serialize mutations; see
// Service for the single-writer wrapper.
type Book struct {
	ledger   *Ledger
	holdings map[string]Holding // securities only, CASH is synthesized
	loans    []Loan
	goals    []Goal

	lastInterest      Time
	interestPerMinute Money
}

// NewBook creates an empty book with the interest clock starting at now.
func NewBook(now Time) *Book {
	return &Book{
		ledger:            NewLedger(),
		holdings:          make(map[string]Holding),
		lastInterest:      now,
		interestPerMinute: DefaultInterestPerMinute,
	}
}

// SetInterestPerMinute overrides the flat cash interest amount.
func (b *Book) SetInterestPerMinute(amount Money) {
	if amount.IsNegative() {
		return
	}
	b.interestPerMinute = amount
}

// Ledger returns the underlying transaction ledger.
func (b *Book) Ledger() *Ledger { return b.ledger }

// CashBalance returns the ledger sum. This is the single authoritative cash
// figure in the book.
func (b *Book) CashBalance() Money { return b.ledger.CashBalance() }

// LastInterestTime returns the instant interest was last credited.
func (b *Book) LastInterestTime() Time { return b.lastInterest }

// Holding returns the holding for a symbol. The CASH holding is synthesized
// from the ledger sum, pinned at 1.0 per share.
func (b *Book) Holding(symbol string) (Holding, bool) {
	if symbol == CashSymbol {
		return b.cashHolding(), true
	}
	h, ok := b.holdings[symbol]
	return h, ok
}

func (b *Book) cashHolding() Holding {
	cash := b.CashBalance()
	return Holding{
		Symbol:       CashSymbol,
		Shares:       cash.DivPrice(USD(1)),
		AvgPrice:     USD(1),
		CurrentPrice: USD(1),
	}
}

// Holdings iterates over all holdings in symbol order, the synthetic CASH
// holding first.
func (b *Book) Holdings() iter.Seq[Holding] {
	return func(yield func(Holding) bool) {
		if !yield(b.cashHolding()) {
			return
		}
		symbols := slices.Collect(maps.Keys(b.holdings))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(b.holdings[symbol]) {
				return
			}
		}
	}
}

// Loans returns a copy of the loan book.
func (b *Book) Loans() []Loan { return slices.Clone(b.loans) }

// Loan returns the loan with the given id.
func (b *Book) Loan(id string) (Loan, bool) {
	for _, l := range b.loans {
		if l.ID == id {
			return l, true
		}
	}
	return Loan{}, false
}

// Goals returns a copy of the goals.
func (b *Book) Goals() []Goal { return slices.Clone(b.goals) }

// Goal returns the goal with the given name.
func (b *Book) Goal(name string) (Goal, bool) {
	for _, g := range b.goals {
		if g.Name == name {
			return g, true
		}
	}
	return Goal{}, false
}

// Record appends a manual transaction. Negative amounts are expenses. There
// is no validation beyond the category being present; the ledger accepts any
// signed amount.
func (b *Book) Record(date Time, category string, amount Money, description string) {
	if date.IsZero() {
		date = Now()
	}
	b.ledger.Append(NewTransaction(date, category, amount, description))
}

// Buy purchases shares at the given price, debiting cash. The average cost of
// an existing position is blended:
//
//	new_avg = (old_shares*old_avg + shares*price) / (old_shares+shares)
func (b *Book) Buy(now Time, symbol string, shares Quantity, price Money) error {
	if symbol == "" || symbol == CashSymbol {
		return fmt.Errorf("cannot buy %q: %w", symbol, ErrUnknownSymbol)
	}
	if !shares.IsPositive() {
		return fmt.Errorf("buy quantity must be positive, got %s: %w", shares, ErrInvalidAmount)
	}
	if !price.IsPositive() {
		return fmt.Errorf("buy price must be positive, got %s: %w", price, ErrInvalidAmount)
	}

	cost := price.Mul(shares)
	if cash := b.CashBalance(); cash.LessThan(cost) {
		return fmt.Errorf("cannot buy %s of %s for %s, cash balance is %s: %w",
			shares, symbol, cost, cash, ErrInsufficientFunds)
	}

	h, ok := b.holdings[symbol]
	if !ok {
		h = Holding{Symbol: symbol, AvgPrice: price}
	} else {
		totalShares := h.Shares.Add(shares)
		totalCost := h.AvgPrice.Mul(h.Shares).Add(cost)
		h.AvgPrice = totalCost.Div(totalShares)
	}
	h.Shares = h.Shares.Add(shares)
	h.CurrentPrice = price
	b.holdings[symbol] = h

	b.ledger.Append(NewTransaction(now, InvestmentCategory(symbol), cost.Neg(),
		fmt.Sprintf("Purchased %s shares at %s", shares, price)))
	return nil
}

// Sell disposes shares at the holding's last known price, crediting the
// proceeds to cash. Selling the entire position removes the holding.
func (b *Book) Sell(now Time, symbol string, shares Quantity) error {
	h, ok := b.holdings[symbol]
	if !ok {
		return fmt.Errorf("cannot sell %q: %w", symbol, ErrUnknownSymbol)
	}
	if !shares.IsPositive() {
		return fmt.Errorf("sell quantity must be positive, got %s: %w", shares, ErrInvalidAmount)
	}
	if h.Shares.LessThan(shares) {
		return fmt.Errorf("cannot sell %s of %s, position is only %s: %w",
			shares, symbol, h.Shares, ErrInsufficientShares)
	}

	proceeds := h.Price().Mul(shares)
	if h.Shares.Equal(shares) {
		delete(b.holdings, symbol)
	} else {
		h.Shares = h.Shares.Sub(shares)
		b.holdings[symbol] = h
	}

	b.ledger.Append(NewTransaction(now, SaleCategory(symbol), proceeds,
		fmt.Sprintf("Sold %s shares at %s", shares, h.Price())))
	return nil
}

// Liquidate sells the entire position at its last known price.
func (b *Book) Liquidate(now Time, symbol string) error {
	h, ok := b.holdings[symbol]
	if !ok {
		return fmt.Errorf("cannot liquidate %q: %w", symbol, ErrUnknownSymbol)
	}
	return b.Sell(now, symbol, h.Shares)
}

// Valuation returns the total market value of all holdings. CASH is always
// valued at 1.0 per share regardless of any fetched price, and mirrors the
// ledger sum, so cash is included exactly once.
func (b *Book) Valuation() Money {
	total := b.CashBalance()
	for _, h := range b.holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// NetWorth returns the valuation minus all outstanding loan balances.
func (b *Book) NetWorth() Money {
	net := b.Valuation()
	for _, l := range b.loans {
		net = net.Sub(l.Remaining)
	}
	return net
}

// ApplyPrices updates the last observed price of the given symbols. Unknown
// symbols and the CASH symbol are ignored; non-positive prices are ignored.
func (b *Book) ApplyPrices(prices map[string]Money) {
	for symbol, price := range prices {
		h, ok := b.holdings[symbol]
		if !ok || !price.IsPositive() {
			continue
		}
		h.CurrentPrice = price
		b.holdings[symbol] = h
	}
}

// RefreshPrices fetches the current price of every security holding from the
// quoter. A failed fetch leaves that holding on its last known price and is
// reported in the joined error; the refresh itself never fails the book.
func (b *Book) RefreshPrices(q Quoter) error {
	var errs error
	prices := make(map[string]Money)
	for symbol := range b.holdings {
		price, err := q.StockPrice(symbol)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not get price for %s: %w", symbol, err))
			continue
		}
		prices[symbol] = price
	}
	b.ApplyPrices(prices)
	return errs
}

// Borrow creates a loan: the principal is credited to cash with a ledger
// transaction, and the loan joins the book for per-minute interest ticks.
func (b *Book) Borrow(now Time, amount, interestPerMinute Money, minutes int) (Loan, error) {
	if !amount.IsPositive() {
		return Loan{}, fmt.Errorf("loan amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	if interestPerMinute.IsNegative() {
		return Loan{}, fmt.Errorf("loan interest must not be negative, got %s: %w", interestPerMinute, ErrInvalidAmount)
	}
	if minutes <= 0 {
		return Loan{}, fmt.Errorf("loan duration must be positive, got %d minutes: %w", minutes, ErrInvalidAmount)
	}

	loan := Loan{
		ID:                newLoanID(),
		Principal:         amount,
		Remaining:         amount,
		InterestPerMinute: interestPerMinute,
		MinutesLeft:       minutes,
	}
	b.loans = append(b.loans, loan)
	b.ledger.Append(NewTransaction(now, CategoryLoan, amount,
		fmt.Sprintf("Borrowed %s at %s/min for %d minutes", amount, interestPerMinute, minutes)))
	return loan, nil
}

// TickLoans applies one minute of interest to every active loan: the interest
// is debited from cash via a ledger transaction and the loan is decremented.
// Loans reaching zero remaining or zero minutes are removed after the tick.
//
// Processing is fail-soft: a problem in one loan is logged and does not abort
// the others.
func (b *Book) TickLoans(now Time) {
	var kept []Loan
	for i := range b.loans {
		loan := &b.loans[i]
		if err := b.tickLoan(now, loan); err != nil {
			log.Printf("loan %s tick error: %v", loan.ID, err)
			kept = append(kept, *loan)
			continue
		}
		if loan.Active() {
			kept = append(kept, *loan)
		} else {
			log.Printf("loan %s closed", loan.ID)
		}
	}
	b.loans = kept
}

func (b *Book) tickLoan(now Time, loan *Loan) error {
	if loan.InterestPerMinute.IsNegative() {
		return fmt.Errorf("interest per minute is negative: %w", ErrInvalidAmount)
	}
	interest := loan.tick()
	if !interest.IsZero() {
		b.ledger.Append(NewTransaction(now, CategoryLoanInterest, interest.Neg(),
			fmt.Sprintf("Loan interest on %s, %d minutes left", loan.ID, loan.MinutesLeft)))
	}
	return nil
}

// Repay pays amount off a loan from cash. The loan is removed when fully
// repaid. A rejected repayment leaves loan and cash unchanged.
func (b *Book) Repay(now Time, id string, amount Money) error {
	idx := -1
	for i, l := range b.loans {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("cannot repay loan %q: %w", id, ErrUnknownLoan)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("repay amount must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	if cash := b.CashBalance(); cash.LessThan(amount) {
		return fmt.Errorf("cannot repay %s, cash balance is %s: %w", amount, cash, ErrInsufficientFunds)
	}

	loan := &b.loans[idx]
	loan.repay(amount)
	b.ledger.Append(NewTransaction(now, CategoryLoanRepayment, amount.Neg(),
		fmt.Sprintf("Repayment on loan %s", id)))
	if !loan.Remaining.IsPositive() {
		b.loans = slices.Delete(b.loans, idx, idx+1)
	}
	return nil
}

// AddGoal registers a savings goal. Names are unique.
func (b *Book) AddGoal(name string, target Money, category string) error {
	if name == "" {
		return fmt.Errorf("goal name is missing: %w", ErrUnknownGoal)
	}
	if !target.IsPositive() {
		return fmt.Errorf("goal target must be positive, got %s: %w", target, ErrInvalidAmount)
	}
	if _, ok := b.Goal(name); ok {
		return fmt.Errorf("goal %q already exists", name)
	}
	b.goals = append(b.goals, Goal{Name: name, Target: target, Current: USD(0), Category: category})
	return nil
}

// UpdateGoal changes the target and category of an existing goal.
func (b *Book) UpdateGoal(name string, target Money, category string) error {
	if !target.IsPositive() {
		return fmt.Errorf("goal target must be positive, got %s: %w", target, ErrInvalidAmount)
	}
	for i, g := range b.goals {
		if g.Name == name {
			b.goals[i].Target = target
			b.goals[i].Category = category
			return nil
		}
	}
	return fmt.Errorf("cannot update goal %q: %w", name, ErrUnknownGoal)
}

// ContributeToGoal moves amount from cash into a goal via a ledger debit.
func (b *Book) ContributeToGoal(now Time, name string, amount Money) error {
	idx := -1
	for i, g := range b.goals {
		if g.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("cannot contribute to goal %q: %w", name, ErrUnknownGoal)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("contribution must be positive, got %s: %w", amount, ErrInvalidAmount)
	}
	if cash := b.CashBalance(); cash.LessThan(amount) {
		return fmt.Errorf("cannot contribute %s, cash balance is %s: %w", amount, cash, ErrInsufficientFunds)
	}

	b.goals[idx].Current = b.goals[idx].Current.Add(amount)
	b.ledger.Append(NewTransaction(now, CategorySavings, amount.Neg(),
		fmt.Sprintf("Contribution to %s", name)))
	return nil
}

// DeleteGoal removes a goal and returns its funded amount to cash.
func (b *Book) DeleteGoal(now Time, name string) error {
	for i, g := range b.goals {
		if g.Name == name {
			if g.Current.IsPositive() {
				b.ledger.Append(NewTransaction(now, CategorySavings, g.Current,
					fmt.Sprintf("Returned from deleted goal %s", name)))
			}
			b.goals = slices.Delete(b.goals, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("cannot delete goal %q: %w", name, ErrUnknownGoal)
}

package finboard

import "fmt"

// Cash interest accrual. A flat amount is credited to cash once per minute
// while the cash balance is positive. The book only computes "given the last
// credit time and now, effect the due ticks"; the caller owns the schedule.

// CatchUp credits the interest missed since LastInterestTime in a single
// transaction: floor(elapsed minutes) times the per-minute amount. It is
// meant to run once at startup, before regular ticking begins. The clock is
// advanced to now in every case, so a book with no positive cash does not
// accumulate a claim while idle.
//
// It returns the credited amount and the number of minutes covered.
func (b *Book) CatchUp(now Time) (Money, int) {
	minutes := now.MinutesSince(b.lastInterest)
	if minutes <= 0 {
		return USD(0), 0
	}
	if !b.CashBalance().IsPositive() {
		b.lastInterest = now
		return USD(0), 0
	}

	credited := b.interestPerMinute.Mul(Q(minutes))
	b.ledger.Append(NewTransaction(now, CategoryMissedInterest, credited,
		fmt.Sprintf("Interest for %d minutes offline", minutes)))
	b.lastInterest = now
	return credited, minutes
}

// TickInterest credits one minute of cash interest, when the cash balance is
// positive. Invoked once per real-time minute by the scheduler.
func (b *Book) TickInterest(now Time) Money {
	if !b.CashBalance().IsPositive() {
		b.lastInterest = now
		return USD(0)
	}
	b.ledger.Append(NewTransaction(now, CategoryInterest, b.interestPerMinute,
		"Interest credited to cash"))
	b.lastInterest = now
	return b.interestPerMinute
}

// Tick advances the book by one scheduler period: cash interest first, then
// the loan book. This mirrors the two per-minute schedulers of the dashboard
// firing on the same cadence.
func (b *Book) Tick(now Time) {
	b.TickInterest(now)
	b.TickLoans(now)
}

package finboard

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// Loan is a borrowed amount repaid by a fixed per-minute interest deduction.
//
// Lifecycle: created by Borrow, decremented by every loan tick, removed from
// the book when Remaining or MinutesLeft reaches zero.
type Loan struct {
	ID                string
	Principal         Money
	Remaining         Money
	InterestPerMinute Money
	MinutesLeft       int
}

// newLoanID returns a sortable unique loan identifier.
func newLoanID() string { return ulid.Make().String() }

// Active reports whether the loan still accrues interest.
func (l Loan) Active() bool {
	return l.Remaining.IsPositive() && l.MinutesLeft > 0
}

func (l Loan) String() string {
	return fmt.Sprintf("%s remaining %s at %s/min, %d min left",
		l.ID, l.Remaining, l.InterestPerMinute, l.MinutesLeft)
}

// tick applies one minute of interest: Remaining and MinutesLeft are
// decremented with a floor at zero. It returns the interest charged.
func (l *Loan) tick() Money {
	interest := l.InterestPerMinute
	l.Remaining = l.Remaining.Sub(interest)
	if l.Remaining.IsNegative() {
		l.Remaining = USD(0)
	}
	if l.MinutesLeft > 0 {
		l.MinutesLeft--
	}
	return interest
}

// repay reduces Remaining by amount, floored at zero.
func (l *Loan) repay(amount Money) {
	l.Remaining = l.Remaining.Sub(amount)
	if l.Remaining.IsNegative() {
		l.Remaining = USD(0)
	}
}

package finboard

import "errors"

// Sentinel errors returned by book mutations. They are always wrapped with
// context, so callers must test them with errors.Is.
var (
	// ErrInsufficientFunds is returned when a buy, repay or contribution
	// exceeds the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares is returned when a sell exceeds the held position.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrUnknownSymbol is returned when a holding lookup fails.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrUnknownLoan is returned when a loan id is not in the book.
	ErrUnknownLoan = errors.New("unknown loan")

	// ErrUnknownGoal is returned when a goal name is not in the book.
	ErrUnknownGoal = errors.New("unknown goal")

	// ErrInvalidAmount is returned for zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrPriceUnavailable is returned by quote providers. It is recoverable:
	// valuation falls back to the last known price.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrCorruptState is returned when the persisted state file cannot be
	// decoded. The file is preserved on disk, never overwritten silently.
	ErrCorruptState = errors.New("corrupt state file")
)

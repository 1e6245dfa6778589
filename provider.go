package finboard

import "github.com/shopspring/decimal"

// Quoter provides the latest traded price for a public symbol. Failures are
// recoverable: callers fall back to the last known price and report the
// error, they never treat it as fatal.
type Quoter interface {
	StockPrice(symbol string) (Money, error)
}

// RateSource provides foreign exchange rates between currency codes.
type RateSource interface {
	// Rate returns how many units of quote one unit of base buys.
	Rate(base, quote string) (decimal.Decimal, error)
}

// ConvertMoney converts an amount into the target currency using the rate
// source. Same-currency conversion is the identity.
func ConvertMoney(amount Money, to string, rates RateSource) (Money, error) {
	if amount.Currency() == to {
		return amount, nil
	}
	rate, err := rates.Rate(amount.Currency(), to)
	if err != nil {
		return Money{}, err
	}
	return amount.MulRate(rate, to), nil
}

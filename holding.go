package finboard

// CashSymbol is the synthetic holding that mirrors the ledger cash balance.
// Its price is pinned to 1.0 and never fetched.
const CashSymbol = "CASH"

// Holding is a position in a single security.
type Holding struct {
	Symbol       string
	Shares       Quantity
	AvgPrice     Money // blended cost basis across buys
	CurrentPrice Money // last observed market price, defaults to AvgPrice
}

// IsCash reports whether this is the synthetic cash holding.
func (h Holding) IsCash() bool { return h.Symbol == CashSymbol }

// Price returns the price used for valuation: the pinned 1.0 for CASH, the
// last observed market price otherwise, falling back to the cost basis when
// no market price was ever observed.
func (h Holding) Price() Money {
	if h.IsCash() {
		return USD(1)
	}
	if h.CurrentPrice.IsPositive() {
		return h.CurrentPrice
	}
	return h.AvgPrice
}

// MarketValue returns shares times the valuation price.
func (h Holding) MarketValue() Money {
	return h.Price().Mul(h.Shares)
}

// CostBasis returns shares times the average purchase price.
func (h Holding) CostBasis() Money {
	if h.IsCash() {
		return h.MarketValue()
	}
	return h.AvgPrice.Mul(h.Shares)
}

// UnrealizedGain returns MarketValue minus CostBasis.
func (h Holding) UnrealizedGain() Money {
	return h.MarketValue().Sub(h.CostBasis())
}

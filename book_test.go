package finboard

import (
	"errors"
	"testing"
	"time"
)

// newFundedBook returns a book with an opening balance.
func newFundedBook(t *testing.T, cash float64) *Book {
	t.Helper()
	b := NewBook(MustParseTime("2025-01-01T09:00:00"))
	b.Record(MustParseTime("2025-01-01T09:00:00"), "Opening", USD(cash), "")
	return b
}

func TestBuySellRoundTrip(t *testing.T) {
	b := newFundedBook(t, 10000)
	now := MustParseTime("2025-01-02T10:00:00")

	if err := b.Buy(now, "AAPL", Q(10), USD(150)); err != nil {
		t.Fatal(err)
	}
	if got, want := b.CashBalance(), USD(8500); !got.Equal(want) {
		t.Errorf("cash after buy = %s, want %s", got, want)
	}
	h, ok := b.Holding("AAPL")
	if !ok {
		t.Fatal("AAPL holding is missing")
	}
	if !h.Shares.Equal(Q(10)) || !h.AvgPrice.Equal(USD(150)) {
		t.Errorf("holding = %s shares at %s", h.Shares, h.AvgPrice)
	}

	if err := b.Sell(now.Add(time.Minute), "AAPL", Q(4)); err != nil {
		t.Fatal(err)
	}
	if got, want := b.CashBalance(), USD(9100); !got.Equal(want) {
		t.Errorf("cash after sell = %s, want %s", got, want)
	}
	h, _ = b.Holding("AAPL")
	if !h.Shares.Equal(Q(6)) {
		t.Errorf("shares after sell = %s, want 6", h.Shares)
	}

	// selling the rest removes the holding
	if err := b.Liquidate(now.Add(2*time.Minute), "AAPL"); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Holding("AAPL"); ok {
		t.Error("AAPL still held after liquidation")
	}
	if got, want := b.CashBalance(), USD(10000); !got.Equal(want) {
		t.Errorf("cash after liquidation = %s, want %s", got, want)
	}
}

func TestBuyBlendsAverageCost(t *testing.T) {
	b := newFundedBook(t, 10000)
	now := MustParseTime("2025-01-02T10:00:00")

	if err := b.Buy(now, "GOOG", Q(10), USD(100)); err != nil {
		t.Fatal(err)
	}
	if err := b.Buy(now.Add(time.Minute), "GOOG", Q(10), USD(200)); err != nil {
		t.Fatal(err)
	}

	h, _ := b.Holding("GOOG")
	// (10*100 + 10*200) / 20 = 150
	if !h.AvgPrice.Equal(USD(150)) {
		t.Errorf("blended average = %s, want $150.00", h.AvgPrice)
	}
	if !h.Shares.Equal(Q(20)) {
		t.Errorf("shares = %s, want 20", h.Shares)
	}
}

func TestBuyRejections(t *testing.T) {
	b := newFundedBook(t, 100)
	now := MustParseTime("2025-01-02T10:00:00")

	tests := []struct {
		name   string
		symbol string
		shares Quantity
		price  Money
		want   error
	}{
		{"insufficient funds", "AAPL", Q(10), USD(150), ErrInsufficientFunds},
		{"zero shares", "AAPL", Q(0), USD(150), ErrInvalidAmount},
		{"negative shares", "AAPL", Q(-1), USD(150), ErrInvalidAmount},
		{"zero price", "AAPL", Q(1), USD(0), ErrInvalidAmount},
		{"cash symbol", "CASH", Q(1), USD(1), ErrUnknownSymbol},
		{"empty symbol", "", Q(1), USD(1), ErrUnknownSymbol},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := b.Buy(now, tc.symbol, tc.shares, tc.price)
			if !errors.Is(err, tc.want) {
				t.Errorf("Buy: err = %v, want %v", err, tc.want)
			}
		})
	}

	// nothing changed
	if got, want := b.CashBalance(), USD(100); !got.Equal(want) {
		t.Errorf("cash = %s, want %s", got, want)
	}
}

func TestSellRejections(t *testing.T) {
	b := newFundedBook(t, 10000)
	now := MustParseTime("2025-01-02T10:00:00")
	if err := b.Buy(now, "AAPL", Q(5), USD(100)); err != nil {
		t.Fatal(err)
	}

	if err := b.Sell(now, "TSLA", Q(1)); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("sell unknown symbol: %v", err)
	}
	if err := b.Sell(now, "AAPL", Q(10)); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("oversell: %v", err)
	}
	if err := b.Sell(now, "AAPL", Q(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("sell zero: %v", err)
	}
}

func TestCashHoldingMirrorsLedger(t *testing.T) {
	b := newFundedBook(t, 1234)

	h, ok := b.Holding(CashSymbol)
	if !ok {
		t.Fatal("no CASH holding")
	}
	if !h.Price().Equal(USD(1)) {
		t.Errorf("CASH price = %s, want $1.00", h.Price())
	}
	if !h.MarketValue().Equal(USD(1234)) {
		t.Errorf("CASH value = %s, want $1,234.00", h.MarketValue())
	}

	// a fetched price can never move CASH
	b.ApplyPrices(map[string]Money{CashSymbol: USD(2)})
	h, _ = b.Holding(CashSymbol)
	if !h.Price().Equal(USD(1)) {
		t.Errorf("CASH price after ApplyPrices = %s, want $1.00", h.Price())
	}
}

func TestValuationCountsCashOnce(t *testing.T) {
	b := newFundedBook(t, 1000)
	now := MustParseTime("2025-01-02T10:00:00")
	if err := b.Buy(now, "AAPL", Q(2), USD(100)); err != nil {
		t.Fatal(err)
	}

	// 800 cash + 200 of AAPL
	if got, want := b.Valuation(), USD(1000); !got.Equal(want) {
		t.Errorf("Valuation() = %s, want %s", got, want)
	}

	b.ApplyPrices(map[string]Money{"AAPL": USD(150)})
	if got, want := b.Valuation(), USD(1100); !got.Equal(want) {
		t.Errorf("Valuation() after price move = %s, want %s", got, want)
	}
}

func TestNetWorthSubtractsLoans(t *testing.T) {
	b := newFundedBook(t, 1000)
	now := MustParseTime("2025-01-02T10:00:00")

	if _, err := b.Borrow(now, USD(500), USD(5), 100); err != nil {
		t.Fatal(err)
	}
	// borrowing is cash neutral for net worth
	if got, want := b.NetWorth(), USD(1000); !got.Equal(want) {
		t.Errorf("NetWorth() = %s, want %s", got, want)
	}
	if got, want := b.Valuation(), USD(1500); !got.Equal(want) {
		t.Errorf("Valuation() = %s, want %s", got, want)
	}
}

func TestRefreshPricesDegradesGracefully(t *testing.T) {
	b := newFundedBook(t, 10000)
	now := MustParseTime("2025-01-02T10:00:00")
	if err := b.Buy(now, "AAPL", Q(1), USD(100)); err != nil {
		t.Fatal(err)
	}
	if err := b.Buy(now, "FAIL", Q(1), USD(50)); err != nil {
		t.Fatal(err)
	}

	err := b.RefreshPrices(quoterFunc(func(symbol string) (Money, error) {
		if symbol == "FAIL" {
			return Money{}, ErrPriceUnavailable
		}
		return USD(120), nil
	}))
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("RefreshPrices error = %v, want ErrPriceUnavailable", err)
	}

	aapl, _ := b.Holding("AAPL")
	if !aapl.Price().Equal(USD(120)) {
		t.Errorf("AAPL price = %s, want $120.00", aapl.Price())
	}
	fail, _ := b.Holding("FAIL")
	if !fail.Price().Equal(USD(50)) {
		t.Errorf("FAIL price = %s, want its last known $50.00", fail.Price())
	}
}

// quoterFunc adapts a function to the Quoter interface.
type quoterFunc func(symbol string) (Money, error)

func (f quoterFunc) StockPrice(symbol string) (Money, error) { return f(symbol) }

package finboard

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeBook(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	b := NewBook(start)
	b.Record(start, "Opening", USD(10000), "seed money")
	if err := b.Buy(start, "AAPL", Q(10), USD(150)); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Borrow(start, USD(500), USD(5), 60); err != nil {
		t.Fatal(err)
	}
	if err := b.AddGoal("Vacation", USD(600), "Travel"); err != nil {
		t.Fatal(err)
	}
	if err := b.ContributeToGoal(start, "Vacation", USD(200)); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeBook(bytes.NewReader(buf.Bytes()), MustParseTime("2025-02-01T09:00:00"))
	if err != nil {
		t.Fatal(err)
	}

	if !got.CashBalance().Equal(b.CashBalance()) {
		t.Errorf("cash = %s, want %s", got.CashBalance(), b.CashBalance())
	}
	if got.Ledger().Len() != b.Ledger().Len() {
		t.Errorf("ledger has %d transactions, want %d", got.Ledger().Len(), b.Ledger().Len())
	}

	h, ok := got.Holding("AAPL")
	if !ok {
		t.Fatal("AAPL lost in round trip")
	}
	if !h.Shares.Equal(Q(10)) || !h.AvgPrice.Equal(USD(150)) {
		t.Errorf("AAPL = %s shares at %s", h.Shares, h.AvgPrice)
	}

	if len(got.Loans()) != 1 {
		t.Fatalf("loan book has %d loans, want 1", len(got.Loans()))
	}
	loan := got.Loans()[0]
	if !loan.Remaining.Equal(USD(500)) || loan.MinutesLeft != 60 {
		t.Errorf("loan = %s", loan)
	}

	g, ok := got.Goal("Vacation")
	if !ok {
		t.Fatal("goal lost in round trip")
	}
	if !g.Current.Equal(USD(200)) || g.Category != "Travel" {
		t.Errorf("goal = %+v", g)
	}

	if !got.LastInterestTime().Equal(b.LastInterestTime()) {
		t.Errorf("interest clock = %s, want %s", got.LastInterestTime(), b.LastInterestTime())
	}
}

func TestEncodeBookWritesCashMirror(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	b := NewBook(start)
	b.Record(start, "Opening", USD(42), "")

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatal(err)
	}
	state := buf.String()

	if !strings.Contains(state, `"cash_balance": 42`) {
		t.Errorf("no cash mirror in state:\n%s", state)
	}
	if !strings.Contains(state, `"CASH"`) {
		t.Errorf("no CASH entry in portfolio:\n%s", state)
	}
}

func TestDecodeBookTrustsLedgerOverMirror(t *testing.T) {
	// the stored cash_balance disagrees with the transaction sum: the
	// ledger wins.
	state := `{
		"portfolio": {"CASH": {"symbol":"CASH","shares":999,"avg_price":1,"current_price":1}},
		"goals": [],
		"loans": [],
		"cash_balance": 999,
		"transactions": [
			{"date":"2025-01-01T09:00:00","category":"Opening","amount":100}
		],
		"last_interest_time": "2025-01-01T09:00:00"
	}`

	b, err := DecodeBook(strings.NewReader(state), MustParseTime("2025-02-01T09:00:00"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := b.CashBalance(), USD(100); !got.Equal(want) {
		t.Errorf("cash = %s, want the ledger sum %s", got, want)
	}
	h, _ := b.Holding(CashSymbol)
	if !h.MarketValue().Equal(USD(100)) {
		t.Errorf("CASH value = %s, want $100.00", h.MarketValue())
	}
}

func TestDecodeBookGarbage(t *testing.T) {
	_, err := DecodeBook(strings.NewReader("{ not json"), Now())
	if !errors.Is(err, ErrCorruptState) {
		t.Fatalf("err = %v, want ErrCorruptState", err)
	}
}

func TestDecodeBookMissingClockStartsAtNow(t *testing.T) {
	now := MustParseTime("2025-02-01T09:00:00")
	b, err := DecodeBook(strings.NewReader(`{"transactions":[]}`), now)
	if err != nil {
		t.Fatal(err)
	}
	if !b.LastInterestTime().Equal(now) {
		t.Errorf("clock = %s, want %s", b.LastInterestTime(), now)
	}
}

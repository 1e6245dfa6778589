package finboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSaver records how many times the book was persisted.
type countingSaver struct {
	mu    sync.Mutex
	saves int
}

func (s *countingSaver) Save(*Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

func TestServiceSavesAfterMutation(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	saver := &countingSaver{}
	svc := NewService(NewBook(start), saver, nil)

	require.NoError(t, svc.Record(start, "Opening", USD(100), ""))
	require.NoError(t, svc.Buy(start, "AAPL", Q(1), USD(50)))
	assert.Equal(t, 2, saver.saves)

	// a rejected mutation does not save
	err := svc.Buy(start, "AAPL", Q(1000), USD(50))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 2, saver.saves)
}

func TestServiceSaveFailureSurfaces(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	boom := errors.New("disk full")
	svc := NewService(NewBook(start), saverFunc(func(*Book) error { return boom }), nil)

	err := svc.Record(start, "Opening", USD(100), "")
	assert.ErrorIs(t, err, boom)
}

func TestServiceConcurrentMutations(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	saver := &countingSaver{}
	svc := NewService(NewBook(start), saver, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Record(start, "Deposit", USD(1), ""))
		}()
	}
	wg.Wait()

	svc.View(func(b *Book) {
		assert.True(t, b.CashBalance().Equal(USD(50)),
			"cash = %s, want $50.00", b.CashBalance())
	})
	assert.Equal(t, 50, saver.saves)
}

func TestServiceRefreshPrices(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	book := NewBook(start)
	book.Record(start, "Opening", USD(10000), "")
	require.NoError(t, book.Buy(start, "AAPL", Q(1), USD(100)))
	require.NoError(t, book.Buy(start, "FAIL", Q(1), USD(50)))

	saver := &countingSaver{}
	svc := NewService(book, saver, quoterFunc(func(symbol string) (Money, error) {
		if symbol == "FAIL" {
			return Money{}, ErrPriceUnavailable
		}
		return USD(130), nil
	}))

	err := svc.RefreshPrices(context.Background())
	assert.ErrorIs(t, err, ErrPriceUnavailable)

	svc.View(func(b *Book) {
		aapl, _ := b.Holding("AAPL")
		assert.True(t, aapl.Price().Equal(USD(130)))
		fail, _ := b.Holding("FAIL")
		assert.True(t, fail.Price().Equal(USD(50)), "failed symbol keeps its last price")
	})
	// the partial result was still applied and saved
	assert.Equal(t, 1, saver.saves)
}

func TestServiceBorrowAndRepay(t *testing.T) {
	start := MustParseTime("2025-01-01T09:00:00")
	svc := NewService(NewBook(start), &countingSaver{}, nil)

	loan, err := svc.Borrow(start, USD(1000), USD(5), 10)
	require.NoError(t, err)
	require.NotEmpty(t, loan.ID)

	require.NoError(t, svc.Repay(start, loan.ID, USD(1000)))
	svc.View(func(b *Book) {
		assert.Empty(t, b.Loans())
		assert.True(t, b.CashBalance().IsZero())
	})
}

// saverFunc adapts a function to the Saver interface.
type saverFunc func(*Book) error

func (f saverFunc) Save(b *Book) error { return f(b) }

package finboard

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Saver persists a book after each mutation. Store implements it.
type Saver interface {
	Save(*Book) error
}

// Service serializes access to a book behind a single mutex, so that the
// ticker, the price refresher, and user commands never interleave a mutation.
// Every successful mutation is saved before the lock is released.
type Service struct {
	mu     sync.Mutex
	book   *Book
	saver  Saver
	quoter Quoter
}

// NewService wraps a book. saver and quoter may be nil, disabling persistence
// and price refresh respectively.
func NewService(book *Book, saver Saver, quoter Quoter) *Service {
	return &Service{book: book, saver: saver, quoter: quoter}
}

// Do runs fn with exclusive access to the book and saves afterwards when fn
// succeeds. Fn must not retain the book past its return.
func (s *Service) Do(fn func(b *Book) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.book); err != nil {
		return err
	}
	return s.save()
}

// View runs fn with exclusive read access to the book, without saving.
func (s *Service) View(fn func(b *Book)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.book)
}

func (s *Service) save() error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.book); err != nil {
		return fmt.Errorf("could not save state: %w", err)
	}
	return nil
}

// Record appends a manual transaction.
func (s *Service) Record(date Time, category string, amount Money, description string) error {
	return s.Do(func(b *Book) error {
		b.Record(date, category, amount, description)
		return nil
	})
}

// Buy purchases shares, see Book.Buy.
func (s *Service) Buy(now Time, symbol string, shares Quantity, price Money) error {
	return s.Do(func(b *Book) error { return b.Buy(now, symbol, shares, price) })
}

// Sell disposes shares, see Book.Sell.
func (s *Service) Sell(now Time, symbol string, shares Quantity) error {
	return s.Do(func(b *Book) error { return b.Sell(now, symbol, shares) })
}

// Liquidate sells an entire position, see Book.Liquidate.
func (s *Service) Liquidate(now Time, symbol string) error {
	return s.Do(func(b *Book) error { return b.Liquidate(now, symbol) })
}

// Borrow creates a loan, see Book.Borrow.
func (s *Service) Borrow(now Time, amount, interestPerMinute Money, minutes int) (Loan, error) {
	var loan Loan
	err := s.Do(func(b *Book) error {
		var err error
		loan, err = b.Borrow(now, amount, interestPerMinute, minutes)
		return err
	})
	return loan, err
}

// Repay pays down a loan, see Book.Repay.
func (s *Service) Repay(now Time, id string, amount Money) error {
	return s.Do(func(b *Book) error { return b.Repay(now, id, amount) })
}

// AddGoal registers a savings goal.
func (s *Service) AddGoal(name string, target Money, category string) error {
	return s.Do(func(b *Book) error { return b.AddGoal(name, target, category) })
}

// UpdateGoal changes an existing goal.
func (s *Service) UpdateGoal(name string, target Money, category string) error {
	return s.Do(func(b *Book) error { return b.UpdateGoal(name, target, category) })
}

// ContributeToGoal funds a goal from cash.
func (s *Service) ContributeToGoal(now Time, name string, amount Money) error {
	return s.Do(func(b *Book) error { return b.ContributeToGoal(now, name, amount) })
}

// DeleteGoal removes a goal and returns its funds to cash.
func (s *Service) DeleteGoal(now Time, name string) error {
	return s.Do(func(b *Book) error { return b.DeleteGoal(now, name) })
}

// CatchUp credits the interest missed since the last recorded tick, in a
// single transaction, see Book.CatchUp.
func (s *Service) CatchUp(now Time) (credited Money, minutes int, err error) {
	err = s.Do(func(b *Book) error {
		credited, minutes = b.CatchUp(now)
		return nil
	})
	return credited, minutes, err
}

// Tick runs one accrual minute: cash interest first, then every loan.
func (s *Service) Tick(now Time) error {
	return s.Do(func(b *Book) error {
		b.Tick(now)
		return nil
	})
}

// RefreshPrices fetches current prices for all security holdings and applies
// them. The fetches run concurrently outside the lock; only the application
// of the results mutates the book. Symbols that fail keep their last known
// price and are reported in the returned error.
func (s *Service) RefreshPrices(ctx context.Context) error {
	if s.quoter == nil {
		return nil
	}

	var symbols []string
	s.View(func(b *Book) {
		for h := range b.Holdings() {
			if !h.IsCash() {
				symbols = append(symbols, h.Symbol)
			}
		}
	})
	if len(symbols) == 0 {
		return nil
	}

	var mu sync.Mutex
	prices := make(map[string]Money, len(symbols))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, symbol := range symbols {
		g.Go(func() error {
			price, err := s.quoter.StockPrice(symbol)
			if err != nil {
				return fmt.Errorf("could not get price for %s: %w", symbol, err)
			}
			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	ferr := g.Wait()

	if len(prices) > 0 {
		if err := s.Do(func(b *Book) error {
			b.ApplyPrices(prices)
			return nil
		}); err != nil {
			return err
		}
	}
	return ferr
}

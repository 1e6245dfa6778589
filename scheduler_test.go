package finboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSchedulerTicksUntilCancelled(t *testing.T) {
	start := Now().Add(-5 * time.Minute)
	book := NewBook(start)
	book.Record(start, "Opening", USD(100), "")
	svc := NewService(book, nil, nil)

	scheduler := NewScheduler(svc, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := scheduler.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run returned %v", err)
	}

	svc.View(func(b *Book) {
		// catch-up covered the 5 offline minutes, then at least one tick ran
		if b.CashBalance().LessThan(USD(160)) {
			t.Errorf("cash = %s, want at least $160.00", b.CashBalance())
		}
		missed := 0
		for range b.Ledger().Transactions(ByCategory(CategoryMissedInterest)) {
			missed++
		}
		if missed != 1 {
			t.Errorf("catch-up wrote %d transactions, want 1", missed)
		}
	})
}

package finboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// brokenERAPI returns a rate source whose fetches always fail, so that only
// the cache file can answer.
func brokenERAPI(t *testing.T) *ERAPI {
	t.Helper()
	return &ERAPI{
		client:    &http.Client{Timeout: time.Nanosecond},
		cacheFile: filepath.Join(t.TempDir(), "rates.json"),
	}
}

func writeRateCache(t *testing.T, a *ERAPI, base string, age time.Duration, rates map[string]float64) {
	t.Helper()
	content, err := json.Marshal(ratesFile{
		Base:      base,
		Timestamp: time.Now().Add(-age).Unix(),
		Rates:     rates,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(a.cacheFile, content, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestERAPIFallsBackToFreshCache(t *testing.T) {
	a := brokenERAPI(t)
	writeRateCache(t, a, "USD", time.Minute, map[string]float64{"EUR": 0.9, "USD": 1})

	rate, err := a.Rate("USD", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if !rate.Equal(decimal.NewFromFloat(0.9)) {
		t.Errorf("rate = %s, want 0.9", rate)
	}
}

func TestERAPIRejectsStaleCache(t *testing.T) {
	a := brokenERAPI(t)
	writeRateCache(t, a, "USD", time.Hour, map[string]float64{"EUR": 0.9})

	_, err := a.Rate("USD", "EUR")
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestERAPIRejectsCacheForOtherBase(t *testing.T) {
	a := brokenERAPI(t)
	writeRateCache(t, a, "EUR", time.Minute, map[string]float64{"USD": 1.1})

	_, err := a.Rate("USD", "EUR")
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestERAPIUnknownQuote(t *testing.T) {
	a := brokenERAPI(t)
	writeRateCache(t, a, "USD", time.Minute, map[string]float64{"EUR": 0.9})

	_, err := a.Rate("USD", "XXX")
	if !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("err = %v, want ErrPriceUnavailable", err)
	}
}

func TestConvertMoney(t *testing.T) {
	a := brokenERAPI(t)
	writeRateCache(t, a, "USD", time.Minute, map[string]float64{"EUR": 0.5})

	got, err := ConvertMoney(USD(100), "EUR", a)
	if err != nil {
		t.Fatal(err)
	}
	if got.Currency() != "EUR" {
		t.Errorf("currency = %s, want EUR", got.Currency())
	}
	if !got.Equal(M(50, "EUR")) {
		t.Errorf("converted = %s, want 50 EUR", got)
	}

	// same-currency conversion never needs a rate
	same, err := ConvertMoney(USD(100), "USD", brokenERAPI(t))
	if err != nil {
		t.Fatal(err)
	}
	if !same.Equal(USD(100)) {
		t.Errorf("identity conversion = %s", same)
	}
}

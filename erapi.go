package finboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	erAPIURL = "https://open.er-api.com/v6/latest"

	// rateCacheTTL bounds how stale a cached rate table may be before a
	// failed fetch stops falling back to it.
	rateCacheTTL = 10 * time.Minute
)

// ERAPI fetches foreign exchange rates from open.er-api.com. The latest rate
// table per base currency is cached in a JSON file, and a network failure
// falls back to a fresh-enough cached table so that conversion keeps working
// through transient outages.
type ERAPI struct {
	client    *http.Client
	cacheFile string
}

// NewERAPI returns a rate source with a timeout-bounded client. The cache
// file lives in the user cache directory.
func NewERAPI(timeout time.Duration) *ERAPI {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return &ERAPI{
		client:    &http.Client{Timeout: timeout},
		cacheFile: filepath.Join(dir, "finboard-rates.json"),
	}
}

var _ RateSource = (*ERAPI)(nil)

// ratesFile is the cached rate table layout, one file per base currency.
type ratesFile struct {
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// Rates returns the full rate table for a base currency, falling back to the
// cached table when the fetch fails.
func (a *ERAPI) Rates(base string) (map[string]float64, error) {
	var response struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	err := jwget(a.client, erAPIURL+"/"+url.PathEscape(base), &response)
	if err == nil && response.Result != "success" {
		err = fmt.Errorf("rate API returned %q", response.Result)
	}
	if err == nil && response.Rates == nil {
		err = fmt.Errorf("unexpected rate API response format")
	}
	if err != nil {
		if cached, cerr := a.cachedRates(base); cerr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("could not fetch rates for %s: %v: %w", base, err, ErrPriceUnavailable)
	}

	a.storeRates(base, response.Rates)
	return response.Rates, nil
}

// Rate returns how many units of quote one unit of base buys.
func (a *ERAPI) Rate(base, quote string) (decimal.Decimal, error) {
	rates, err := a.Rates(base)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, ok := rates[quote]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no rate from %s to %s: %w", base, quote, ErrPriceUnavailable)
	}
	return decimal.NewFromFloat(rate), nil
}

// Currencies returns the sorted list of currency codes the source supports.
func (a *ERAPI) Currencies() ([]string, error) {
	rates, err := a.Rates(BaseCurrency)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

func (a *ERAPI) cachedRates(base string) (map[string]float64, error) {
	content, err := os.ReadFile(a.cacheFile)
	if err != nil {
		return nil, err
	}
	var cached ratesFile
	if err := json.Unmarshal(content, &cached); err != nil {
		return nil, err
	}
	if cached.Base != base {
		return nil, fmt.Errorf("cached rates are for %s not %s", cached.Base, base)
	}
	if time.Since(time.Unix(cached.Timestamp, 0)) > rateCacheTTL {
		return nil, fmt.Errorf("cached rates for %s are stale", base)
	}
	return cached.Rates, nil
}

func (a *ERAPI) storeRates(base string, rates map[string]float64) {
	content, err := json.Marshal(ratesFile{Base: base, Timestamp: time.Now().Unix(), Rates: rates})
	if err != nil {
		return
	}
	// cache write failures are ignored, the next Rate call just refetches
	_ = os.WriteFile(a.cacheFile, content, 0644)
}

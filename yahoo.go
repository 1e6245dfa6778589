package finboard

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// quoteCacheTTL keeps intraday quotes for a short while, so redrawing a
// summary does not hammer the provider.
const quoteCacheTTL = 10 * time.Minute

// YahooQuoter fetches the latest traded price from the public Yahoo finance
// chart endpoint.
type YahooQuoter struct {
	client *http.Client
}

// NewYahooQuoter returns a quoter with a timeout-bounded, disk-cached client.
func NewYahooQuoter(timeout time.Duration) *YahooQuoter {
	return &YahooQuoter{client: cachedClient(timeout, quoteCacheTTL)}
}

var _ Quoter = (*YahooQuoter)(nil)

// StockPrice returns the latest regular market price for the symbol, in the
// base currency. All failures are wrapped as ErrPriceUnavailable.
func (y *YahooQuoter) StockPrice(symbol string) (Money, error) {
	addr := "https://query1.finance.yahoo.com/v8/finance/chart/" + url.PathEscape(symbol) + "?range=1d&interval=1d"

	var jobj any
	if err := jwget(y.client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error in wget %q: %v: %w", symbol, err, ErrPriceUnavailable)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing %q: %q %v: %w", symbol, path, err, ErrPriceUnavailable)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return Money{}, fmt.Errorf("error parsing %q: %q not a float %v: %w", symbol, path, jval, ErrPriceUnavailable)
	}
	if val == 0 {
		// the endpoint returns 0 for halted or delisted symbols
		return Money{}, fmt.Errorf("empty price for %s: %w", symbol, ErrPriceUnavailable)
	}
	return USD(val), nil
}

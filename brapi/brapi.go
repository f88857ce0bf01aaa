// Package brapi fetches B3 quotes from the brapi.dev API.
//
// The free tier covers delayed quotes and the trailing dividend history,
// which is all the engine needs. Responses are cached on disk for a day so
// that rendering a summary several times does not burn the request quota.
package brapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/andrelq/carteira"
	"github.com/andrelq/carteira/date"
	"github.com/shopspring/decimal"
)

// ErrQuoteUnavailable reports that the API answered but had no usable price
// for the ticker. A missing quote is never a zero price.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// FetchQuote retrieves the current quote and dividend history for one B3
// ticker (e.g. "PETR4", "HGLG11"). The token comes from the BRAPI_TOKEN
// environment, loaded by the caller.
func FetchQuote(token, ticker string) (carteira.Quote, error) {
	addr := fmt.Sprintf("https://brapi.dev/api/quote/%s?fundamental=true&dividends=true&token=%s", ticker, token)

	var jobj any
	if err := jwget(newDailyCachingClient(), addr, &jobj); err != nil {
		return carteira.Quote{}, fmt.Errorf("cannot fetch quote for %q: %w", ticker, err)
	}
	return parseQuote(ticker, jobj)
}

// parseQuote extracts a quote from the decoded API payload. Split from
// FetchQuote so it can be exercised on captured payloads without network.
func parseQuote(ticker string, jobj any) (carteira.Quote, error) {
	price, err := floatAt(jobj, "$.results[0].regularMarketPrice")
	if err != nil || price <= 0 {
		return carteira.Quote{}, fmt.Errorf("%s: %w", ticker, ErrQuoteUnavailable)
	}

	q := carteira.Quote{
		Ticker:  ticker,
		Price:   price,
		Updated: date.Today(),
	}
	// The remaining fields are nice to have, their absence is not an error.
	if prev, err := floatAt(jobj, "$.results[0].regularMarketPreviousClose"); err == nil {
		q.PreviousClose = prev
	}
	if t, err := jsonpath.Get("$.results[0].regularMarketTime", jobj); err == nil {
		if s, ok := first(t).(string); ok && len(s) >= len(date.DateFormat) {
			if d, err := date.Parse(s[:len(date.DateFormat)]); err == nil {
				q.Updated = d
			}
		}
	}
	q.Dividends = parseDividends(jobj)
	return q, nil
}

// cashDividend is one entry of the API's dividendsData.cashDividends list.
// Rates come as JSON numbers that decimal reads without float rounding.
type cashDividend struct {
	PaymentDate string          `json:"paymentDate"`
	Rate        decimal.Decimal `json:"rate"`
	Label       string          `json:"label"`
}

// parseDividends collects the per-share cash payments, skipping entries with
// no payment date or a non-positive rate. Order is left as the API sent it.
func parseDividends(jobj any) []carteira.DividendPayment {
	jval, err := jsonpath.Get("$.results[0].dividendsData.cashDividends", jobj)
	if err != nil {
		return nil
	}
	// round-trip through json to read the loosely typed list into structs
	raw, err := json.Marshal(jval)
	if err != nil {
		return nil
	}
	var entries []cashDividend
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	var payments []carteira.DividendPayment
	for _, e := range entries {
		if len(e.PaymentDate) < len(date.DateFormat) || !e.Rate.IsPositive() {
			continue
		}
		d, err := date.Parse(e.PaymentDate[:len(date.DateFormat)])
		if err != nil {
			continue
		}
		payments = append(payments, carteira.DividendPayment{Date: d, Amount: e.Rate.InexactFloat64()})
	}
	return payments
}

// floatAt reads a float at a jsonpath, accepting the number-as-string answers
// this kind of API occasionally produces.
func floatAt(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("cannot read %q: %w", path, err)
	}
	jval = first(jval)

	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		v = strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read %q: invalid number %q: %w", path, v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot read %q: not a number: %v", path, jval)
	}
}

// first unwraps the single-element list answers jsonpath sometimes returns.
func first(jval any) any {
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		return jlist[0]
	}
	return jval
}

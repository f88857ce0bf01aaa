// Package bcb reads Brazilian reference rates from the Banco Central do
// Brasil SGS open-data API.
//
// Only the last published value of each series is needed: CDI and Selic as
// annual percentages, and the IPCA twelve-month accumulated for the inflation
// proxy. The API needs no token.
package bcb

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andrelq/carteira"
	"github.com/andrelq/carteira/date"
)

// SGS series codes. See https://dadosabertos.bcb.gov.br.
const (
	SeriesCDI       = 4389  // CDI accumulated in the month, annualized (% a.a.)
	SeriesSelic     = 1178  // Selic target (% a.a.)
	SeriesIPCA12mo  = 13522 // IPCA accumulated over twelve months (%)
	seriesURLFormat = "https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados/ultimos/1?formato=json"
)

// observation is one entry of an SGS series. Both fields come as strings,
// the date in dd/MM/yyyy and the value with a dot decimal mark.
type observation struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// FetchRates reads the three series and assembles the engine's reference
// rates. Any failure degrades to the built-in defaults with a warning on
// stderr: a summary with slightly stale rates beats no summary.
func FetchRates() carteira.ReferenceRates {
	rates, err := fetchRates(http.DefaultClient)
	if err != nil {
		log.Printf("cannot fetch reference rates, using defaults: %v", err)
		return carteira.DefaultRates()
	}
	return rates
}

func fetchRates(client *http.Client) (carteira.ReferenceRates, error) {
	cdi, updated, err := fetchLast(client, SeriesCDI)
	if err != nil {
		return carteira.ReferenceRates{}, err
	}
	selic, _, err := fetchLast(client, SeriesSelic)
	if err != nil {
		return carteira.ReferenceRates{}, err
	}
	ipca, _, err := fetchLast(client, SeriesIPCA12mo)
	if err != nil {
		return carteira.ReferenceRates{}, err
	}
	return carteira.ReferenceRates{CDI: cdi, Selic: selic, Inflation: ipca, Updated: updated}, nil
}

// fetchLast downloads the most recent observation of one series.
func fetchLast(client *http.Client, series int) (float64, date.Date, error) {
	addr := fmt.Sprintf(seriesURLFormat, series)

	resp, err := client.Get(addr)
	if err != nil {
		return 0, date.Date{}, fmt.Errorf("cannot fetch SGS series %d: %w", series, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, date.Date{}, fmt.Errorf("cannot fetch SGS series %d: %s", series, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, date.Date{}, fmt.Errorf("cannot read SGS series %d: %w", series, err)
	}
	return parseLast(series, body)
}

// parseLast decodes a one-observation SGS answer. Split from fetchLast so it
// can be exercised on captured payloads without network.
func parseLast(series int, body []byte) (float64, date.Date, error) {
	var obs []observation
	if err := json.Unmarshal(body, &obs); err != nil {
		return 0, date.Date{}, fmt.Errorf("cannot decode SGS series %d: %w", series, err)
	}
	if len(obs) == 0 {
		return 0, date.Date{}, fmt.Errorf("SGS series %d: empty answer", series)
	}
	last := obs[len(obs)-1]

	value, err := strconv.ParseFloat(strings.TrimSpace(last.Valor), 64)
	if err != nil {
		return 0, date.Date{}, fmt.Errorf("SGS series %d: invalid value %q: %w", series, last.Valor, err)
	}
	updated, err := parseBCBDate(last.Data)
	if err != nil {
		return 0, date.Date{}, fmt.Errorf("SGS series %d: %w", series, err)
	}
	return value, updated, nil
}

// parseBCBDate reads the API's dd/MM/yyyy dates.
func parseBCBDate(s string) (date.Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid day in date %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid month in date %q: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid year in date %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return date.New(year, time.Month(month), day), nil
}

package carteira

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrelq/carteira/date"
	"github.com/google/uuid"
)

// This file persists the book in a folder of JSONL files, one entity kind per
// file, in a way that is human-readable and git-friendly. Entities marshal
// with a stable field order so that diffs stay small.

const (
	positionsFilename   = "positions.jsonl"
	fixedIncomeFilename = "fixedincome.jsonl"
	loansFilename       = "loans.jsonl"
	quotesFilename      = "quotes.jsonl"
	ratesFilename       = "rates.jsonl"
)

// MarshalJSON encodes the position with a stable field order.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", p.Ticker)
	w.Optional("name", p.Name)
	w.Append("class", p.Class)
	w.Append("quantity", p.Quantity)
	w.Append("averagePrice", p.AveragePrice)
	return w.MarshalJSON()
}

// jposition is the read-side counterpart of Position.MarshalJSON.
type jposition struct {
	Ticker       string     `json:"ticker"`
	Name         string     `json:"name"`
	Class        AssetClass `json:"class"`
	Quantity     float64    `json:"quantity"`
	AveragePrice float64    `json:"averagePrice"`
}

func (p *Position) UnmarshalJSON(b []byte) error {
	var j jposition
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*p = Position{Ticker: j.Ticker, Name: j.Name, Class: j.Class, Quantity: j.Quantity, AveragePrice: j.AveragePrice}
	return nil
}

// MarshalJSON encodes the holding with a stable field order.
func (p FixedIncomePosition) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("type", p.Type)
	w.Append("principal", p.Principal)
	w.Optional("applicationDate", p.ApplicationDate)
	w.Append("index", p.Index)
	if p.ContractedRate != nil {
		w.Append("rate", *p.ContractedRate)
	}
	w.Optional("manualCurrentValue", p.ManualCurrentValue)
	return w.MarshalJSON()
}

type jfixedIncome struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Type               InstrumentType `json:"type"`
	Principal          float64        `json:"principal"`
	ApplicationDate    date.Date      `json:"applicationDate"`
	Index              Index          `json:"index"`
	Rate               *float64       `json:"rate"`
	ManualCurrentValue float64        `json:"manualCurrentValue"`
}

func (p *FixedIncomePosition) UnmarshalJSON(b []byte) error {
	var j jfixedIncome
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*p = FixedIncomePosition{
		ID:                 j.ID,
		Name:               j.Name,
		Type:               j.Type,
		Principal:          j.Principal,
		ApplicationDate:    j.ApplicationDate,
		Index:              j.Index,
		ContractedRate:     j.Rate,
		ManualCurrentValue: j.ManualCurrentValue,
	}
	return nil
}

// MarshalJSON encodes the contract with a stable field order.
func (c LoanContract) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Append("principal", c.Principal)
	w.Append("annualRate", c.AnnualNominalRate)
	w.Append("termMonths", c.TermMonths)
	w.Optional("startDate", c.StartDate)
	w.Optional("knownInstalment", c.KnownInstalment)
	w.Optional("knownBalance", c.KnownBalance)
	if c.KnownRemainingMonths != nil {
		w.Append("knownRemainingMonths", *c.KnownRemainingMonths)
	}
	w.Optional("dueDay", c.DueDay)
	w.Optional("lastProcessed", c.LastProcessed)
	return w.MarshalJSON()
}

type jloan struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Principal            float64   `json:"principal"`
	AnnualRate           float64   `json:"annualRate"`
	TermMonths           int       `json:"termMonths"`
	StartDate            date.Date `json:"startDate"`
	KnownInstalment      float64   `json:"knownInstalment"`
	KnownBalance         float64   `json:"knownBalance"`
	KnownRemainingMonths *int      `json:"knownRemainingMonths"`
	DueDay               int       `json:"dueDay"`
	LastProcessed        string    `json:"lastProcessed"`
}

func (c *LoanContract) UnmarshalJSON(b []byte) error {
	var j jloan
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*c = LoanContract{
		ID:                   j.ID,
		Name:                 j.Name,
		Principal:            j.Principal,
		AnnualNominalRate:    j.AnnualRate,
		TermMonths:           j.TermMonths,
		StartDate:            j.StartDate,
		KnownInstalment:      j.KnownInstalment,
		KnownBalance:         j.KnownBalance,
		KnownRemainingMonths: j.KnownRemainingMonths,
		DueDay:               j.DueDay,
		LastProcessed:        j.LastProcessed,
	}
	return nil
}

// MarshalJSON encodes the quote with a stable field order.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", q.Ticker)
	w.Append("price", q.Price)
	w.Optional("previousClose", q.PreviousClose)
	w.Optional("updated", q.Updated)
	if len(q.Dividends) > 0 {
		w.Append("dividends", q.Dividends)
	}
	return w.MarshalJSON()
}

type jquote struct {
	Ticker        string            `json:"ticker"`
	Price         float64           `json:"price"`
	PreviousClose float64           `json:"previousClose"`
	Updated       date.Date         `json:"updated"`
	Dividends     []DividendPayment `json:"dividends"`
}

func (q *Quote) UnmarshalJSON(b []byte) error {
	var j jquote
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*q = Quote{Ticker: j.Ticker, Price: j.Price, PreviousClose: j.PreviousClose, Updated: j.Updated, Dividends: j.Dividends}
	return nil
}

// EncodeBook writes the whole book into dir, creating it if needed. Files for
// empty entity lists are still written, so a fresh book leaves a complete
// folder behind.
func EncodeBook(dir string, b *Book) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create book folder %q: %w", dir, err)
	}

	if err := encodeLines(filepath.Join(dir, positionsFilename), b.Positions); err != nil {
		return err
	}
	if err := encodeLines(filepath.Join(dir, fixedIncomeFilename), b.FixedIncome); err != nil {
		return err
	}
	if err := encodeLines(filepath.Join(dir, loansFilename), b.Loans); err != nil {
		return err
	}

	// Quotes are written in ticker order for stable diffs.
	quotes := make([]Quote, 0, len(b.Quotes))
	for _, p := range b.Positions {
		if q, ok := b.Quotes[p.Ticker]; ok {
			quotes = append(quotes, q)
		}
	}
	if err := encodeLines(filepath.Join(dir, quotesFilename), quotes); err != nil {
		return err
	}

	return encodeLines(filepath.Join(dir, ratesFilename), []ReferenceRates{b.Rates})
}

// encodeLines writes one JSON object per line.
func encodeLines[T any](filename string, items []T) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, item := range items {
		line, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("cannot encode entry for %q: %w", filename, err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}

// DecodeBook reads a book from dir. Missing files are treated as empty lists,
// so a brand new folder decodes into an empty book.
func DecodeBook(dir string) (*Book, error) {
	b := NewBook()

	if err := decodeLines(filepath.Join(dir, positionsFilename), &b.Positions); err != nil {
		return nil, err
	}
	if err := decodeLines(filepath.Join(dir, fixedIncomeFilename), &b.FixedIncome); err != nil {
		return nil, err
	}
	if err := decodeLines(filepath.Join(dir, loansFilename), &b.Loans); err != nil {
		return nil, err
	}

	var quotes []Quote
	if err := decodeLines(filepath.Join(dir, quotesFilename), &quotes); err != nil {
		return nil, err
	}
	for _, q := range quotes {
		b.SetQuote(q)
	}

	var rates []ReferenceRates
	if err := decodeLines(filepath.Join(dir, ratesFilename), &rates); err != nil {
		return nil, err
	}
	if len(rates) > 0 && !rates[0].IsZero() {
		b.Rates = rates[0]
	}
	return b, nil
}

// decodeLines reads a JSONL file into a slice, one object per line, skipping
// blank lines. Format errors name the file and the offending line.
func decodeLines[T any](filename string, into *[]T) error {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	return decodeReader(filename, f, into)
}

func decodeReader[T any](filename string, r io.Reader, into *[]T) error {
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return fmt.Errorf("format error in %q line %d: %w", filename, i, err)
		}
		*into = append(*into, item)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return nil
}

// The view types are served as JSON by the read-only API. They embed the
// recorded entities, whose MarshalJSON would otherwise promote and hide the
// computed fields, so they marshal explicitly.

func (a CalculatedAsset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", a.Ticker)
	w.Optional("name", a.Name)
	w.Append("class", a.Class)
	w.Append("quantity", a.Quantity)
	w.Append("averagePrice", a.AveragePrice)
	w.Append("price", a.Price)
	w.Append("currentValue", a.CurrentValue)
	w.Append("profitLoss", a.ProfitLoss)
	w.Append("profitLossPct", a.ProfitLossPct)
	w.Append("dividendsTTM", a.DividendsTTM)
	w.Append("dividendYield", a.DividendYield)
	w.Append("weight", a.Weight)
	return w.MarshalJSON()
}

func (v FixedIncomeView) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", v.ID)
	w.Append("name", v.Name)
	w.Append("type", v.Type)
	w.Append("principal", v.Principal)
	w.Optional("applicationDate", v.ApplicationDate)
	w.Append("index", v.Index)
	if v.ContractedRate != nil {
		w.Append("rate", *v.ContractedRate)
	}
	w.Append("value", v.Valuation.Amount)
	w.Append("source", v.Valuation.Source.String())
	w.Append("profitLoss", v.ProfitLoss)
	return w.MarshalJSON()
}

func (v LoanView) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", v.ID)
	w.Append("name", v.Name)
	w.Append("principal", v.Principal)
	w.Append("annualRate", v.AnnualNominalRate)
	w.Append("termMonths", v.TermMonths)
	w.Optional("startDate", v.StartDate)
	w.Append("instalment", v.Snapshot.Instalment)
	w.Append("balance", v.Snapshot.OutstandingBalance)
	w.Append("totalInterest", v.Snapshot.TotalInterest)
	w.Append("remainingMonths", v.Snapshot.RemainingMonths)
	w.Append("elapsedMonths", v.Snapshot.ElapsedMonths)
	w.Optional("payoffDate", v.Snapshot.PayoffDate)
	w.Append("source", v.Snapshot.Source.String())
	return w.MarshalJSON()
}

func (r Review) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("equityTotal", r.EquityTotal)
	w.Append("fixedIncomeTotal", r.FixedIncomeTotal)
	w.Append("grossAssets", r.GrossAssets)
	w.Append("debtOutstanding", r.DebtOutstanding)
	w.Append("netWorth", r.NetWorth)
	w.Append("dividendsTTM", r.DividendsTTM)
	w.Append("assets", r.Assets)
	w.Append("fixedIncome", r.FixedIncome)
	w.Append("loans", r.Loans)
	w.Optional("skipped", r.Skipped)
	return w.MarshalJSON()
}

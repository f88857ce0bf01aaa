package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/andrelq/carteira"
	"github.com/google/subcommands"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

var apiRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "carteira_api_requests_total",
		Help: "API requests served, by endpoint and status.",
	},
	[]string{"endpoint", "status"},
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the book as a read-only JSON API" }
func (*serveCmd) Usage() string {
	return `serve [-addr <host:port>]

  Serves the book for a browser dashboard:
  - GET /api/summary      the portfolio review
  - GET /api/positions    calculated positions
  - GET /api/fixedincome  fixed-income holdings with valuations
  - GET /api/loans        loan contracts with snapshots
  - GET /metrics          prometheus metrics

  The book is re-read on every request, so edits from the CLI show up on the
  next refresh. The API is read-only: recording goes through the CLI.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8087", "Address to listen on")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r := mux.NewRouter()
	r.HandleFunc("/api/summary", reviewHandler(func(rev *carteira.Review) any { return rev })).Methods("GET")
	r.HandleFunc("/api/positions", reviewHandler(func(rev *carteira.Review) any { return rev.Assets })).Methods("GET")
	r.HandleFunc("/api/fixedincome", reviewHandler(func(rev *carteira.Review) any { return rev.FixedIncome })).Methods("GET")
	r.HandleFunc("/api/loans", reviewHandler(func(rev *carteira.Review) any { return rev.Loans })).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// The dashboard is served from another origin during development.
	handler := cors.Default().Handler(r)

	log.Printf("Serving the book on http://%s", c.addr)
	if err := http.ListenAndServe(c.addr, handler); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// reviewHandler computes a fresh review and serves a projection of it.
func reviewHandler(project func(*carteira.Review) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path

		book, err := OpenBook()
		if err != nil {
			apiRequests.WithLabelValues(endpoint, "error").Inc()
			http.Error(w, fmt.Sprintf("cannot load book: %v", err), http.StatusInternalServerError)
			return
		}
		rev := book.Review(carteira.Today())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(project(rev)); err != nil {
			apiRequests.WithLabelValues(endpoint, "error").Inc()
			return
		}
		apiRequests.WithLabelValues(endpoint, "ok").Inc()
	}
}

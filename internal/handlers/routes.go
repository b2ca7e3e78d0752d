package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health() error
}

// NewRouter wires every API route.
func NewRouter(tx *TransactionHandler, reporting *ReportingHandler, health HealthChecker) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status, code := "healthy", http.StatusOK
		if health != nil {
			if err := health.Health(); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  status,
			"service": "orgledger-backend",
		})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/transactions", tx.HandleTransactions).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/transactions/{id}", tx.HandleTransaction).Methods(http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)

	api.HandleFunc("/ledger/summary", reporting.HandleSummary).Methods(http.MethodGet)
	api.HandleFunc("/ledger/refresh", reporting.HandleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/ledger/reload", reporting.HandleReload).Methods(http.MethodPost)

	api.HandleFunc("/reports/cashflow", reporting.HandleCashFlow).Methods(http.MethodGet)
	api.HandleFunc("/reports/spending", reporting.HandleSpending).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.Use(corsMiddleware)
	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

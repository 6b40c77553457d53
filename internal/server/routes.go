package server

import (
	"net/http"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Assistant and quotes. The bare paths are the contract the mobile app
	// ships with; the /api aliases keep the surface consistent.
	mux.HandleFunc("/assistente-geral", s.handleAssistant)
	mux.HandleFunc("/api/assistant", s.handleAssistant)
	mux.HandleFunc("/get-stock-quote", s.handleStockQuote)
	mux.HandleFunc("/api/quote", s.handleStockQuote)

	// Portfolio
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/portfolio/chart", s.handlePortfolioChart)
	mux.HandleFunc("/api/summary", s.handleSummary)

	// Financial records
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/goals", s.handleGoals)
	mux.HandleFunc("/api/investments", s.handleInvestments)
}

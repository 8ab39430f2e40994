// Package api provides the HTTP REST API server for the pricing
// service.
//
// It exposes endpoints for loading markets, inspecting curves,
// pricing instruments with optional risk measures, and a WebSocket
// stream of live curve updates.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openquant/pricing-service/internal/config"
	"github.com/openquant/pricing-service/internal/service"
	"github.com/openquant/pricing-service/internal/valuation"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	svc    *service.PricingService
	wsHub  *WSHub
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, svc *service.PricingService) *Server {
	srv := &Server{
		cfg:   cfg,
		svc:   svc,
		wsHub: NewWSHub(),
	}

	// Applied curve updates fan out to websocket subscribers.
	svc.SetUpdateHook(func(update *service.CurveUpdate) {
		srv.wsHub.Broadcast(WSMessage{Type: "curve_update", Data: update})
	})

	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Market
		r.Post("/market", s.handleLoadMarket)
		r.Get("/market", s.handleMarketInfo)
		r.Get("/curves", s.handleCurves)
		r.Get("/curves/{name}", s.handleCurveByName)
		r.Post("/curves/{name}", s.handlePublishCurve)

		// Pricing
		r.Post("/price/bond", s.handlePriceBond)
		r.Post("/price/swap", s.handlePriceSwap)
		r.Post("/price/fxforward", s.handlePriceFXForward)
		r.Post("/price/mortgage", s.handlePriceMortgage)
		r.Post("/price/cds", s.handlePriceCDS)
		r.Post("/cds/fairspread", s.handleCDSFairSpread)

		// WebSocket curve stream
		r.Get("/ws/curves", s.handleCurveStream)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PriceBondRequest is the body for POST /api/v1/price/bond.
type PriceBondRequest struct {
	service.BondInput
	Risk *service.RiskInput `json:"risk,omitempty"`
}

// PriceSwapRequest is the body for POST /api/v1/price/swap.
type PriceSwapRequest struct {
	service.SwapInput
	Risk *service.RiskInput `json:"risk,omitempty"`
}

// PriceFXForwardRequest is the body for POST /api/v1/price/fxforward.
type PriceFXForwardRequest struct {
	service.FXForwardInput
	Risk *service.RiskInput `json:"risk,omitempty"`
}

// PriceMortgageRequest is the body for POST /api/v1/price/mortgage.
type PriceMortgageRequest struct {
	service.MortgageInput
	Risk *service.RiskInput `json:"risk,omitempty"`
}

// PriceCDSRequest is the body for POST /api/v1/price/cds and
// /api/v1/cds/fairspread.
type PriceCDSRequest struct {
	service.CDSInput
	Risk *service.RiskInput `json:"risk,omitempty"`
}

// CurveDetail describes one curve for GET /api/v1/curves/{name}.
type CurveDetail struct {
	Name    string    `json:"name"`
	Type    string    `json:"type"` // "zero" or "hazard"
	Pillars []float64 `json:"pillars"`
	Values  []float64 `json:"values"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"status": "ok",
	}
	if info, err := s.svc.Info(); err == nil {
		data["market"] = info
	} else {
		data["market"] = nil
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func (s *Server) handleLoadMarket(w http.ResponseWriter, r *http.Request) {
	var input service.MarketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.LoadMarket(input); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	info, err := s.svc.Info()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Data: info})
}

func (s *Server) handleMarketInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Info()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: info})
}

func (s *Server) handleCurves(w http.ResponseWriter, r *http.Request) {
	info, err := s.svc.Info()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: info.CurveNames})
}

func (s *Server) handleCurveByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	market, err := s.svc.Market()
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	c, err := market.Curve(name)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	detail := CurveDetail{Name: name}
	switch curve := c.(type) {
	case *valuation.ZeroRateCurve:
		detail.Type = "zero"
		detail.Pillars = curve.Pillars()
		detail.Values = curve.Rates()
	case *valuation.HazardRateCurve:
		detail.Type = "hazard"
		detail.Pillars = curve.Pillars()
		detail.Values = curve.Hazards()
	default:
		writeError(w, http.StatusInternalServerError, "unknown curve type")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: detail})
}

func (s *Server) handlePublishCurve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var update service.CurveUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	update.Curve = name

	if err := s.svc.PublishCurveUpdate(&update); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, APIResponse{
		Success: true,
		Data:    map[string]string{"published": name},
	})
}

func (s *Server) handlePriceBond(w http.ResponseWriter, r *http.Request) {
	var req PriceBondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondPrice(w)(s.svc.PriceBond(req.BondInput, req.Risk))
}

func (s *Server) handlePriceSwap(w http.ResponseWriter, r *http.Request) {
	var req PriceSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondPrice(w)(s.svc.PriceSwap(req.SwapInput, req.Risk))
}

func (s *Server) handlePriceFXForward(w http.ResponseWriter, r *http.Request) {
	var req PriceFXForwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondPrice(w)(s.svc.PriceFXForward(req.FXForwardInput, req.Risk))
}

func (s *Server) handlePriceMortgage(w http.ResponseWriter, r *http.Request) {
	var req PriceMortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondPrice(w)(s.svc.PriceMortgage(req.MortgageInput, req.Risk))
}

func (s *Server) handlePriceCDS(w http.ResponseWriter, r *http.Request) {
	var req PriceCDSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondPrice(w)(s.svc.PriceCDS(req.CDSInput, req.Risk))
}

func (s *Server) handleCDSFairSpread(w http.ResponseWriter, r *http.Request) {
	var req PriceCDSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	spread, err := s.svc.CDSFairSpread(req.CDSInput)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]float64{"fair_spread": spread},
	})
}

// respondPrice turns a service pricing result into the JSON envelope.
func (s *Server) respondPrice(w http.ResponseWriter) func(*service.PriceResponse, error) {
	return func(resp *service.PriceResponse, err error) {
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
	}
}

// ============================================================
// Helpers
// ============================================================

// statusForError maps the valuation error taxonomy onto HTTP status
// codes: bad terms are the caller's fault, missing market data is a
// lookup miss, a dispatch failure means the deployment lacks a pricer.
func statusForError(err error) int {
	var cfgErr *valuation.ConfigurationError
	var mdErr *valuation.MarketDataError
	var npErr *valuation.NoPricerFoundError
	var uiErr *valuation.UnsupportedInstrumentError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.As(err, &mdErr):
		return http.StatusNotFound
	case errors.As(err, &npErr), errors.As(err, &uiErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

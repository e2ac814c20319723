package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mirae-dev/ShoreBot_Go/internal/account"
	"github.com/mirae-dev/ShoreBot_Go/internal/admin"
	"github.com/mirae-dev/ShoreBot_Go/internal/catalog"
	"github.com/mirae-dev/ShoreBot_Go/internal/cooldown"
	"github.com/mirae-dev/ShoreBot_Go/internal/database"
	"github.com/mirae-dev/ShoreBot_Go/internal/handler"
	"github.com/mirae-dev/ShoreBot_Go/internal/inventory"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
	"github.com/mirae-dev/ShoreBot_Go/internal/reward"
	"github.com/mirae-dev/ShoreBot_Go/internal/trade"
)

// Services bundles the ledger services the server routes to
type Services struct {
	Account   account.Service
	Inventory inventory.Service
	Catalog   catalog.Service
	Reward    reward.Service
	Market    market.Service
	Trade     trade.Service
	Cooldown  cooldown.Service
	Admin     admin.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, services Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// User-facing command routes respect the lockdown toggle
		r.Group(func(r chi.Router) {
			r.Use(admin.LockdownMiddleware(services.Admin))

			r.Route("/account", func(r chi.Router) {
				r.Get("/balance", handler.HandleGetBalance(services.Account))
				r.Post("/pay", handler.HandlePay(services.Account))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", handler.HandleGetInventory(services.Inventory))
				r.Post("/gift", handler.HandleGift(services.Inventory))
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/card", handler.HandleGetCard(services.Catalog))
				r.Get("/cards", handler.HandleListCards(services.Catalog))
			})

			r.Route("/reward", func(r chi.Router) {
				r.Post("/daily", handler.HandleClaimDaily(services.Reward))
				r.Post("/weekly", handler.HandleClaimWeekly(services.Reward))
				r.Post("/surf", handler.HandleClaimSurf(services.Reward))
				r.Post("/explore", handler.HandleClaimExplore(services.Reward))
				r.Post("/drop", handler.HandleClaimDrop(services.Reward))
				r.Post("/booster", handler.HandleClaimBooster(services.Reward))
				r.Post("/bonanza", handler.HandleClaimBonanza(services.Reward))
			})

			r.Route("/shop", func(r chi.Router) {
				r.Get("/packs", handler.HandleListPacks(services.Reward))
				r.Post("/buy", handler.HandleBuyPack(services.Reward))
			})

			r.Route("/leaderboard", func(r chi.Router) {
				r.Get("/coins", handler.HandleTopBalances(services.Account))
				r.Get("/collection", handler.HandleTopCollectors(services.Inventory))
			})

			r.Route("/market", func(r chi.Router) {
				r.Post("/list", handler.HandleCreateListing(services.Market))
				r.Post("/purchase", handler.HandlePurchase(services.Market))
				r.Post("/cancel", handler.HandleCancelListing(services.Market))
				r.Post("/sell", handler.HandleSellToHouse(services.Market))
				r.Get("/listing", handler.HandleGetListing(services.Market))
				r.Get("/browse", handler.HandleBrowse(services.Market))
			})

			r.Route("/trade", func(r chi.Router) {
				r.Post("/propose", handler.HandleProposeTrade(services.Trade))
				r.Post("/accept", handler.HandleAcceptTrade(services.Trade))
				r.Post("/decline", handler.HandleDeclineTrade(services.Trade))
				r.Get("/offer", handler.HandleGetOffer(services.Trade))
				r.Get("/offers", handler.HandleListOffers(services.Trade))
			})
		})

		// Admin routes stay reachable during lockdown so it can be lifted
		r.Route("/admin", func(r chi.Router) {
			r.Get("/lockdown", handler.HandleLockdownStatus(services.Admin))
			r.Post("/lockdown/enable", handler.HandleLockdownEnable(services.Admin))
			r.Post("/lockdown/disable", handler.HandleLockdownDisable(services.Admin))
			r.Post("/cooldown/reset", handler.HandleResetCooldown(services.Cooldown))

			r.Route("/account", func(r chi.Router) {
				r.Post("/credit", handler.HandleCredit(services.Account))
				r.Post("/debit", handler.HandleDebit(services.Account))
			})

			r.Route("/card", func(r chi.Router) {
				r.Post("/add", handler.HandleAddCard(services.Inventory))
				r.Post("/remove", handler.HandleRemoveCard(services.Inventory))
			})

			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", handler.HandleCacheStats(services.Catalog))
				r.Post("/invalidate", handler.HandleInvalidateCard(services.Catalog))
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:   dbPool,
		services: services,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

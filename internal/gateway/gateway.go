package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"lendit/internal/config"
	"lendit/internal/domain"
	"lendit/internal/metrics"
	"lendit/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Gateway validates incoming requests and forwards them to the core server.
// Business rules stay on the server side; the gateway only rejects requests
// that are malformed on their face.
type Gateway struct {
	cfg      config.GatewayConfig
	client   *Client
	limits   domain.RateLimitRepository
	ipLimits sync.Map // map[string]*rate.Limiter
	log      zerolog.Logger
	server   *http.Server
}

func New(cfg config.GatewayConfig, client *Client, limits domain.RateLimitRepository, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		client: client,
		limits: limits,
		log:    logger.With().Str("component", "gateway").Logger(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", g.validateCreateUser)
	mux.HandleFunc("GET /users", g.passThrough)
	mux.HandleFunc("GET /users/{id}", g.validateID)
	mux.HandleFunc("PATCH /users/{id}", g.validateUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", g.validateID)

	mux.HandleFunc("POST /items", g.validateCreateItem)
	mux.HandleFunc("GET /items", g.validateUserAndPage)
	mux.HandleFunc("GET /items/search", g.validatePage)
	mux.HandleFunc("GET /items/{id}", g.validateUserAndID)
	mux.HandleFunc("PATCH /items/{id}", g.validateUserAndID)
	mux.HandleFunc("POST /items/{id}/comment", g.validateComment)

	mux.HandleFunc("POST /bookings", g.validateCreateBooking)
	mux.HandleFunc("GET /bookings", g.validateBookingList)
	mux.HandleFunc("GET /bookings/owner", g.validateBookingList)
	mux.HandleFunc("GET /bookings/export", g.validateUser)
	mux.HandleFunc("GET /bookings/{id}", g.validateUserAndID)
	mux.HandleFunc("PATCH /bookings/{id}", g.validateApproveBooking)

	mux.HandleFunc("POST /requests", g.validateCreateRequest)
	mux.HandleFunc("GET /requests", g.validateUser)
	mux.HandleFunc("GET /requests/all", g.validateUserAndPage)
	mux.HandleFunc("GET /requests/{id}", g.validateUserAndID)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           g.loggingMiddleware(g.rateLimitMiddleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return g
}

// Handler exposes the assembled handler for tests.
func (g *Gateway) Handler() http.Handler {
	return g.server.Handler
}

func (g *Gateway) Start() error {
	g.log.Info().Str("addr", g.server.Addr).Str("server_url", g.cfg.ServerURL).Msg("gateway listening")
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	if g.server == nil {
		return nil
	}
	return g.server.Shutdown(ctx)
}

// forward проксирует запрос в core-сервер и возвращает ответ как есть.
func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, body io.Reader) {
	pathAndQuery := r.URL.Path
	if r.URL.RawQuery != "" {
		pathAndQuery += "?" + r.URL.RawQuery
	}

	if body == nil {
		body = r.Body
	}

	resp, err := g.client.Do(r.Context(), r.Method, pathAndQuery, r.Header, body)
	if err != nil {
		metrics.IncForward("error")
		g.log.Error().Err(err).Str("path", pathAndQuery).Msg("forward failed")
		writeError(w, http.StatusBadGateway, "core server is unavailable")
		return
	}
	defer resp.Body.Close()

	metrics.IncForward("ok")
	for name, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func (g *Gateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		g.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	})
}

// rateLimitMiddleware ограничивает идентифицированных пользователей окном
// запросов, анонимные запросы — токен-бакетом по адресу.
func (g *Gateway) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := strings.TrimSpace(r.Header.Get(models.HeaderUserID)); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err == nil && userID > 0 && g.limits != nil {
				window := time.Duration(g.cfg.RateLimit.WindowSeconds) * time.Second
				allowed, err := g.limits.CheckRateLimit(r.Context(), userID, g.cfg.RateLimit.Requests, window)
				if err != nil {
					g.log.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
				} else if !allowed {
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		if g.cfg.RateLimit.RPS > 0 && !g.ipLimiter(r).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gateway) ipLimiter(r *http.Request) *rate.Limiter {
	key := "unknown"
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		key = host
	}

	if v, ok := g.ipLimits.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(g.cfg.RateLimit.RPS), g.cfg.RateLimit.Burst)
	if actual, loaded := g.ipLimits.LoadOrStore(key, lim); loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"statusCode": statusCode, "error": message})
}

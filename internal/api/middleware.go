package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lendit/internal/metrics"
	"lendit/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-Id"

// loggingMiddleware logs every request and feeds the HTTP metrics.
func loggingMiddleware(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		endpoint := endpointLabel(r)
		metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// endpointLabel collapses paths with ids to keep metric cardinality bounded.
func endpointLabel(r *http.Request) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return r.Method + " /"
	}
	resource := parts[0]
	if len(parts) == 1 {
		return r.Method + " /" + resource
	}
	tail := parts[1]
	if _, err := strconv.ParseInt(tail, 10, 64); err == nil {
		tail = "{id}"
	}
	return fmt.Sprintf("%s /%s/%s", r.Method, resource, tail)
}

// callerID extracts the user identity header. Zero with error when missing.
func callerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(models.HeaderUserID))
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", models.HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// pageFromQuery parses from/size with defaults from=0, size=10.
func pageFromQuery(r *http.Request) (models.PageRequest, error) {
	page := models.PageRequest{From: 0, Size: models.DefaultPageSize}

	if raw := r.URL.Query().Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("invalid from: %q", raw)
		}
		page.From = v
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("invalid size: %q", raw)
		}
		page.Size = v
	}

	if err := page.Validate(); err != nil {
		return page, err
	}
	return page, nil
}

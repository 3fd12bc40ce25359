package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"healthcare-portal/internal/delivery/dto"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/response"
)

// storeRetryAfter is advertised to clients when a request ran out of time.
const storeRetryAfter = 5 * time.Second

// internalError answers 503 when the request deadline expired and 500 otherwise.
func internalError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		response.ServiceUnavailable(w, "Request timed out, please retry", storeRetryAfter)
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Invalid token")
	default:
		response.InternalServerError(w, message)
	}
}

// pageQuery reads page and limit from the query string.
func pageQuery(r *http.Request, defaultLimit int) dto.PageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return dto.NewPageQuery(page, limit, defaultLimit)
}

// boolQuery returns nil when the parameter is absent or not a boolean.
func boolQuery(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

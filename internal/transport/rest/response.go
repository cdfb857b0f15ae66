package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/threads-backend/internal/domain"
)

const maxBodyBytes = 1 << 20

// pageResponse is the envelope of every paginated listing.
type pageResponse[T any] struct {
	Limit int `json:"limit"`
	Page  int `json:"page"`
	Total int `json:"total"`
	Data  []T `json:"data"`
}

func newPageResponse[S, T any](q domain.ListQuery, page domain.Page[S], convert func(S) T) pageResponse[T] {
	data := make([]T, len(page.Items))
	for i, item := range page.Items {
		data[i] = convert(item)
	}
	return pageResponse[T]{Limit: q.Limit, Page: q.Page, Total: page.Total, Data: data}
}

type errorResponse struct {
	Error  string          `json:"error"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors to HTTP statuses. Anything unknown is
// logged and reported as 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		resp := errorResponse{Error: "validation error"}
		for _, f := range verr.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: f.Field, Message: f.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrSelfAction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID parses the positive integer path value name.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "invalid id")
	}
	return id, nil
}

// parseListQuery reads page, limit, sort ("field.order"), startDate and
// endDate. Defaults and field checks are left to ListQuery.Normalize.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	v := r.URL.Query()
	var (
		q    domain.ListQuery
		errs []domain.FieldError
		err  error
	)

	if q.Page, err = atoiOrZero(v.Get("page")); err != nil {
		errs = append(errs, domain.FieldError{Field: "page", Message: "must be a number"})
	}
	if q.Limit, err = atoiOrZero(v.Get("limit")); err != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be a number"})
	}
	if q.SortField, q.SortOrder, err = domain.ParseSort(v.Get("sort")); err != nil {
		errs = append(errs, domain.FieldError{Field: "sort", Message: "invalid sort format"})
	}
	if q.StartDate, err = parseDate(v.Get("startDate")); err != nil {
		errs = append(errs, domain.FieldError{Field: "startDate", Message: "invalid startDate"})
	}
	if q.EndDate, err = parseDate(v.Get("endDate")); err != nil {
		errs = append(errs, domain.FieldError{Field: "endDate", Message: "invalid endDate"})
	}

	if len(errs) > 0 {
		return domain.ListQuery{}, domain.NewValidationErrors(errs)
	}
	return q, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}

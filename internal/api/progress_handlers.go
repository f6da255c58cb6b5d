package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/pkg/httputil"
)

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	dashboard, err := s.progressService.Dashboard(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("dashboard error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user doesn't exist", nil)
			return
		}
		logger.Error("dashboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building dashboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, dashboard)
}

func (s *Server) Weekly(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("weekly error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	reference, err := s.progressService.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		logger.Error("weekly error: invalid date", slog.String("date", r.URL.Query().Get("date")))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	week, err := s.progressService.Weekly(ctx, uid, reference)
	if err != nil {
		logger.Error("weekly error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building weekly data", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"days": week})
}

func (s *Server) DayDetails(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("day details error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	day, err := s.progressService.ParseDay(r.PathValue("date"))
	if err != nil {
		logger.Error("day details error: invalid date", slog.String("date", r.PathValue("date")))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	details, err := s.progressService.DayDetails(ctx, uid, day)
	if err != nil {
		logger.Error("day details error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while building day details", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, details)
}

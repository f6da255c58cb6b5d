package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/service"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/limbo/dopamine/pkg/httputil"
	"github.com/limbo/dopamine/pkg/progression"
)

type CreateHabitRequest struct {
	Title      string `json:"title"`
	Difficulty int    `json:"difficulty"`
}

// HabitResponse is a habit with its derived score.
type HabitResponse struct {
	*entity.Habit
	Points int `json:"points"`
}

type GetHabitsResponse struct {
	UserID string          `json:"uid"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Habits []HabitResponse `json:"habits"`
}

func habitResponse(h *entity.Habit) HabitResponse {
	return HabitResponse{Habit: h, Points: progression.HabitPoints(h)}
}

func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create habit error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateHabitRequest
	defer r.Body.Close()
	if err = httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	habit, err := s.habitService.CreateHabit(ctx, uid, &service.CreateHabitRequest{
		Title:      req.Title,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create habit error: invalid habit", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create habit error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "couldn't create habit: user doesn't exists", nil)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habitResponse(habit))
	logger.Info("habit created", slog.String("habit_id", habit.ID.String()))
}

func (s *Server) GetHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get habits error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	habits, err := s.habitService.GetUserHabits(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	resp := GetHabitsResponse{
		UserID: uid.String(),
		Page:   page,
		Limit:  limit,
		Habits: make([]HabitResponse, 0, len(habits)),
	}
	for _, h := range habits {
		resp.Habits = append(resp.Habits, habitResponse(h))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	logger.Info("habits provided")
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.habitTarget(w, r, logger, "habit deletion")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	if err := s.habitService.DeleteHabit(ctx, id, uid); err != nil {
		writeHabitError(w, logger, "habit deletion", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("habit deleted", slog.String("habit_id", id.String()))
}

func (s *Server) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.habitTarget(w, r, logger, "habit toggle")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	habit, err := s.habitService.ToggleHabit(ctx, id, uid)
	if err != nil {
		writeHabitError(w, logger, "habit toggle", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habitResponse(habit))
	logger.Info("habit toggled", slog.String("habit_id", id.String()), slog.Bool("completed", habit.IsCompleted))
}

func (s *Server) DuplicateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, id, ok := s.habitTarget(w, r, logger, "habit duplication")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	habit, err := s.habitService.DuplicateHabit(ctx, id, uid)
	if err != nil {
		writeHabitError(w, logger, "habit duplication", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habitResponse(habit))
	logger.Info("habit duplicated", slog.String("habit_id", habit.ID.String()))
}

// habitTarget extracts caller and habit id, writing the error response itself.
func (s *Server) habitTarget(w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string) (uuid.UUID, uuid.UUID, bool) {
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error(op + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return uuid.UUID{}, uuid.UUID{}, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error(op + " error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return uuid.UUID{}, uuid.UUID{}, false
	}
	return uid, id, true
}

func writeHabitError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrHabitNotFound):
		logger.Error(op + " error: unexist habit")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
	case errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(op + " error: habit has different owner")
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/limbo/dopamine/internal/error_values"
	"github.com/limbo/dopamine/internal/service"
	"github.com/limbo/dopamine/pkg/entity"
	"github.com/limbo/dopamine/pkg/httputil"
)

const handlerTimeout = 10 * time.Second

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type DisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}

type DailyTargetRequest struct {
	DailyTarget int `json:"daily_target"`
}

type ProfileResponse struct {
	UserID      string `json:"uid"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	DailyTarget int    `json:"daily_target"`
	// False until the display name is set
	Onboarded bool `json:"onboarded"`
}

func profileOf(user *entity.User) ProfileResponse {
	return ProfileResponse{
		UserID:      user.ID.String(),
		Name:        user.Name,
		DisplayName: user.DisplayName,
		DailyTarget: user.DailyTarget,
		Onboarded:   user.DisplayName != "",
	}
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserExists):
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: invalid credentials format", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid name or password format", err)
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid username or password", nil)
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
		}
		return
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		s.writeUserError(w, logger, "get profile", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profileOf(user))
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	if err = httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	if err = s.userService.DeleteAccount(ctx, uid, req.Password); err != nil {
		s.writeUserError(w, logger, "account deletion", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("account deleted")
}

func (s *Server) SetDisplayName(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("set display name error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DisplayNameRequest
	defer r.Body.Close()
	if err = httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("set display name error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.SetDisplayName(ctx, uid, &service.DisplayNameRequest{DisplayName: req.DisplayName})
	if err != nil {
		s.writeUserError(w, logger, "set display name", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profileOf(user))
	logger.Info("display name updated")
}

func (s *Server) SetDailyTarget(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("set daily target error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DailyTargetRequest
	defer r.Body.Close()
	if err = httputil.DecodeJSON(r.Body, &req); err != nil {
		logger.Error("set daily target error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.userService.SetDailyTarget(ctx, uid, &service.DailyTargetRequest{DailyTarget: req.DailyTarget})
	if err != nil {
		s.writeUserError(w, logger, "set daily target", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, profileOf(user))
	logger.Info("daily target updated", slog.Int("daily_target", user.DailyTarget))
}

func (s *Server) ResetProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reset error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	if err = s.userService.ResetProgress(ctx, uid); err != nil {
		s.writeUserError(w, logger, "reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("progress reset")
}

func (s *Server) writeUserError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrValidation):
		logger.Error(op+" error: invalid input", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid input", err)
	case errors.Is(err, errorvalues.ErrWrongCredentials):
		logger.Error(op + " error: wrong password")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "wrong password", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error(op + " error: unexist user")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "user doesn't exist", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error", nil)
	}
}

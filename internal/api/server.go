package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/limbo/dopamine/internal/service"
	"github.com/limbo/dopamine/pkg/httputil"
)

const (
	shutdownTimeout = 10 * time.Second
	requestTimeout  = 60 * time.Second
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	habitService    service.HabitsServiceI
	progressService service.ProgressServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	HabitsService   service.HabitsServiceI
	ProgressService service.ProgressServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		habitService:    servicesOptions.HabitsService,
		progressService: servicesOptions.ProgressService,
		jwtService:      servicesOptions.JwtService,
	}
	s.mountEndpoints()
	return s
}

func (s *Server) mountEndpoints() {
	s.mx.Use(middleware.RequestID)
	s.mx.Use(middleware.RealIP)
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(middleware.Timeout(requestTimeout))
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Get("/healthz", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Get("/profile", s.GetProfile)
			r.Delete("/profile", s.DeleteAccount)
			r.Put("/profile/name", s.SetDisplayName)
			r.Put("/profile/target", s.SetDailyTarget)
			r.Post("/profile/reset", s.ResetProgress)

			r.Post("/habits", s.CreateHabit)
			r.Get("/habits", s.GetHabits)
			r.Delete("/habits/{id}", s.DeleteHabit)
			r.Post("/habits/{id}/toggle", s.ToggleHabit)
			r.Post("/habits/{id}/duplicate", s.DuplicateHabit)

			r.Get("/progress/dashboard", s.Dashboard)
			r.Get("/progress/weekly", s.Weekly)
			r.Get("/progress/days/{date}", s.DayDetails)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Run serves until ctx is done or the process gets SIGINT/SIGTERM, then
// shuts the server down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("addr", address))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		slog.Info("server context done")
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

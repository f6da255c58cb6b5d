// @title Dopamine API
// @description API for habit-tracker app "Dopamine": habits, points, levels and daily progress
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/limbo/dopamine/internal/api"
	"github.com/limbo/dopamine/internal/reminder"
	"github.com/limbo/dopamine/internal/repository"
	"github.com/limbo/dopamine/internal/service"
	"github.com/limbo/dopamine/pkg/cleanup"
	"github.com/limbo/dopamine/pkg/config"
	jwtservice "github.com/limbo/dopamine/pkg/jwt_service"
	"github.com/limbo/dopamine/pkg/progression"
)

func init() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("service", "dopamine")))
	service.InitValidator()
}

func main() {
	cfg := config.New()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("loading timezone error: " + err.Error())
	}
	defer cleanup.CleanUp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := repository.NewPool(&repository.PGCfg{
		Address:  cfg.PostgresAddress,
		Username: cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DB:       cfg.PostgresDB,
	})
	usersRepo := repository.NewUsersRepoWithConn(pool)
	habitsRepo := repository.NewHabitsRepoWithConn(pool)

	engine := progression.NewEngine(loc, progression.SummaryThresholds{
		GoodStartMin:       cfg.GoodStartMin,
		HighPerformanceMin: cfg.HighPerformanceMin,
	})
	opts := []service.Option{service.WithDefaultDailyTarget(cfg.DefaultDailyTarget)}
	if cfg.RemindersEnabled {
		scheduler := reminder.New(reminder.NewSlogNotifier(slog.Default()), loc,
			reminder.WithTaskDelay(cfg.TaskReminderDelay),
			reminder.WithDailyHour(cfg.DailyReminderHour),
		)
		cleanup.Register(&cleanup.Job{
			Name: "stopping reminders",
			F: func() error {
				scheduler.Stop()
				return nil
			},
		})
		go func() {
			if err := scheduler.RunDaily(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("daily reminder stopped", slog.String("error", err.Error()))
			}
		}()
		opts = append(opts, service.WithReminders(scheduler))
	}

	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(usersRepo, opts...),
		HabitsService:   service.NewHabitsService(habitsRepo, opts...),
		ProgressService: service.NewProgressService(usersRepo, habitsRepo, engine, opts...),
		JwtService:      jwtservice.New(cfg.JWTSecret, cfg.JWTTTL),
	})
	if err = serv.Run(ctx, cfg.APIAddress); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
	}
}

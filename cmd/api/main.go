package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-staffing-service/internal/api/http"
	"github.com/spec-kit/event-staffing-service/internal/api/http/handlers"
	"github.com/spec-kit/event-staffing-service/internal/config"
	"github.com/spec-kit/event-staffing-service/internal/events"
	"github.com/spec-kit/event-staffing-service/internal/mailer"
	"github.com/spec-kit/event-staffing-service/internal/observability"
	"github.com/spec-kit/event-staffing-service/internal/persistence"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	"github.com/spec-kit/event-staffing-service/internal/service"
	"github.com/spec-kit/event-staffing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)

	var mail mailer.Mailer
	if cfg.Mailer.Host == "" {
		logger.Warn("SMTP_HOST not set, invitations are logged instead of sent")
		mail = mailer.NewLogMailer(logger)
	} else {
		mail = mailer.NewSMTPMailer(cfg.Mailer)
	}

	dispatcher := events.NewInMemoryDispatcher()

	staffService := service.NewStaffService(service.RosterDependencies{
		StaffRepo:    staffRepo,
		ScheduleRepo: scheduleRepo,
		LeaveRepo:    leaveRepo,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:      eventRepo,
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
	})
	availabilityService := service.NewAvailabilityService(service.AvailabilityDependencies{
		StaffRepo:    staffRepo,
		EventRepo:    eventRepo,
		ScheduleRepo: scheduleRepo,
		LeaveRepo:    leaveRepo,
	})
	confirmationService := service.NewConfirmationService(service.ConfirmationDependencies{
		AssignmentRepo: assignmentRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
		TokenTTL:       cfg.Confirmation.TokenTTL(),
	})
	invitationService := service.NewInvitationService(service.InvitationDependencies{
		AssignmentRepo: assignmentRepo,
		StaffRepo:      staffRepo,
		EventRepo:      eventRepo,
		Confirmation:   confirmationService,
		Mailer:         mail,
		Redis:          redis,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Cooldown:       cfg.Confirmation.ResendCooldown(),
		BaseURL:        cfg.Mailer.BaseURL,
	})
	sweeperService := service.NewSweeperService(service.SweeperDependencies{
		AssignmentRepo: assignmentRepo,
		LeaveRepo:      leaveRepo,
		Mailer:         mail,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.Confirmation.UnconfirmedTimeout(),
	})
	notificationService := service.NewNotificationService(dispatcher, logger)

	worker.StartNotificationWorker(notificationService)
	sweeperCron := worker.StartSweeperWorker(cfg.Scheduler, sweeperService, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(pg, redis),
		Staff:        handlers.NewStaffHandler(staffService),
		Events:       handlers.NewEventsHandler(eventService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Confirmation: handlers.NewConfirmationHandler(confirmationService),
		Invitation:   handlers.NewInvitationHandler(invitationService),
		Sweeps:       handlers.NewSweepsHandler(sweeperService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if sweeperCron != nil {
		<-sweeperCron.Stop().Done()
	}
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

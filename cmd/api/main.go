package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/config"
	appointmentHandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	billingHandler "github.com/jwalitptl/hospital-api/internal/handler/billing"
	departmentHandler "github.com/jwalitptl/hospital-api/internal/handler/department"
	healthHandler "github.com/jwalitptl/hospital-api/internal/handler/health"
	inventoryHandler "github.com/jwalitptl/hospital-api/internal/handler/inventory"
	medicalrecordHandler "github.com/jwalitptl/hospital-api/internal/handler/medicalrecord"
	patientHandler "github.com/jwalitptl/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/jwalitptl/hospital-api/internal/handler/prescription"
	reportHandler "github.com/jwalitptl/hospital-api/internal/handler/report"
	staffHandler "github.com/jwalitptl/hospital-api/internal/handler/staff"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/repository/memory"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/router"
	appointmentService "github.com/jwalitptl/hospital-api/internal/service/appointment"
	billingService "github.com/jwalitptl/hospital-api/internal/service/billing"
	departmentService "github.com/jwalitptl/hospital-api/internal/service/department"
	eventService "github.com/jwalitptl/hospital-api/internal/service/event"
	inventoryService "github.com/jwalitptl/hospital-api/internal/service/inventory"
	medicalrecordService "github.com/jwalitptl/hospital-api/internal/service/medicalrecord"
	patientService "github.com/jwalitptl/hospital-api/internal/service/patient"
	prescriptionService "github.com/jwalitptl/hospital-api/internal/service/prescription"
	reportService "github.com/jwalitptl/hospital-api/internal/service/report"
	staffService "github.com/jwalitptl/hospital-api/internal/service/staff"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	redisbroker "github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type repositories struct {
	patients      repository.PatientRepository
	appointments  repository.AppointmentRepository
	records       repository.MedicalRecordRepository
	prescriptions repository.PrescriptionRepository
	staff         repository.StaffRepository
	departments   repository.DepartmentRepository
	bills         repository.BillRepository
	inventory     repository.InventoryRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	repos, pinger, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize record store")
	}
	defer cleanup()

	var broker messaging.Broker = messaging.NewNoopBroker()
	if cfg.Redis.Enabled {
		b, err := redisbroker.NewRedisBroker(redisbroker.Config{URL: cfg.Redis.URL}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		broker = b
	}
	defer broker.Close()

	m := metrics.NewMetrics("hospital")
	eventSvc := eventService.NewService(broker, m)

	patientSvc := patientService.NewService(repos.patients, eventSvc)
	appointmentSvc := appointmentService.NewService(repos.appointments, repos.patients, repos.staff, eventSvc)
	recordSvc := medicalrecordService.NewService(repos.records, repos.patients, eventSvc)
	prescriptionSvc := prescriptionService.NewService(repos.prescriptions, repos.patients, repos.staff, eventSvc)
	staffSvc := staffService.NewService(repos.staff, repos.departments, eventSvc)
	departmentSvc := departmentService.NewService(repos.departments, repos.staff, eventSvc)
	billingSvc := billingService.NewService(repos.bills, repos.patients, eventSvc)
	inventorySvc := inventoryService.NewService(repos.inventory, eventSvc)
	reportSvc := reportService.NewService(repos.bills, repos.inventory, repos.staff, repos.departments)

	routerConfig := router.Config{
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "hospital_api",
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerConfig.RateBurst = cfg.RateLimit.Burst
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Store.Backend != "postgres" {
		// The memory store is process-local, so the expiry sweep has to run
		// in-process; the standalone worker covers postgres deployments.
		go runExpirySweep(sweepCtx, prescriptionSvc, cfg.Worker.SweepInterval)
	}

	r := router.NewRouter(routerConfig,
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		medicalrecordHandler.NewHandler(recordSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
		staffHandler.NewHandler(staffSvc),
		departmentHandler.NewHandler(departmentSvc),
		billingHandler.NewHandler(billingSvc),
		inventoryHandler.NewHandler(inventorySvc),
		reportHandler.NewHandler(reportSvc),
		healthHandler.NewHandler(pinger),
	)
	r.Setup()

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("store", cfg.Store.Backend).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func runExpirySweep(ctx context.Context, svc *prescriptionService.Service, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	log.Info().Dur("interval", interval).Msg("prescription expiry sweep started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			expired, err := svc.ExpireDue(ctx, now)
			if err != nil {
				log.Error().Err(err).Msg("expiry sweep failed")
				continue
			}
			if expired > 0 {
				log.Info().Int("expired", expired).Msg("expired prescriptions")
			}
		}
	}
}

func buildRepositories(cfg *config.Config) (*repositories, healthHandler.Pinger, func(), error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := postgres.NewDB(cfg.Store.Postgres.ToPostgresConfig())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		repos := &repositories{
			patients:      postgres.NewPatientRepository(db),
			appointments:  postgres.NewAppointmentRepository(db),
			records:       postgres.NewMedicalRecordRepository(db),
			prescriptions: postgres.NewPrescriptionRepository(db),
			staff:         postgres.NewStaffRepository(db),
			departments:   postgres.NewDepartmentRepository(db),
			bills:         postgres.NewBillRepository(db),
			inventory:     postgres.NewInventoryRepository(db),
		}
		return repos, db, func() { db.Close() }, nil
	case "memory", "":
		store := memory.NewStore()
		repos := &repositories{
			patients:      memory.NewPatientRepository(store),
			appointments:  memory.NewAppointmentRepository(store),
			records:       memory.NewMedicalRecordRepository(store),
			prescriptions: memory.NewPrescriptionRepository(store),
			staff:         memory.NewStaffRepository(store),
			departments:   memory.NewDepartmentRepository(store),
			bills:         memory.NewBillRepository(store),
			inventory:     memory.NewInventoryRepository(store),
		}
		return repos, nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

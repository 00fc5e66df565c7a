// The worker sweeps active prescriptions whose duration has elapsed and
// expires them. It shares the record store with the API server through
// postgres; with the memory backend the API server runs the sweep
// in-process instead, so the worker refuses to start.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	eventService "github.com/jwalitptl/hospital-api/internal/service/event"
	prescriptionService "github.com/jwalitptl/hospital-api/internal/service/prescription"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	redisbroker "github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.Logging.Level))

	if cfg.Store.Backend != "postgres" {
		// A standalone sweeper against the memory backend would only see
		// its own empty store; the API server sweeps in-process there.
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("worker requires the postgres store backend")
	}

	db, err := postgres.NewDB(cfg.Store.Postgres.ToPostgresConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	prescriptions := postgres.NewPrescriptionRepository(db)
	patients := postgres.NewPatientRepository(db)
	staff := postgres.NewStaffRepository(db)

	var broker messaging.Broker = messaging.NewNoopBroker()
	if cfg.Redis.Enabled {
		b, err := redisbroker.NewRedisBroker(redisbroker.Config{URL: cfg.Redis.URL}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		broker = b
	}
	defer broker.Close()

	eventSvc := eventService.NewService(broker, metrics.NewMetrics("hospital_worker"))
	prescriptionSvc := prescriptionService.NewService(prescriptions, patients, staff, eventSvc)

	setupHealthCheck()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	interval := cfg.Worker.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	log.Info().Dur("interval", interval).Msg("prescription expiry sweeper started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			expired, err := prescriptionSvc.ExpireDue(ctx, time.Now())
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

func setupHealthCheck() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			log.Error().Err(err).Msg("health check server failed")
		}
	}()
}

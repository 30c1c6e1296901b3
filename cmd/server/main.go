package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	httpadapter "payopti/internal/adapters/http"
	"payopti/internal/adapters/jsonfile"
	"payopti/internal/adapters/openai"
	pg "payopti/internal/adapters/postgres"
	"payopti/internal/config"
	"payopti/internal/ports"
	optsvc "payopti/internal/services/optimizer"
	profsvc "payopti/internal/services/profiles"
	runsvc "payopti/internal/services/runs"
	"payopti/internal/services/terms"
	"payopti/internal/workers/runrunner"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("partial configuration")
	}
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := jsonfile.Open(cfg.DataDir, log)
	if err != nil {
		log.WithError(err).Fatal("load reference data")
	}
	var _ ports.VendorRepository = store
	var _ ports.InvoiceRepository = store
	var _ ports.ConfigRepository = store

	// External text-analysis collaborator is optional; without it the
	// deterministic paths carry every request.
	var completer terms.Completer
	var analystClient optsvc.AnalystClient
	if cfg.OpenAIEndpoint != "" && cfg.OpenAIKey != "" {
		client := openai.New(openai.Config{
			Endpoint:   cfg.OpenAIEndpoint,
			APIKey:     cfg.OpenAIKey,
			Deployment: cfg.OpenAIDeployment,
			APIVersion: cfg.OpenAIAPIVersion,
		}, log)
		completer = client
		analystClient = client
		log.WithField("deployment", cfg.OpenAIDeployment).Info("assisted analysis enabled")
	}

	interpreter := terms.New(completer, log)
	analyst := optsvc.NewResilientAnalyst(analystClient, log)
	optimizer := optsvc.New(store, store, store, interpreter, analyst, clockwork.NewRealClock(), log)
	profiles := profsvc.New(store)

	// Run persistence and the job queue are optional.
	var runs *runsvc.Service
	var jobs ports.JobRepository
	var processor runrunner.Processor
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("db connect error")
		}
		defer db.Close()
		var _ ports.RunRepository = db
		var _ ports.JobRepository = db

		runs = runsvc.New(db)
		jobs = db
		processor = runrunner.OptimizeProcessor{Optimizer: optimizer, Runs: db}

		if cfg.RunWorkers > 0 {
			go runrunner.Run(ctx, jobs, processor, cfg.RunWorkers, 500*time.Millisecond, log)
			log.WithField("workers", cfg.RunWorkers).Info("run workers started")
		}
	}

	srv := httpadapter.New(optimizer, profiles, runs, jobs, processor, log)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.WithField("addr", cfg.ListenAddr).Info("listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.WithError(err).Fatal("server error")
	}
}

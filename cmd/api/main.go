package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	_ "github.com/MrKriegler/go-autoquote/docs"
	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/internal/docgen"
	transporthttp "github.com/MrKriegler/go-autoquote/internal/http"
	"github.com/MrKriegler/go-autoquote/internal/http/handlers"
	"github.com/MrKriegler/go-autoquote/internal/http/health"
	"github.com/MrKriegler/go-autoquote/internal/jobs"
	"github.com/MrKriegler/go-autoquote/internal/middleware"
	"github.com/MrKriegler/go-autoquote/internal/notify"
	"github.com/MrKriegler/go-autoquote/internal/payments"
	"github.com/MrKriegler/go-autoquote/internal/platform/config"
	"github.com/MrKriegler/go-autoquote/internal/platform/logging"
	"github.com/MrKriegler/go-autoquote/internal/store/dynamo"
	"github.com/MrKriegler/go-autoquote/internal/store/mongo"
)

// repos bundles the persistence interfaces behind one backend choice.
type repos struct {
	policies  core.PolicyRepo
	payments  core.PaymentRepo
	documents core.DocumentRepo
	events    core.EventRepo
	pinger    health.Pinger
	close     func(context.Context) error
}

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting go-autoquote API", "env", cfg.Env, "db_type", cfg.DBType)

	st, err := buildRepos(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize storage", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.Warn("failed to close storage", "err", err)
		}
	}()

	// Domain services
	quoteSvc := core.NewQuoteService(st.policies, log)
	bindingSvc := core.NewBindingService(
		st.policies,
		st.payments,
		st.documents,
		st.events,
		payments.NewSimulator(log),
		docgen.New(log),
		notify.NewLogNotifier(log),
		log,
	)

	// HTTP surface
	api := transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewQuoteHandler(quoteSvc, bindingSvc, log),
			handlers.NewPolicyHandler(st.policies, bindingSvc, st.payments, st.documents, st.events, log),
		},
	})

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	rateLimiter.StartWithContext(ctx)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))
	r.Use(rateLimiter.Middleware)
	r.Use(middleware.SimpleAPIKey(cfg.APIKey))

	healthHandler := health.New(log, st.pinger, 2*time.Second)
	r.Handle("/health", healthHandler)
	r.Handle("/readyz", healthHandler)
	r.Mount("/api/v1", api)

	// Background sweep: quoted records past their validity window go expired.
	expiryWorker := jobs.NewExpiryWorker(
		st.policies,
		st.events,
		time.Duration(cfg.WorkerIntervalSec)*time.Second,
		cfg.WorkerBatchSize,
		log,
	)
	go expiryWorker.Start(ctx)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}

	log.Info("server stopped")
}

// buildRepos picks the storage backend from DB_TYPE and wires the repos.
func buildRepos(ctx context.Context, cfg *config.Config, log *slog.Logger) (repos, error) {
	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return repos{}, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			return repos{}, fmt.Errorf("ensure mongo indexes: %w", err)
		}

		opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond
		return repos{
			policies:  mongo.NewPolicyRepo(client.DB, opTimeout),
			payments:  mongo.NewPaymentRepo(client.DB, opTimeout),
			documents: mongo.NewDocumentRepo(client.DB, opTimeout),
			events:    mongo.NewEventRepo(client.DB, opTimeout),
			pinger:    client,
			close:     client.Close,
		}, nil

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return repos{}, fmt.Errorf("connect to dynamodb: %w", err)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			return repos{}, fmt.Errorf("ensure dynamodb tables: %w", err)
		}

		return repos{
			policies:  dynamo.NewPolicyRepo(client.DB),
			payments:  dynamo.NewPaymentRepo(client.DB),
			documents: dynamo.NewDocumentRepo(client.DB),
			events:    dynamo.NewEventRepo(client.DB),
			pinger:    client,
			close:     func(context.Context) error { return nil },
		}, nil

	default:
		return repos{}, fmt.Errorf("unsupported DB_TYPE %q (want dynamodb or mongo)", cfg.DBType)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aperture/labour-hours/internal/labour/consumers"
	"github.com/aperture/labour-hours/internal/labour/handler"
	"github.com/aperture/labour-hours/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve labour summaries over HTTP and RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	log := a.log
	cfg := a.cfg

	log.Info().Msg("starting labour service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.connect(ctx); err != nil {
		return err
	}

	svc := a.labourService()

	if a.rmq != nil {
		if err := a.rmq.DeclareDeadLetterQueue(serviceName); err != nil {
			return fmt.Errorf("failed to declare dead letter queue: %w", err)
		}

		consumer, err := consumers.NewBatchEventConsumer(a.rmq, cfg.RabbitMQ.Queue, svc, log)
		if err != nil {
			return fmt.Errorf("failed to create batch consumer: %w", err)
		}
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("batch consumer stopped")
			}
		}()
	}

	var runs handler.RunReader
	if a.repo != nil {
		runs = a.repo
	}
	labourHandler := handler.NewLabourHandler(svc, runs, log)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": serviceName,
		}
		if a.db != nil {
			dbHealth := a.db.Health(r.Context())
			health["database"] = dbHealth
			if dbHealth["status"] != "up" {
				health["status"] = "degraded"
			}
		}
		if a.rmq != nil {
			rmqHealth := a.rmq.Health()
			health["rabbitmq"] = rmqHealth
			if rmqHealth["status"] != "up" {
				health["status"] = "degraded"
			}
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	r.Route("/api/v1/labour", func(r chi.Router) {
		r.Use(httputil.BodyLimit(cfg.Labour.MaxBodyBytes))
		r.Use(httputil.BearerAuth(cfg.JWT.Secret, cfg.JWT.Issuer))
		labourHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("labour service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("shutting down labour service")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("labour service stopped")
	return nil
}

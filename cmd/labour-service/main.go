package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aperture/labour-hours/internal/labour/events"
	"github.com/aperture/labour-hours/internal/labour/repository"
	"github.com/aperture/labour-hours/internal/labour/service"
	"github.com/aperture/labour-hours/pkg/config"
	"github.com/aperture/labour-hours/pkg/database"
	"github.com/aperture/labour-hours/pkg/logger"
	"github.com/aperture/labour-hours/pkg/messaging"
	"github.com/spf13/cobra"
)

const serviceName = "labour-service"

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Labour hours by time period",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCommand(), newServeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the infrastructure shared by both commands
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	db        *database.DB
	rmq       *messaging.RabbitMQ
	repo      *repository.LabourRepository
	publisher *events.LabourEventPublisher
}

func newApp() (*app, error) {
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &app{
		cfg: cfg,
		log: logger.New(serviceName, cfg.Server.Environment),
	}, nil
}

// connect opens the optional database and broker connections
func (a *app) connect(ctx context.Context) error {
	if a.cfg.Database.Enabled {
		db, err := database.New(&a.cfg.Database, a.log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db

		a.repo = repository.NewLabourRepository(db)
		if err := a.repo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure labour schema: %w", err)
		}
	}

	if a.cfg.RabbitMQ.Enabled {
		rmq, err := messaging.New(&a.cfg.RabbitMQ, a.log)
		if err != nil {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		a.rmq = rmq

		publisher, err := events.NewLabourEventPublisher(rmq, a.log)
		if err != nil {
			return fmt.Errorf("failed to create event publisher: %w", err)
		}
		a.publisher = publisher
	}

	return nil
}

func (a *app) labourService() *service.LabourService {
	var store service.RunStore
	if a.repo != nil {
		store = a.repo
	}
	var publisher service.RunPublisher
	if a.publisher != nil {
		publisher = a.publisher
	}

	opts := service.Options{
		SkipUnknownEmployees: a.cfg.Labour.UnknownEmployeePolicy == config.PolicySkip,
		EmitEmptySegments:    a.cfg.Labour.EmitEmptySegments,
	}
	return service.NewLabourService(opts, store, publisher, a.log)
}

func (a *app) close() {
	if a.rmq != nil {
		if err := a.rmq.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close RabbitMQ connection")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close database connection")
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creditlens/internal/ai"
	"creditlens/internal/analysis"
	"creditlens/internal/db"
	"creditlens/internal/extract"
	"creditlens/internal/server"
	"creditlens/internal/store"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	reportsRepo := store.NewReportRepository(pool)
	accountsRepo := store.NewAccountRepository(pool)
	negativesRepo := store.NewNegativeItemRepository(pool)
	violationsRepo := store.NewViolationRepository(pool)
	lettersRepo := store.NewLetterRepository(pool)

	files, err := loadObjectStorage(ctx, config)
	if err != nil {
		return err
	}

	registry := ai.NewRegistry(config, logger)
	logger.WithField("providers", registry.Names()).Info("registered extraction providers")

	pipeline := analysis.NewPipeline(
		logger,
		extract.NewTextExtractor(logger),
		registry,
		files,
		reportsRepo,
		accountsRepo,
		negativesRepo,
		violationsRepo,
		analysis.PolicyFromName(config.ScorePolicy),
	)

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.AuthIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register jwks url with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		pipeline,
		files,
		reportsRepo,
		accountsRepo,
		negativesRepo,
		violationsRepo,
		lettersRepo,
		jwkCache,
		jwksURL,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

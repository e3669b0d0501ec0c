// Command server runs the UUID resolver HTTP API.
//
//	@title						UUID Resolver API
//	@version					1.0
//	@description				Issues bearer tokens and resolves opaque identifiers to stored values.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/99minutos/uuid-resolver/internal/api"
	"github.com/99minutos/uuid-resolver/internal/api/metrics"
	"github.com/99minutos/uuid-resolver/internal/core/domain"
	"github.com/99minutos/uuid-resolver/internal/core/ports"
	"github.com/99minutos/uuid-resolver/internal/core/service"
	"github.com/99minutos/uuid-resolver/internal/infrastructure/config"
	"github.com/99minutos/uuid-resolver/internal/infrastructure/db/memory"
	mongorepo "github.com/99minutos/uuid-resolver/internal/infrastructure/db/mongo"
	redisrepo "github.com/99minutos/uuid-resolver/internal/infrastructure/db/redis"
	"github.com/99minutos/uuid-resolver/internal/infrastructure/http/handlers"
	"github.com/99minutos/uuid-resolver/internal/infrastructure/security"
	"github.com/99minutos/uuid-resolver/pkg/logger"
)

const serviceName = "uuid-resolver"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	// --- Credentials ---
	hasher, err := security.NewHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost, security.DefaultArgon2idParams())
	if err != nil {
		return err
	}
	store := memory.NewCredentialStore()
	digests, err := seedCredentials(ctx, cfg, store, hasher, logger.Component(logger.ComponentStorage))
	if err != nil {
		return err
	}
	padHasher, err := timingPadHasher(cfg, digests, logger.Component(logger.ComponentAuth))
	if err != nil {
		return err
	}

	// --- Tokens ---
	secret := []byte(cfg.Auth.JWTSecret)
	issuer, err := service.NewTokenIssuer(secret, cfg.Auth.TokenTTL, service.WithIssuer(cfg.Auth.JWTIssuer))
	if err != nil {
		return err
	}
	validator, err := service.NewTokenValidator(secret, store, service.WithIssuer(cfg.Auth.JWTIssuer))
	if err != nil {
		return err
	}
	authService, err := service.NewAuthService(store, hasher, issuer, logger.Component(logger.ComponentAuth),
		service.WithTimingPadHasher(padHasher))
	if err != nil {
		return err
	}

	// --- Mappings ---
	repo, checks, closeRepo, err := openMappingRepository(ctx, cfg, logger.Component(logger.ComponentStorage))
	if err != nil {
		return err
	}
	defer closeRepo()
	mappingService := service.NewMappingService(repo, service.RandomUUID, logger.Component(logger.ComponentMapping))

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := api.NewRouter(api.Deps{
		Log:            logger.Component(logger.ComponentHTTP),
		Auth:           authService,
		Validator:      validator,
		Mappings:       mappingService,
		Metrics:        metrics.New(reg),
		Registry:       reg,
		Checks:         checks,
		BodyLimit:      cfg.HTTP.BodyLimit,
		SwaggerEnabled: cfg.HTTP.SwaggerEnabled,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("backend", cfg.Storage.Backend).
			Dur("token_ttl", cfg.Auth.TokenTTL).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// seedCredentials loads SEED_FILE into store, or the demo principal when no
// file is configured. It returns the seeded password digests.
func seedCredentials(ctx context.Context, cfg *config.Config, store *memory.CredentialStore, hasher ports.PasswordHasher, log zerolog.Logger) ([]string, error) {
	var (
		records []domain.CredentialRecord
		err     error
	)
	if cfg.Auth.SeedFile != "" {
		records, err = memory.LoadSeedFile(cfg.Auth.SeedFile)
	} else {
		if !cfg.IsDevelopment() {
			log.Warn().Msg("SEED_FILE not set, serving the built-in demo principal")
		}
		records, err = memory.DemoPrincipals(hasher)
	}
	if err != nil {
		return nil, err
	}

	if err := memory.Seed(ctx, store, records); err != nil {
		return nil, err
	}
	log.Info().Int("principals", store.Len()).Msg("credential store seeded")

	digests := make([]string, 0, len(records))
	for _, r := range records {
		digests = append(digests, r.PasswordHash)
	}
	return digests, nil
}

// timingPadHasher hashes the unknown-user timing pad with the algorithm most
// seeded digests use. Mixed seeds are logged: principals on the minority
// algorithm answer a wrong password in a different time than an unknown
// username.
func timingPadHasher(cfg *config.Config, digests []string, log zerolog.Logger) (ports.PasswordHasher, error) {
	alg := security.PredominantAlgorithm(cfg.Auth.PasswordHasher, digests...)

	minority := 0
	for _, d := range digests {
		if security.Algorithm(d) != alg {
			minority++
		}
	}
	if minority > 0 {
		log.Warn().
			Str("timing_pad_algorithm", alg).
			Int("principals_on_other_algorithms", minority).
			Msg("seeded digests mix algorithms; rehash them with one algorithm to keep login timing uniform")
	}

	return security.NewHasher(alg, cfg.Auth.BcryptCost, security.DefaultArgon2idParams())
}

// openMappingRepository connects the configured backend. The returned close
// func is always safe to call.
func openMappingRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.MappingRepository, []handlers.Check, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := redisrepo.Connect(ctx, redisrepo.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := redisrepo.NewMappingRepository(client)
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}
		return repo, []handlers.Check{{Name: "redis", Ping: repo.Ping}}, closeFn, nil

	case config.BackendMongo:
		client, db, err := mongorepo.Connect(ctx, mongorepo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mongorepo.NewMappingRepository(db)
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}
		return repo, []handlers.Check{{Name: "mongodb", Ping: repo.Ping}}, closeFn, nil

	default:
		return memory.NewMappingRepository(), nil, func() {}, nil
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/config"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/infrastructure/db"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/infrastructure/persistence"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/interface/api"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, configPath string, envFiles ...string) error {
	cfg, err := config.Load(configPath, envFiles...)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		log.Info().Msg("database schema is up to date")
	}

	mux, err := newMux(persistence.NewStaticNetworkRepository(database), cfg.CacheTTL)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", cfg.ListenAddress)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type store interface {
	domain.StaticNetworkRepository
	domain.HostGroupLocator
}

func newMux(repo store, ttl time.Duration) (*http.ServeMux, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, errors.Wrap(err, "failed to register go collector")
	}

	useCase := usecase.NewStaticNetworkUseCase(
		repo,
		usecase.NewCachedLocator(repo, ttl),
		cache.New(ttl, 2*ttl),
		usecase.NewMetrics(reg),
	)

	mux := http.NewServeMux()
	api.NewStaticNetworkHandler(useCase).Register(mux, reg)
	return mux, nil
}

// Package gymbackoffice собирает основное приложение бэк-офиса зала:
// подключение к базе и кешу, прогон миграций, инициализация сервисов
// и HTTP-сервера с маршрутами.
package gymbackoffice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-backoffice/internal/cache"
	"github.com/magabrotheeeer/gym-backoffice/internal/config"
	customjwt "github.com/magabrotheeeer/gym-backoffice/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-backoffice/internal/lib/smtp"
	"github.com/magabrotheeeer/gym-backoffice/internal/migrations"
	assetservice "github.com/magabrotheeeer/gym-backoffice/internal/services/asset"
	authservice "github.com/magabrotheeeer/gym-backoffice/internal/services/auth"
	financeservice "github.com/magabrotheeeer/gym-backoffice/internal/services/finance"
	membservice "github.com/magabrotheeeer/gym-backoffice/internal/services/membership"
	planservice "github.com/magabrotheeeer/gym-backoffice/internal/services/plan"
	staffservice "github.com/magabrotheeeer/gym-backoffice/internal/services/staff"
	"github.com/magabrotheeeer/gym-backoffice/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	jwtMaker := customjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	membershipService := membservice.NewMembershipService(db, cacheRedis, logger)
	planService := planservice.NewPlanService(db, logger)
	financeService := financeservice.NewFinanceService(db, logger)
	assetService := assetservice.NewAssetService(db, logger)
	staffService := staffservice.NewStaffService(db, transport, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger,
		authService, membershipService, planService,
		financeService, assetService, staffService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}

// Package app assembles the clubs API from configuration. Every entry point
// (HTTP server, Lambda proxy) builds the same router through it.
package app

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yakoovad/club-api/internal/api"
	"github.com/yakoovad/club-api/internal/auth"
	"github.com/yakoovad/club-api/internal/config"
	"github.com/yakoovad/club-api/internal/db"
	"github.com/yakoovad/club-api/internal/identity"
	"github.com/yakoovad/club-api/internal/repository"
	"github.com/yakoovad/club-api/internal/service"
	"github.com/yakoovad/club-api/internal/translate"
)

type App struct {
	Echo   *echo.Echo
	Store  repository.Store
	AWS    aws.Config
	Logger *zap.Logger

	closers []func()
}

// New builds the store, the external clients and the router described by cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string) (*App, error) {
	a := &App{Logger: logger}

	awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	a.AWS = awsCfg

	if a.Store, err = a.newStore(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("store ready", zap.String("backend", cfg.Store.Backend))

	var translator translate.Translator
	switch cfg.Translate.Provider {
	case config.ProviderLambda:
		translator = translate.NewLambdaTranslator(lambdasdk.NewFromConfig(awsCfg), cfg.Translate.FunctionName)
	default:
		translator = translate.Disabled()
	}

	confirmer := identity.NewCognitoConfirmer(cognitoidentityprovider.NewFromConfig(awsCfg), cfg.Cognito.ClientID)

	clubs := service.NewClubService().WithClubRepo(a.Store.Clubs()).WithPlayerRepo(a.Store.Players())
	players := service.NewPlayerService().WithClubRepo(a.Store.Clubs()).WithPlayerRepo(a.Store.Players())
	translations := service.NewTranslationService(translator, cfg.Translate.SourceLanguage).
		WithClubRepo(a.Store.Clubs()).
		WithMaxCacheAttempts(cfg.Translate.MaxCacheAttempts)

	handler := api.NewHandler(logger).
		WithHealthChecker(api.MustNewHealthChecker(version, api.PingCheck(cfg.Store.Backend, a.Store.Ping))).
		WithClubService(clubs).
		WithPlayerService(players).
		WithTranslationService(translations).
		WithAuthService(service.NewAuthService(confirmer)).
		WithAuthMiddleware(authMiddleware(cfg.Auth)).
		WithCORSOrigins(cfg.Server.CORSOrigins)

	a.Echo = echo.New()
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	handler.RegisterRoutes(a.Echo)

	return a, nil
}

// Close releases the store connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) newStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendDynamoDB:
		client := dynamodb.NewFromConfig(a.AWS, func(o *dynamodb.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			}
		})
		return repository.NewDynamoStore(client, repository.Tables{
			Clubs:         cfg.Store.ClubsTable,
			Players:       cfg.Store.PlayersTable,
			PositionIndex: cfg.Store.PositionIndex,
		}), nil

	case config.BackendPostgres:
		pool, err := db.NewPgxPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)

		if err = db.Migrate(ctx, pool); err != nil {
			return nil, err
		}
		return repository.NewPgxStore(pool), nil

	case config.BackendMemory:
		return repository.NewMemoryStore(), nil
	}

	return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown store backend %q", cfg.Store.Backend)
}

func loadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func authMiddleware(cfg config.AuthConfig) echo.MiddlewareFunc {
	switch cfg.Mode {
	case config.AuthCookie:
		return api.CookieAuthMiddleware(auth.NewAuthenticator(cfg.Secret), cfg.CookieName)
	case config.AuthGateway:
		return api.GatewayAuthMiddleware()
	default:
		return api.AllowAll()
	}
}
